package notify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/melrosetutorclub/booking/internal/booking"
)

// Email is one outbound message, already fully composed.
type Email struct {
	To      string
	Subject string
	Text    string
}

// twelveHour renders a 24-hour "HH:MM" token in 12-hour clock with
// AM/PM: "15:00" -> "3:00 PM", "00:30" -> "12:30 AM". Malformed input
// is returned unchanged.
func twelveHour(military string) string {
	hh, mm, ok := strings.Cut(military, ":")
	if !ok {
		return military
	}
	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 || hours > 23 {
		return military
	}

	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	hours = hours % 12
	if hours == 0 {
		hours = 12
	}
	return fmt.Sprintf("%d:%s %s", hours, mm, period)
}

// capitalizeDay turns a weekday token into its display form
// ("monday" -> "Monday").
func capitalizeDay(day string) string {
	if day == "" {
		return day
	}
	return strings.ToUpper(day[:1]) + day[1:]
}

func orNotProvided(v *string) string {
	if v == nil || *v == "" {
		return "Not provided"
	}
	return *v
}

// ComposeTutorEmail builds the session reminder sent to the tutor.
func ComposeTutorEmail(detail booking.AppointmentDetail) Email {
	var b strings.Builder

	b.WriteString("Tutoring Session Reminder\n")
	b.WriteString("You have a tutoring session scheduled.\n\n")

	b.WriteString("Session Details\n")
	fmt.Fprintf(&b, "Subject: %s - %s\n", detail.Subject, detail.ClassName)
	fmt.Fprintf(&b, "Level: %s\n", detail.Level)
	fmt.Fprintf(&b, "Day: %s\n", capitalizeDay(detail.Day))
	fmt.Fprintf(&b, "Time: %s\n\n", twelveHour(detail.Time))

	b.WriteString("Student Information\n")
	fmt.Fprintf(&b, "Name: %s\n", detail.StudentName)
	fmt.Fprintf(&b, "Email: %s\n", detail.Email)
	fmt.Fprintf(&b, "Phone: %s\n", orNotProvided(detail.Phone))
	fmt.Fprintf(&b, "Grade: %s\n", detail.Grade)

	if detail.Notes != nil && *detail.Notes != "" {
		fmt.Fprintf(&b, "\nAdditional Notes\n%s\n", *detail.Notes)
	}

	fmt.Fprintf(&b, "\nThis session was booked on %s at %s.\n",
		detail.CreatedAt.Format("1/2/2006"),
		detail.CreatedAt.Format("3:04:05 PM"))

	b.WriteString("\nNeed to reschedule? Contact the student directly or reach out to the Melrose Tutor Club coordinators.\n")
	b.WriteString("This is an automated reminder from Melrose Tutor Club.\n")

	to := ""
	if detail.Tutor != nil {
		to = detail.Tutor.Email
	}

	return Email{
		To:      to,
		Subject: fmt.Sprintf("Tutoring Session Reminder: %s - %s", detail.StudentName, detail.Subject),
		Text:    b.String(),
	}
}

// ComposeStudentEmail builds the booking confirmation sent to the student.
func ComposeStudentEmail(detail booking.AppointmentDetail) Email {
	var b strings.Builder

	b.WriteString("Session Confirmed\n")
	b.WriteString("Your tutoring session has been booked successfully.\n\n")

	b.WriteString("Session Details\n")
	fmt.Fprintf(&b, "Subject: %s - %s\n", detail.Subject, detail.ClassName)
	fmt.Fprintf(&b, "Level: %s\n", detail.Level)
	fmt.Fprintf(&b, "Day: %s\n", capitalizeDay(detail.Day))
	fmt.Fprintf(&b, "Time: %s\n\n", twelveHour(detail.Time))

	if detail.Tutor != nil {
		b.WriteString("Tutor Information\n")
		fmt.Fprintf(&b, "Name: %s\n", detail.Tutor.Name)
		fmt.Fprintf(&b, "Email: %s\n", detail.Tutor.Email)
	}

	if detail.Notes != nil && *detail.Notes != "" {
		fmt.Fprintf(&b, "\nAdditional Notes\n%s\n", *detail.Notes)
	}

	fmt.Fprintf(&b, "\nThis session was booked on %s at %s.\n",
		detail.CreatedAt.Format("1/2/2006"),
		detail.CreatedAt.Format("3:04:05 PM"))

	b.WriteString("\nNeed to reschedule? Contact your tutor directly or reach out to the Melrose Tutor Club coordinators.\n")
	b.WriteString("This is an automated confirmation from Melrose Tutor Club.\n")

	return Email{
		To:      detail.Email,
		Subject: fmt.Sprintf("Tutoring Session Confirmation: %s", detail.Subject),
		Text:    b.String(),
	}
}
