package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/melrosetutorclub/booking/internal/booking"
)

func TestTwelveHour(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"15:00", "3:00 PM"},
		{"12:05", "12:05 PM"},
		{"00:30", "12:30 AM"},
		{"09:45", "9:45 AM"},
		{"23:59", "11:59 PM"},
		{"11:00", "11:00 AM"},
		{"garbage", "garbage"},
		{"25:00", "25:00"},
	}

	for _, tt := range tests {
		if got := twelveHour(tt.in); got != tt.want {
			t.Errorf("twelveHour(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCapitalizeDay(t *testing.T) {
	if got := capitalizeDay("monday"); got != "Monday" {
		t.Errorf("capitalizeDay(monday) = %q", got)
	}
	if got := capitalizeDay(""); got != "" {
		t.Errorf("capitalizeDay empty = %q", got)
	}
}

func sampleDetail() booking.AppointmentDetail {
	notes := "Working through quadratic functions."
	phone := "(781) 555-0142"
	return booking.AppointmentDetail{
		Appointment: booking.Appointment{
			ID:          uuid.MustParse("c1d2e3f4-a5b6-4c7d-8e9f-0a1b2c3d4e5f"),
			StudentName: "Avery Lindqvist",
			Email:       "avery@example.com",
			Phone:       &phone,
			Grade:       "10",
			Subject:     "Mathematics",
			ClassName:   "Algebra 2",
			Level:       "Honors",
			Day:         "tuesday",
			Time:        "15:30",
			Status:      booking.StatusConfirmed,
			Notes:       &notes,
			CreatedAt:   time.Date(2025, 2, 3, 19, 12, 0, 0, time.UTC),
		},
		Tutor: &booking.Tutor{
			Name:  "Marcus Webb",
			Email: "marcus.webb@melrosetutorclub.org",
		},
	}
}

func TestComposeTutorEmail(t *testing.T) {
	email := ComposeTutorEmail(sampleDetail())

	if email.To != "marcus.webb@melrosetutorclub.org" {
		t.Errorf("tutor email addressed to %q", email.To)
	}
	if want := "Tutoring Session Reminder: Avery Lindqvist - Mathematics"; email.Subject != want {
		t.Errorf("subject = %q, want %q", email.Subject, want)
	}

	for _, want := range []string{
		"Mathematics - Algebra 2",
		"Level: Honors",
		"Day: Tuesday",
		"Time: 3:30 PM",
		"Name: Avery Lindqvist",
		"Phone: (781) 555-0142",
		"Grade: 10",
		"Working through quadratic functions.",
	} {
		if !strings.Contains(email.Text, want) {
			t.Errorf("tutor email body missing %q", want)
		}
	}
}

func TestComposeStudentEmail(t *testing.T) {
	email := ComposeStudentEmail(sampleDetail())

	if email.To != "avery@example.com" {
		t.Errorf("student email addressed to %q", email.To)
	}
	if want := "Tutoring Session Confirmation: Mathematics"; email.Subject != want {
		t.Errorf("subject = %q, want %q", email.Subject, want)
	}

	for _, want := range []string{
		"Day: Tuesday",
		"Time: 3:30 PM",
		"Name: Marcus Webb",
		"marcus.webb@melrosetutorclub.org",
	} {
		if !strings.Contains(email.Text, want) {
			t.Errorf("student email body missing %q", want)
		}
	}
}

func TestComposeWithoutOptionalFields(t *testing.T) {
	detail := sampleDetail()
	detail.Phone = nil
	detail.Notes = nil

	email := ComposeTutorEmail(detail)

	if !strings.Contains(email.Text, "Phone: Not provided") {
		t.Errorf("missing phone should render as Not provided")
	}
	if strings.Contains(email.Text, "Additional Notes") {
		t.Errorf("notes section must be absent when there are no notes")
	}
}
