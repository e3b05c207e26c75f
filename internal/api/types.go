package api

import (
	"github.com/melrosetutorclub/booking/internal/booking"
)

type CreateTutorRequest struct {
	Name         string                  `json:"name"`
	Email        string                  `json:"email"`
	Subjects     booking.SubjectMap      `json:"subjects"`
	Availability booking.AvailabilityMap `json:"availability"`
}

type CreateAppointmentRequest struct {
	StudentName  string `json:"studentName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Grade        string `json:"grade"`
	Subject      string `json:"subject"`
	ClassName    string `json:"className"`
	Level        string `json:"level"`
	TutorID      string `json:"tutorId"`
	Day          string `json:"day"`
	Time         string `json:"time"`
	Notes        string `json:"notes"`
	CaptchaToken string `json:"captchaToken"`
}

type VerifyCaptchaRequest struct {
	Token string `json:"token"`
}

type TutorsResponse struct {
	Tutors []booking.Tutor `json:"tutors"`
}

type TutorResponse struct {
	Tutor *booking.Tutor `json:"tutor"`
}

type AppointmentsResponse struct {
	Appointments []booking.AppointmentDetail `json:"appointments"`
}

type AppointmentResponse struct {
	Appointment *booking.AppointmentDetail `json:"appointment"`
}

type VerifyCaptchaResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
