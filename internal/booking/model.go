package booking

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	// StatusConfirmed is the only status the booking flow ever writes.
	// The column exists so a cancellation feature can slot in without a
	// schema change.
	StatusConfirmed AppointmentStatus = "confirmed"
)

// SubjectMap is subject name -> class name -> levels the tutor teaches
// for that class, e.g. {"Mathematics": {"Algebra 1": ["Honors", "CP"]}}.
type SubjectMap map[string]map[string][]string

// AvailabilityMap is weekday token (monday..friday) -> ordered list of
// 24-hour "HH:MM" times the tutor is willing to hold sessions.
type AvailabilityMap map[string][]string

type Tutor struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Subjects     SubjectMap      `json:"subjects"`
	Availability AvailabilityMap `json:"availability"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type Appointment struct {
	ID          uuid.UUID         `json:"id"`
	StudentName string            `json:"studentName"`
	Email       string            `json:"email"`
	Phone       *string           `json:"phone,omitempty"`
	Grade       string            `json:"grade"`
	Subject     string            `json:"subject"`
	ClassName   string            `json:"className"`
	Level       string            `json:"level"`
	TutorID     uuid.UUID         `json:"tutorId"`
	Day         string            `json:"day"`
	Time        string            `json:"time"`
	Status      AppointmentStatus `json:"status"`
	Notes       *string           `json:"notes,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// AppointmentDetail is an appointment denormalized with its tutor for
// display. The appointment only weakly references the tutor.
type AppointmentDetail struct {
	Appointment
	Tutor *Tutor `json:"tutor,omitempty"`
}

type EventLog struct {
	ID            int64
	EventType     string
	AppointmentID *uuid.UUID
	Payload       []byte
	CreatedAt     time.Time
}
