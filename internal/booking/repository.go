package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrTutorNotFound       = errors.New("tutor not found")
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrSlotTaken is returned both by the optimistic pre-check and by
	// the storage-level uniqueness guard on insert.
	ErrSlotTaken = errors.New("time slot already booked")
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	ListTutors(ctx context.Context) ([]Tutor, error)
	GetTutorByID(ctx context.Context, id uuid.UUID) (*Tutor, error)
	CreateTutor(ctx context.Context, t Tutor) (*Tutor, error)

	ListAppointments(ctx context.Context) ([]AppointmentDetail, error)

	// For conflict checks
	GetConfirmedAppointment(ctx context.Context, tutorID uuid.UUID, day, timeOfDay string) (*Appointment, error)

	// CreateAppointment inserts a confirmed appointment and returns
	// ErrSlotTaken when the confirmed-slot unique index rejects it.
	CreateAppointment(ctx context.Context, a Appointment) (*Appointment, error)

	// Event logging
	InsertEvent(ctx context.Context, ev EventLog) error
}
