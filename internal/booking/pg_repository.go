package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/melrosetutorclub/booking/internal/db"
)

const confirmedSlotConstraint = "appointments_confirmed_slot_key"

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Helpers

func scanTutor(row pgx.Row) (*Tutor, error) {
	var t Tutor

	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Email,
		&t.Subjects,
		&t.Availability,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTutorNotFound
		}
		return nil, err
	}

	return &t, nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var phone, notes *string

	err := row.Scan(
		&a.ID,
		&a.StudentName,
		&a.Email,
		&phone,
		&a.Grade,
		&a.Subject,
		&a.ClassName,
		&a.Level,
		&a.TutorID,
		&a.Day,
		&a.Time,
		&a.Status,
		&notes,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	a.Phone = phone
	a.Notes = notes
	return &a, nil
}

// Interface methods

func (r *PgRepository) ListTutors(ctx context.Context) ([]Tutor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, subjects, availability, created_at, updated_at
		FROM tutors
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Tutor
	for rows.Next() {
		t, err := scanTutor(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) GetTutorByID(ctx context.Context, id uuid.UUID) (*Tutor, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, subjects, availability, created_at, updated_at
		FROM tutors
		WHERE id = $1
	`, id)
	return scanTutor(row)
}

func (r *PgRepository) CreateTutor(ctx context.Context, t Tutor) (*Tutor, error) {
	id := t.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	if t.Subjects == nil {
		t.Subjects = SubjectMap{}
	}
	if t.Availability == nil {
		t.Availability = AvailabilityMap{}
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO tutors (id, name, email, subjects, availability, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING id, name, email, subjects, availability, created_at, updated_at
	`, id, t.Name, t.Email, t.Subjects, t.Availability)

	return scanTutor(row)
}

func (r *PgRepository) ListAppointments(ctx context.Context) ([]AppointmentDetail, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.student_name, a.email, a.phone, a.grade,
		       a.subject, a.class_name, a.level, a.tutor_id, a.day, a."time",
		       a.status, a.notes, a.created_at,
		       t.id, t.name, t.email, t.subjects, t.availability, t.created_at, t.updated_at
		FROM appointments a
		JOIN tutors t ON t.id = a.tutor_id
		ORDER BY a.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []AppointmentDetail
	for rows.Next() {
		var a Appointment
		var t Tutor
		var phone, notes *string

		err := rows.Scan(
			&a.ID, &a.StudentName, &a.Email, &phone, &a.Grade,
			&a.Subject, &a.ClassName, &a.Level, &a.TutorID, &a.Day, &a.Time,
			&a.Status, &notes, &a.CreatedAt,
			&t.ID, &t.Name, &t.Email, &t.Subjects, &t.Availability, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		a.Phone = phone
		a.Notes = notes
		result = append(result, AppointmentDetail{Appointment: a, Tutor: &t})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) GetConfirmedAppointment(ctx context.Context, tutorID uuid.UUID, day, timeOfDay string) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, student_name, email, phone, grade,
		       subject, class_name, level, tutor_id, day, "time",
		       status, notes, created_at
		FROM appointments
		WHERE tutor_id = $1 AND day = $2 AND "time" = $3 AND status = 'confirmed'
	`, tutorID, day, timeOfDay)
	return scanAppointment(row)
}

func (r *PgRepository) CreateAppointment(ctx context.Context, a Appointment) (*Appointment, error) {
	id := a.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (id, student_name, email, phone, grade,
		                          subject, class_name, level, tutor_id, day, "time",
		                          status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 'confirmed', $12, now())
		RETURNING id, student_name, email, phone, grade,
		          subject, class_name, level, tutor_id, day, "time",
		          status, notes, created_at
	`, id, a.StudentName, a.Email, a.Phone, a.Grade,
		a.Subject, a.ClassName, a.Level, a.TutorID, a.Day, a.Time, a.Notes)

	created, err := scanAppointment(row)
	if err != nil {
		if db.IsUniqueViolation(err, confirmedSlotConstraint) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	return created, nil
}

func (r *PgRepository) InsertEvent(ctx context.Context, ev EventLog) error {
	var appID *uuid.UUID
	if ev.AppointmentID != nil {
		appID = ev.AppointmentID
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO event_logs (event_type, appointment_id, payload, created_at)
		VALUES ($1, $2, $3, COALESCE($4, now()))
	`, ev.EventType, appID, ev.Payload, nullableTime(ev.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert event log: %w", err)
	}

	return nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
