package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/melrosetutorclub/booking/internal/captcha"
	"github.com/melrosetutorclub/booking/internal/db"
	redisclient "github.com/melrosetutorclub/booking/internal/redis"
)

const (
	EventBookingConfirmed = "BOOKING_CONFIRMED"
	EventTutorsSeeded     = "TUTORS_SEEDED"
)

var (
	// ErrSlotBusy means another request holds the slot lock right now.
	ErrSlotBusy = errors.New("slot is currently being booked, please retry")

	// ErrStoreUnavailable wraps a connectivity failure that survived the
	// single retry. Write paths surface it; read paths fall back to the
	// static snapshot instead.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// SnapshotSource provides the static fallback datasets served when the
// store is unreachable, and the seed records for an empty directory.
type SnapshotSource interface {
	Tutors() ([]Tutor, error)
	Appointments() ([]AppointmentDetail, error)
}

// ConfirmationSink receives post-commit booking events. Sink outcomes
// never affect the already-committed booking.
type ConfirmationSink interface {
	BookingConfirmed(detail AppointmentDetail)
}

// BookingRequest carries everything a student submits from the wizard.
type BookingRequest struct {
	StudentName  string
	Email        string
	Phone        string
	Grade        string
	Subject      string
	ClassName    string
	Level        string
	TutorID      uuid.UUID
	Day          string
	Time         string
	Notes        string
	CaptchaToken string
}

type Service struct {
	repo     Repository
	locker   redisclient.Locker
	verifier captcha.Verifier
	snapshot SnapshotSource
	sink     ConfirmationSink
	log      *zap.Logger
}

func NewService(repo Repository, locker redisclient.Locker, verifier captcha.Verifier, snapshot SnapshotSource, sink ConfirmationSink, log *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		locker:   locker,
		verifier: verifier,
		snapshot: snapshot,
		sink:     sink,
		log:      log,
	}
}

// withRetry runs op, retrying exactly once when the failure looks like
// transient store connectivity. A second failure is reported as
// ErrStoreUnavailable; all other errors pass through untouched.
func (s *Service) withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	err := op(ctx)
	if err == nil || !db.IsUnavailable(err) {
		return err
	}

	s.log.Warn("store unavailable, retrying once", zap.Error(err))

	if err = op(ctx); err == nil {
		return nil
	}
	if db.IsUnavailable(err) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}

// ListTutors returns all tutors most-recently-created first. An empty
// directory is bootstrapped from the static snapshot on the same call;
// an unreachable store degrades to serving the snapshot verbatim.
func (s *Service) ListTutors(ctx context.Context) ([]Tutor, error) {
	var tutors []Tutor
	err := s.withRetry(ctx, func(ctx context.Context) error {
		var e error
		tutors, e = s.repo.ListTutors(ctx)
		return e
	})
	if err != nil {
		s.log.Warn("listing tutors failed, serving snapshot", zap.Error(err))
		return s.snapshot.Tutors()
	}

	if len(tutors) == 0 {
		return s.seedTutors(ctx)
	}

	return tutors, nil
}

// seedTutors is the one-time bootstrap of an empty directory. Failures
// degrade to whatever partial state exists rather than failing the read.
func (s *Service) seedTutors(ctx context.Context) ([]Tutor, error) {
	snap, err := s.snapshot.Tutors()
	if err != nil {
		s.log.Error("loading tutor snapshot for seeding failed", zap.Error(err))
		return nil, nil
	}

	s.log.Info("tutor directory empty, seeding from snapshot", zap.Int("tutors", len(snap)))

	seeded := 0
	for _, t := range snap {
		if _, err := s.repo.CreateTutor(ctx, t); err != nil {
			s.log.Error("seeding tutor failed",
				zap.String("tutor", t.Name),
				zap.Error(err))
			continue
		}
		seeded++
	}

	s.logEvent(ctx, nil, EventTutorsSeeded, map[string]any{"seeded": seeded})

	tutors, err := s.repo.ListTutors(ctx)
	if err != nil {
		s.log.Error("re-reading tutors after seeding failed", zap.Error(err))
		return nil, nil
	}
	return tutors, nil
}

// CreateTutor is the administrative write path. No snapshot fallback:
// failed writes are reported as failed.
func (s *Service) CreateTutor(ctx context.Context, t Tutor) (*Tutor, error) {
	var created *Tutor
	err := s.withRetry(ctx, func(ctx context.Context) error {
		var e error
		created, e = s.repo.CreateTutor(ctx, t)
		return e
	})
	if err != nil {
		return nil, fmt.Errorf("create tutor: %w", err)
	}
	return created, nil
}

// ListAppointments returns all appointments with their tutor embedded,
// most-recently-created first, with the same snapshot degradation as
// ListTutors.
func (s *Service) ListAppointments(ctx context.Context) ([]AppointmentDetail, error) {
	var appts []AppointmentDetail
	err := s.withRetry(ctx, func(ctx context.Context) error {
		var e error
		appts, e = s.repo.ListAppointments(ctx)
		return e
	})
	if err != nil {
		s.log.Warn("listing appointments failed, serving snapshot", zap.Error(err))
		return s.snapshot.Appointments()
	}
	return appts, nil
}

// CreateAppointment adjudicates a booking request. Preconditions are
// checked in a fixed, observable order: captcha, tutor existence, slot
// conflict. The conflict pre-check runs inside a per-slot Redis lock and
// the insert is additionally guarded by the confirmed-slot unique index,
// which is the authoritative serialization point.
func (s *Service) CreateAppointment(ctx context.Context, req BookingRequest) (*AppointmentDetail, error) {
	if err := s.verifier.Verify(ctx, req.CaptchaToken); err != nil {
		return nil, err
	}

	var tutor *Tutor
	err := s.withRetry(ctx, func(ctx context.Context) error {
		var e error
		tutor, e = s.repo.GetTutorByID(ctx, req.TutorID)
		return e
	})
	if err != nil {
		if errors.Is(err, ErrTutorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load tutor: %w", err)
	}

	var created *Appointment

	err = s.locker.WithSlotLock(ctx, req.TutorID, req.Day, req.Time, func(lockCtx context.Context) error {
		return s.withRetry(lockCtx, func(lockCtx context.Context) error {
			// Fast user-facing rejection; the unique index is what actually
			// serializes concurrent bookings. Re-running the check on the
			// retried attempt also keeps an insert that committed before
			// the connection dropped from being written twice.
			existing, err := s.repo.GetConfirmedAppointment(lockCtx, req.TutorID, req.Day, req.Time)
			if err != nil && !errors.Is(err, ErrAppointmentNotFound) {
				return fmt.Errorf("check confirmed appointment: %w", err)
			}
			if existing != nil {
				return ErrSlotTaken
			}

			appt, err := s.repo.CreateAppointment(lockCtx, appointmentFromRequest(req))
			if err != nil {
				return err
			}

			created = appt
			return nil
		})
	})

	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrSlotBusy
		}
		return nil, err
	}

	detail := AppointmentDetail{Appointment: *created, Tutor: tutor}

	s.logEvent(ctx, &created.ID, EventBookingConfirmed, map[string]any{
		"tutor_id": req.TutorID.String(),
		"day":      req.Day,
		"time":     req.Time,
	})

	if s.sink != nil {
		s.sink.BookingConfirmed(detail)
	}

	return &detail, nil
}

func appointmentFromRequest(req BookingRequest) Appointment {
	a := Appointment{
		StudentName: req.StudentName,
		Email:       req.Email,
		Grade:       req.Grade,
		Subject:     req.Subject,
		ClassName:   req.ClassName,
		Level:       req.Level,
		TutorID:     req.TutorID,
		Day:         req.Day,
		Time:        req.Time,
		Status:      StatusConfirmed,
	}
	if req.Phone != "" {
		phone := req.Phone
		a.Phone = &phone
	}
	if req.Notes != "" {
		notes := req.Notes
		a.Notes = &notes
	}
	return a
}

func (s *Service) logEvent(ctx context.Context, appointmentID *uuid.UUID, eventType string, payload map[string]any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("marshal event payload failed",
			zap.String("event", eventType),
			zap.Error(err))
		data = nil
	}

	ev := EventLog{
		EventType:     eventType,
		AppointmentID: appointmentID,
		Payload:       data,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.InsertEvent(ctx, ev); err != nil {
		s.log.Error("insert event log failed",
			zap.String("event", eventType),
			zap.Error(err))
	}
}
