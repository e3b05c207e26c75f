package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/melrosetutorclub/booking/internal/booking"
)

const sendTimeout = 15 * time.Second

// Dispatcher consumes post-commit booking confirmations and sends the
// tutor and student emails for each. It is fire-and-forget relative to
// the booking transaction: a full queue drops the event with a log line,
// and send failures are logged, never propagated. The two sends per
// booking are independent.
type Dispatcher struct {
	mailer Mailer
	from   string
	log    *zap.Logger

	queue chan booking.AppointmentDetail
	wg    sync.WaitGroup
	once  sync.Once
}

func NewDispatcher(mailer Mailer, from string, queueSize int, log *zap.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	d := &Dispatcher{
		mailer: mailer,
		from:   from,
		log:    log,
		queue:  make(chan booking.AppointmentDetail, queueSize),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

// BookingConfirmed implements booking.ConfirmationSink.
func (d *Dispatcher) BookingConfirmed(detail booking.AppointmentDetail) {
	select {
	case d.queue <- detail:
	default:
		d.log.Error("notification queue full, dropping booking confirmation",
			zap.String("appointment_id", detail.ID.String()))
	}
}

// Close stops accepting events and blocks until queued ones are sent.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for detail := range d.queue {
		d.dispatch(detail)
	}
}

func (d *Dispatcher) dispatch(detail booking.AppointmentDetail) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	tutorEmail := ComposeTutorEmail(detail)
	if tutorEmail.To == "" {
		d.log.Error("booking confirmation has no tutor email",
			zap.String("appointment_id", detail.ID.String()))
	} else if err := d.mailer.Send(ctx, d.from, tutorEmail); err != nil {
		d.log.Error("sending tutor reminder failed",
			zap.String("appointment_id", detail.ID.String()),
			zap.Error(err))
	} else {
		d.log.Info("tutor reminder sent",
			zap.String("appointment_id", detail.ID.String()),
			zap.String("to", tutorEmail.To))
	}

	studentEmail := ComposeStudentEmail(detail)
	if err := d.mailer.Send(ctx, d.from, studentEmail); err != nil {
		d.log.Error("sending student confirmation failed",
			zap.String("appointment_id", detail.ID.String()),
			zap.Error(err))
	} else {
		d.log.Info("student confirmation sent",
			zap.String("appointment_id", detail.ID.String()),
			zap.String("to", studentEmail.To))
	}
}
