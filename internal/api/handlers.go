package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/melrosetutorclub/booking/internal/booking"
	"github.com/melrosetutorclub/booking/internal/captcha"
	redisclient "github.com/melrosetutorclub/booking/internal/redis"
)

// BookingService is what the handlers need from the booking layer.
type BookingService interface {
	ListTutors(ctx context.Context) ([]booking.Tutor, error)
	CreateTutor(ctx context.Context, t booking.Tutor) (*booking.Tutor, error)
	ListAppointments(ctx context.Context) ([]booking.AppointmentDetail, error)
	CreateAppointment(ctx context.Context, req booking.BookingRequest) (*booking.AppointmentDetail, error)
}

func listTutorsHandler(svc BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tutors, err := svc.ListTutors(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to fetch tutors and mock data unavailable")
			return
		}
		if tutors == nil {
			tutors = []booking.Tutor{}
		}
		writeJSON(w, http.StatusOK, TutorsResponse{Tutors: tutors})
	}
}

func createTutorHandler(svc BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTutorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if req.Name == "" || req.Email == "" {
			writeError(w, http.StatusBadRequest, "missing_fields", "name and email are required")
			return
		}

		tutor, err := svc.CreateTutor(r.Context(), booking.Tutor{
			Name:         req.Name,
			Email:        req.Email,
			Subjects:     req.Subjects,
			Availability: req.Availability,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to create tutor")
			return
		}

		writeJSON(w, http.StatusCreated, TutorResponse{Tutor: tutor})
	}
}

func listAppointmentsHandler(svc BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appts, err := svc.ListAppointments(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to fetch appointments and mock data unavailable")
			return
		}
		if appts == nil {
			appts = []booking.AppointmentDetail{}
		}
		writeJSON(w, http.StatusOK, AppointmentsResponse{Appointments: appts})
	}
}

func createAppointmentHandler(svc BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if missing := missingBookingFields(req); len(missing) > 0 {
			writeError(w, http.StatusBadRequest, "missing_fields", "required: "+strings.Join(missing, ", "))
			return
		}

		tutorID, err := uuid.Parse(req.TutorID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_tutor_id", "tutorId must be a valid UUID")
			return
		}

		detail, err := svc.CreateAppointment(r.Context(), booking.BookingRequest{
			StudentName:  req.StudentName,
			Email:        req.Email,
			Phone:        req.Phone,
			Grade:        req.Grade,
			Subject:      req.Subject,
			ClassName:    req.ClassName,
			Level:        req.Level,
			TutorID:      tutorID,
			Day:          req.Day,
			Time:         req.Time,
			Notes:        req.Notes,
			CaptchaToken: req.CaptchaToken,
		})
		if err != nil {
			handleCreateAppointmentError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, AppointmentResponse{Appointment: detail})
	}
}

func missingBookingFields(req CreateAppointmentRequest) []string {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"studentName", req.StudentName},
		{"email", req.Email},
		{"grade", req.Grade},
		{"subject", req.Subject},
		{"className", req.ClassName},
		{"level", req.Level},
		{"tutorId", req.TutorID},
		{"day", req.Day},
		{"time", req.Time},
	}
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func handleCreateAppointmentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, captcha.ErrTokenRequired):
		writeError(w, http.StatusBadRequest, "captcha_required", "Captcha verification is required")
	case errors.Is(err, captcha.ErrTokenRejected):
		writeError(w, http.StatusBadRequest, "captcha_failed", "Captcha verification failed")
	case errors.Is(err, booking.ErrTutorNotFound):
		writeError(w, http.StatusBadRequest, "tutor_unavailable", "Selected tutor is not available")
	case errors.Is(err, booking.ErrSlotTaken):
		writeError(w, http.StatusConflict, "slot_taken", "This time slot is no longer available")
	case errors.Is(err, booking.ErrSlotBusy),
		errors.Is(err, redisclient.ErrLockNotAcquired):
		writeError(w, http.StatusConflict, "slot_busy", "This time slot is currently being booked, please retry shortly")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to create appointment")
	}
}

func verifyCaptchaHandler(verifier captcha.Verifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VerifyCaptchaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if err := verifier.Verify(r.Context(), req.Token); err != nil {
			if errors.Is(err, captcha.ErrTokenRequired) {
				writeError(w, http.StatusBadRequest, "captcha_required", "Captcha token is required")
				return
			}
			writeError(w, http.StatusBadRequest, "captcha_failed", "Captcha verification failed")
			return
		}

		writeJSON(w, http.StatusOK, VerifyCaptchaResponse{Success: true})
	}
}
