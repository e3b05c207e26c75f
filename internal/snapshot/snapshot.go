// Package snapshot holds the static, read-only datasets served when the
// durable store is unreachable, and the seed records for an empty tutor
// directory. The documents are embedded so degraded mode has no runtime
// file dependencies.
package snapshot

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/melrosetutorclub/booking/internal/booking"
)

//go:embed tutors.json
var tutorsJSON []byte

//go:embed appointments.json
var appointmentsJSON []byte

type tutorsDocument struct {
	Tutors []booking.Tutor `json:"tutors"`
}

type appointmentsDocument struct {
	Appointments []booking.AppointmentDetail `json:"appointments"`
}

// Store decodes the embedded documents on demand. It is stateless and
// safe for concurrent use.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Tutors() ([]booking.Tutor, error) {
	var doc tutorsDocument
	if err := json.Unmarshal(tutorsJSON, &doc); err != nil {
		return nil, fmt.Errorf("decode tutors snapshot: %w", err)
	}
	return doc.Tutors, nil
}

func (s *Store) Appointments() ([]booking.AppointmentDetail, error) {
	var doc appointmentsDocument
	if err := json.Unmarshal(appointmentsJSON, &doc); err != nil {
		return nil, fmt.Errorf("decode appointments snapshot: %w", err)
	}
	return doc.Appointments, nil
}
