package snapshot

import (
	"testing"
)

func TestTutorsSnapshot(t *testing.T) {
	tutors, err := NewStore().Tutors()
	if err != nil {
		t.Fatalf("Tutors returned error: %v", err)
	}
	if len(tutors) == 0 {
		t.Fatal("tutor snapshot is empty")
	}

	for _, tutor := range tutors {
		if tutor.ID.String() == "00000000-0000-0000-0000-000000000000" {
			t.Errorf("tutor %q has no ID", tutor.Name)
		}
		if tutor.Email == "" {
			t.Errorf("tutor %q has no email", tutor.Name)
		}
		if len(tutor.Subjects) == 0 {
			t.Errorf("tutor %q offers no subjects", tutor.Name)
		}
		if len(tutor.Availability) == 0 {
			t.Errorf("tutor %q has no availability", tutor.Name)
		}
	}
}

func TestAppointmentsSnapshot(t *testing.T) {
	appts, err := NewStore().Appointments()
	if err != nil {
		t.Fatalf("Appointments returned error: %v", err)
	}

	// Every snapshot appointment references a snapshot tutor and has it
	// embedded for display.
	tutors, err := NewStore().Tutors()
	if err != nil {
		t.Fatalf("Tutors returned error: %v", err)
	}
	known := make(map[string]bool, len(tutors))
	for _, tutor := range tutors {
		known[tutor.ID.String()] = true
	}

	for _, a := range appts {
		if !known[a.TutorID.String()] {
			t.Errorf("appointment %s references unknown tutor %s", a.ID, a.TutorID)
		}
		if a.Tutor == nil {
			t.Errorf("appointment %s has no embedded tutor", a.ID)
		} else if a.Tutor.ID != a.TutorID {
			t.Errorf("appointment %s embeds mismatched tutor %s", a.ID, a.Tutor.ID)
		}
		if a.Status != "confirmed" {
			t.Errorf("appointment %s has status %q", a.ID, a.Status)
		}
	}
}

func TestTutorAvailabilityOrderPreserved(t *testing.T) {
	tutors, err := NewStore().Tutors()
	if err != nil {
		t.Fatalf("Tutors returned error: %v", err)
	}

	for _, tutor := range tutors {
		for day, times := range tutor.Availability {
			for i := 1; i < len(times); i++ {
				if times[i-1] >= times[i] {
					t.Errorf("tutor %q %s times out of order: %v", tutor.Name, day, times)
				}
			}
		}
	}
}
