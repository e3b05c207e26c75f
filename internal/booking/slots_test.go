package booking

import (
	"testing"

	"github.com/google/uuid"
)

func testTutors() []Tutor {
	return []Tutor{
		{
			ID:   uuid.MustParse("5b3f1c2e-8d4a-4f6b-9c7d-1a2b3c4d5e6f"),
			Name: "Sarah Chen",
			Subjects: SubjectMap{
				"Mathematics": {
					"Algebra 1": {"CP", "Honors"},
					"Geometry":  {"CP"},
				},
			},
			Availability: AvailabilityMap{
				"monday": {"15:00", "15:30"},
				"friday": {"14:30"},
			},
		},
		{
			ID:   uuid.MustParse("9e8d7c6b-5a4f-4e3d-8c2b-1f0e9d8c7b6a"),
			Name: "Marcus Webb",
			Subjects: SubjectMap{
				"Mathematics": {
					"Algebra 1":   {"Honors", "AP"},
					"Precalculus": {"AP"},
				},
				"Science": {
					"Physics": {"CP"},
				},
			},
			Availability: AvailabilityMap{
				"tuesday": {"16:00"},
			},
		},
	}
}

func TestAvailableClasses(t *testing.T) {
	tutors := testTutors()

	// Tutor source order, classes alphabetical within each tutor, and
	// the same result on every call.
	want := []string{"Algebra 1", "Geometry", "Precalculus"}
	for i := 0; i < 5; i++ {
		classes := AvailableClasses(tutors, "Mathematics")
		if len(classes) != len(want) {
			t.Fatalf("expected %d classes, got %d: %v", len(want), len(classes), classes)
		}
		for j, c := range classes {
			if c != want[j] {
				t.Fatalf("expected %v, got %v", want, classes)
			}
		}
	}

	if got := AvailableClasses(tutors, "Latin"); len(got) != 0 {
		t.Errorf("expected no classes for unknown subject, got %v", got)
	}
}

func TestAvailableLevels(t *testing.T) {
	tutors := testTutors()

	levels := AvailableLevels(tutors, "Mathematics", "Algebra 1")
	if len(levels) != 3 {
		t.Fatalf("expected 3 deduplicated levels, got %d: %v", len(levels), levels)
	}
	seen := make(map[string]bool)
	for _, l := range levels {
		seen[l] = true
	}
	for _, want := range []string{"CP", "Honors", "AP"} {
		if !seen[want] {
			t.Errorf("expected level %q in %v", want, levels)
		}
	}

	if got := AvailableLevels(tutors, "Mathematics", "Calculus"); len(got) != 0 {
		t.Errorf("expected no levels for unknown class, got %v", got)
	}
	if got := AvailableLevels(tutors, "Latin", "Algebra 1"); len(got) != 0 {
		t.Errorf("expected no levels for unknown subject, got %v", got)
	}
}

func TestAvailableTutors(t *testing.T) {
	tutors := testTutors()

	honors := AvailableTutors(tutors, "Mathematics", "Algebra 1", "Honors")
	if len(honors) != 2 {
		t.Fatalf("expected both tutors for Honors Algebra 1, got %d", len(honors))
	}
	// Source-collection order is preserved.
	if honors[0].Name != "Sarah Chen" || honors[1].Name != "Marcus Webb" {
		t.Errorf("expected stable source order, got %s, %s", honors[0].Name, honors[1].Name)
	}

	ap := AvailableTutors(tutors, "Mathematics", "Algebra 1", "AP")
	if len(ap) != 1 || ap[0].Name != "Marcus Webb" {
		t.Errorf("expected only Marcus Webb for AP, got %v", ap)
	}

	if got := AvailableTutors(tutors, "Science", "Physics", "AP"); len(got) != 0 {
		t.Errorf("expected no tutors for unoffered level, got %v", got)
	}
}

func TestAvailableTimes(t *testing.T) {
	tutors := testTutors()

	times := AvailableTimes(tutors[0], "monday")
	if len(times) != 2 || times[0] != "15:00" || times[1] != "15:30" {
		t.Errorf("expected ordered monday times, got %v", times)
	}

	if got := AvailableTimes(tutors[0], "wednesday"); got != nil {
		t.Errorf("expected nil for absent day, got %v", got)
	}
}

func TestSlotFree(t *testing.T) {
	tutorID := uuid.MustParse("5b3f1c2e-8d4a-4f6b-9c7d-1a2b3c4d5e6f")
	otherID := uuid.MustParse("9e8d7c6b-5a4f-4e3d-8c2b-1f0e9d8c7b6a")

	confirmed := Appointment{TutorID: tutorID, Day: "monday", Time: "15:00", Status: StatusConfirmed}

	tests := []struct {
		name         string
		appointments []Appointment
		want         bool
	}{
		{"no appointments", nil, true},
		{"exact confirmed match", []Appointment{confirmed}, false},
		{"different time", []Appointment{{TutorID: tutorID, Day: "monday", Time: "15:30", Status: StatusConfirmed}}, true},
		{"different day", []Appointment{{TutorID: tutorID, Day: "friday", Time: "15:00", Status: StatusConfirmed}}, true},
		{"different tutor", []Appointment{{TutorID: otherID, Day: "monday", Time: "15:00", Status: StatusConfirmed}}, true},
		{"non-confirmed occupant", []Appointment{{TutorID: tutorID, Day: "monday", Time: "15:00", Status: "cancelled"}}, true},
		{
			"many records, one match",
			[]Appointment{
				{TutorID: otherID, Day: "monday", Time: "15:00", Status: StatusConfirmed},
				{TutorID: tutorID, Day: "tuesday", Time: "15:00", Status: StatusConfirmed},
				confirmed,
			},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SlotFree(tt.appointments, tutorID, "monday", "15:00")
			if got != tt.want {
				t.Errorf("SlotFree = %v, want %v", got, tt.want)
			}
		})
	}
}
