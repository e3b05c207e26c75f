package booking

import (
	"sort"

	"github.com/google/uuid"
)

// Slot derivation over in-memory collections. The booking wizard walks
// subject -> class -> level -> tutor -> day -> time; each step narrows
// the candidate set using these functions.

// AvailableClasses returns the class names offered by any tutor for the
// subject. Tutors are visited in source order and each tutor's classes
// alphabetically, so repeated calls yield the same list. Unknown
// subjects yield an empty list.
func AvailableClasses(tutors []Tutor, subject string) []string {
	var classes []string
	seen := make(map[string]bool)
	for _, t := range tutors {
		names := make([]string, 0, len(t.Subjects[subject]))
		for class := range t.Subjects[subject] {
			names = append(names, class)
		}
		sort.Strings(names)
		for _, class := range names {
			if !seen[class] {
				seen[class] = true
				classes = append(classes, class)
			}
		}
	}
	return classes
}

// AvailableLevels returns the deduplicated union of levels offered for
// subject+class across all tutors.
func AvailableLevels(tutors []Tutor, subject, className string) []string {
	var levels []string
	seen := make(map[string]bool)
	for _, t := range tutors {
		for _, level := range t.Subjects[subject][className] {
			if !seen[level] {
				seen[level] = true
				levels = append(levels, level)
			}
		}
	}
	return levels
}

// AvailableTutors returns, in source order, the tutors whose subject map
// contains the level for the given subject and class.
func AvailableTutors(tutors []Tutor, subject, className, level string) []Tutor {
	var matched []Tutor
	for _, t := range tutors {
		for _, l := range t.Subjects[subject][className] {
			if l == level {
				matched = append(matched, t)
				break
			}
		}
	}
	return matched
}

// AvailableTimes returns the tutor's nominal availability for the day,
// not yet filtered against existing bookings.
func AvailableTimes(tutor Tutor, day string) []string {
	return tutor.Availability[day]
}

// SlotFree reports whether no confirmed appointment occupies the exact
// (tutor, day, time) triple.
func SlotFree(appointments []Appointment, tutorID uuid.UUID, day, timeOfDay string) bool {
	for _, a := range appointments {
		if a.TutorID == tutorID && a.Day == day && a.Time == timeOfDay && a.Status == StatusConfirmed {
			return false
		}
	}
	return true
}
