package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/melrosetutorclub/booking/internal/booking"
	"github.com/melrosetutorclub/booking/internal/db"
)

var subjectCatalog = map[string][]string{
	"Mathematics": {"Algebra 1", "Geometry", "Algebra 2", "Precalculus"},
	"English":     {"English 1", "English 2"},
	"Science":     {"Biology", "Chemistry", "Physics"},
	"History":     {"World History", "US 1"},
}

var levelCatalog = []string{"CP", "Honors", "AP"}

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

var timeSlots = []string{"14:30", "15:00", "15:30", "16:00", "16:30", "17:00"}

func main() {
	tutorCount := flag.Int("tutors", 12, "number of demo tutors to create")
	apptCount := flag.Int("appointments", 20, "number of demo appointments to attempt")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(context.Background(), pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	repo := booking.NewPgRepository(pool)

	tutors, err := seedTutors(context.Background(), repo, *tutorCount)
	if err != nil {
		log.Fatalf("seed tutors: %v", err)
	}

	if err := seedAppointments(context.Background(), repo, tutors, *apptCount); err != nil {
		log.Fatalf("seed appointments: %v", err)
	}

	log.Println("seed complete")
}

func seedTutors(ctx context.Context, repo *booking.PgRepository, count int) ([]booking.Tutor, error) {
	log.Printf("seeding %d tutors", count)

	var tutors []booking.Tutor
	for i := 0; i < count; i++ {
		name := gofakeit.Name()
		t := booking.Tutor{
			Name:         name,
			Email:        tutorEmail(name),
			Subjects:     randomSubjects(),
			Availability: randomAvailability(),
		}

		created, err := repo.CreateTutor(ctx, t)
		if err != nil {
			return nil, err
		}
		tutors = append(tutors, *created)
	}

	log.Println("tutors seeded")
	return tutors, nil
}

func seedAppointments(ctx context.Context, repo *booking.PgRepository, tutors []booking.Tutor, count int) error {
	log.Printf("seeding up to %d appointments", count)

	created := 0
	for i := 0; i < count; i++ {
		tutor := tutors[gofakeit.Number(0, len(tutors)-1)]

		day, times := randomAvailableDay(tutor)
		if day == "" {
			continue
		}
		slot := times[gofakeit.Number(0, len(times)-1)]

		subject, className, level := randomOffering(tutor)
		if subject == "" {
			continue
		}

		phone := gofakeit.Phone()
		a := booking.Appointment{
			StudentName: gofakeit.Name(),
			Email:       gofakeit.Email(),
			Phone:       &phone,
			Grade:       fmt.Sprintf("%d", gofakeit.Number(9, 12)),
			Subject:     subject,
			ClassName:   className,
			Level:       level,
			TutorID:     tutor.ID,
			Day:         day,
			Time:        slot,
			Status:      booking.StatusConfirmed,
		}

		_, err := repo.CreateAppointment(ctx, a)
		if err != nil {
			if errors.Is(err, booking.ErrSlotTaken) {
				continue
			}
			return err
		}
		created++
	}

	log.Printf("%d appointments seeded", created)
	return nil
}

func tutorEmail(name string) string {
	slug := strings.ToLower(strings.ReplaceAll(name, " ", "."))
	return slug + "@melrosetutorclub.org"
}

func randomSubjects() booking.SubjectMap {
	subjects := booking.SubjectMap{}

	names := make([]string, 0, len(subjectCatalog))
	for name := range subjectCatalog {
		names = append(names, name)
	}

	picks := gofakeit.Number(1, 2)
	for i := 0; i < picks; i++ {
		subject := names[gofakeit.Number(0, len(names)-1)]
		if _, ok := subjects[subject]; ok {
			continue
		}

		classes := subjectCatalog[subject]
		classCount := gofakeit.Number(1, len(classes))
		classMap := make(map[string][]string, classCount)
		for j := 0; j < classCount; j++ {
			class := classes[gofakeit.Number(0, len(classes)-1)]
			if _, ok := classMap[class]; ok {
				continue
			}
			classMap[class] = randomLevels()
		}
		subjects[subject] = classMap
	}

	return subjects
}

func randomLevels() []string {
	n := gofakeit.Number(1, len(levelCatalog))
	return append([]string(nil), levelCatalog[:n]...)
}

func randomAvailability() booking.AvailabilityMap {
	avail := booking.AvailabilityMap{}
	dayCount := gofakeit.Number(2, 4)
	for i := 0; i < dayCount; i++ {
		day := weekdays[gofakeit.Number(0, len(weekdays)-1)]
		if _, ok := avail[day]; ok {
			continue
		}
		start := gofakeit.Number(0, len(timeSlots)-2)
		end := gofakeit.Number(start+1, len(timeSlots)-1)
		avail[day] = append([]string(nil), timeSlots[start:end+1]...)
	}
	return avail
}

func randomAvailableDay(tutor booking.Tutor) (string, []string) {
	for day, times := range tutor.Availability {
		if len(times) > 0 {
			return day, times
		}
	}
	return "", nil
}

func randomOffering(tutor booking.Tutor) (subject, className, level string) {
	for s, classes := range tutor.Subjects {
		for c, levels := range classes {
			if len(levels) > 0 {
				return s, c, levels[gofakeit.Number(0, len(levels)-1)]
			}
		}
	}
	return "", "", ""
}
