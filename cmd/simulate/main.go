// simulate fires a burst of concurrent booking requests at a single
// (tutor, day, time) slot and reports how the conflict guard held up.
// Exactly one request should succeed; the rest should be rejected with
// a conflict. Point TURNSTILE_SECRET_KEY at Cloudflare's always-pass
// test secret so the bot gate admits the dummy tokens.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

type tutorsResponse struct {
	Tutors []struct {
		ID           string              `json:"id"`
		Name         string              `json:"name"`
		Subjects     map[string]map[string][]string `json:"subjects"`
		Availability map[string][]string `json:"availability"`
	} `json:"tutors"`
}

type bookingPayload struct {
	StudentName  string `json:"studentName"`
	Email        string `json:"email"`
	Grade        string `json:"grade"`
	Subject      string `json:"subject"`
	ClassName    string `json:"className"`
	Level        string `json:"level"`
	TutorID      string `json:"tutorId"`
	Day          string `json:"day"`
	Time         string `json:"time"`
	CaptchaToken string `json:"captchaToken"`
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "API base URL")
	workers := flag.Int("workers", 20, "concurrent booking attempts")
	flag.Parse()

	log.SetFlags(log.LstdFlags)

	client := &http.Client{Timeout: 10 * time.Second}

	payload, err := pickTarget(client, *baseURL)
	if err != nil {
		log.Fatalf("pick target slot: %v", err)
	}

	log.Printf("storming slot tutor=%s day=%s time=%s with %d workers",
		payload.TutorID, payload.Day, payload.Time, *workers)

	var created, conflict, other int64
	var wg sync.WaitGroup

	start := time.Now()
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			p := payload
			p.StudentName = fmt.Sprintf("Load Tester %02d", n)
			p.Email = fmt.Sprintf("load.tester%02d@example.com", n)

			status, err := postBooking(client, *baseURL, p)
			switch {
			case err != nil:
				atomic.AddInt64(&other, 1)
			case status == http.StatusCreated:
				atomic.AddInt64(&created, 1)
			case status == http.StatusConflict:
				atomic.AddInt64(&conflict, 1)
			default:
				atomic.AddInt64(&other, 1)
			}
		}(i)
	}
	wg.Wait()

	log.Printf("done in %s: created=%d conflict=%d other=%d",
		time.Since(start).Round(time.Millisecond), created, conflict, other)

	if created != 1 {
		log.Printf("WARNING: expected exactly one successful booking, got %d", created)
	}
}

// pickTarget reads the tutor directory and builds a booking for the
// first tutor with a free offering and availability.
func pickTarget(client *http.Client, baseURL string) (bookingPayload, error) {
	resp, err := client.Get(baseURL + "/tutors")
	if err != nil {
		return bookingPayload{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return bookingPayload{}, fmt.Errorf("GET /tutors: status %d", resp.StatusCode)
	}

	var doc tutorsResponse
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return bookingPayload{}, err
	}

	for _, t := range doc.Tutors {
		for day, times := range t.Availability {
			if len(times) == 0 {
				continue
			}
			for subject, classes := range t.Subjects {
				for className, levels := range classes {
					if len(levels) == 0 {
						continue
					}
					return bookingPayload{
						Grade:        "11",
						Subject:      subject,
						ClassName:    className,
						Level:        levels[0],
						TutorID:      t.ID,
						Day:          day,
						Time:         times[0],
						CaptchaToken: "XXXX.DUMMY.TOKEN.XXXX",
					}, nil
				}
			}
		}
	}

	return bookingPayload{}, fmt.Errorf("no bookable tutor found in %d tutors", len(doc.Tutors))
}

func postBooking(client *http.Client, baseURL string, p bookingPayload) (int, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return 0, err
	}

	resp, err := client.Post(baseURL+"/appointments", "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
