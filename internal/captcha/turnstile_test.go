package captcha

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestVerifyMissingToken(t *testing.T) {
	contacted := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contacted = true
	}))
	defer srv.Close()

	v := NewTurnstileVerifier("secret", srv.URL)

	err := v.Verify(context.Background(), "")
	if !errors.Is(err, ErrTokenRequired) {
		t.Fatalf("expected ErrTokenRequired, got %v", err)
	}
	if contacted {
		t.Error("verification service must not be contacted without a token")
	}
}

func TestVerifyAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("secret"); got != "shared-secret" {
			t.Errorf("secret = %q", got)
		}
		if got := r.PostForm.Get("response"); got != "the-token" {
			t.Errorf("response = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	v := NewTurnstileVerifier("shared-secret", srv.URL)

	if err := v.Verify(context.Background(), "the-token"); err != nil {
		t.Fatalf("expected acceptance, got %v", err)
	}
}

func TestVerifyRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": false, "error-codes": ["invalid-input-response"]}`))
	}))
	defer srv.Close()

	v := NewTurnstileVerifier("shared-secret", srv.URL)

	err := v.Verify(context.Background(), "stale-token")
	if !errors.Is(err, ErrTokenRejected) {
		t.Fatalf("expected ErrTokenRejected, got %v", err)
	}
}

func TestVerifyTransportFailureRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	v := NewTurnstileVerifier("shared-secret", srv.URL)

	err := v.Verify(context.Background(), "any-token")
	if !errors.Is(err, ErrTokenRejected) {
		t.Fatalf("transient failure must surface as rejection, got %v", err)
	}
}
