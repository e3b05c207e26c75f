package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrTokenRequired = errors.New("captcha token is required")
	ErrTokenRejected = errors.New("captcha verification failed")
)

// Verifier validates a client-supplied challenge token. The gate is
// stateless and has no retry policy: a transient failure of the
// verification service surfaces as rejection, not as a retryable error.
type Verifier interface {
	Verify(ctx context.Context, token string) error
}

// TurnstileVerifier forwards tokens to the Cloudflare Turnstile
// siteverify endpoint together with the shared secret.
type TurnstileVerifier struct {
	secret   string
	endpoint string
	client   *http.Client
}

func NewTurnstileVerifier(secret, endpoint string) *TurnstileVerifier {
	return &TurnstileVerifier{
		secret:   secret,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify returns nil iff the verification service reports success.
// A missing token is rejected without contacting the service.
func (v *TurnstileVerifier) Verify(ctx context.Context, token string) error {
	if token == "" {
		return ErrTokenRequired
	}

	form := url.Values{
		"secret":   {v.secret},
		"response": {token},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTokenRejected, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTokenRejected, err)
	}
	defer resp.Body.Close()

	var body siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: decode siteverify response: %v", ErrTokenRejected, err)
	}

	if !body.Success {
		if len(body.ErrorCodes) > 0 {
			return fmt.Errorf("%w: %s", ErrTokenRejected, strings.Join(body.ErrorCodes, ", "))
		}
		return ErrTokenRejected
	}

	return nil
}
