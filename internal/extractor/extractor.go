// Package extractor turns mandate text into a RawParsed guess, either via
// the remote language-model service or a deterministic local parser.
package extractor

import (
	"context"
	"errors"
	"fmt"

	"dealfinder/internal/model"
)

// Client is the extraction interface the pipeline depends on.
type Client interface {
	// Extract parses mandate text into a best-effort structured guess. The
	// context bounds and cancels the call; a superseded request must abort.
	Extract(ctx context.Context, text string) (*model.RawParsed, error)
}

// Kind classifies extraction failures so callers can present distinct
// messages and retry policies.
type Kind string

const (
	KindRateLimited Kind = "rate_limited" // 429: busy, retry shortly
	KindUnavailable Kind = "unavailable"  // 503: service or model down
	KindHTTPError   Kind = "http_error"   // any other non-2xx
	KindNetwork     Kind = "network"      // transport failure or timeout
	KindBadPayload  Kind = "bad_payload"  // response body is not usable JSON
)

// Error is a classified extraction failure.
type Error struct {
	Kind   Kind
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("extractor %s (status %d): %v", e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("extractor %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the failure kind from an error chain; unknown errors
// report as network-class failures.
func KindOf(err error) Kind {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Kind
	}
	return KindNetwork
}
