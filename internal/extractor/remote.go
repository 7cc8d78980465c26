package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"dealfinder/internal/jsonx"
	"dealfinder/internal/model"
)

// maxMandateLen caps the text forwarded to the remote service.
const maxMandateLen = 4000

// Remote calls the hosted mandate parser: POST {base}/parseBuyBox with a
// {"text": ...} body. Credential handling belongs to the proxy behind the
// base URL, so no Authorization header is sent.
type Remote struct {
	baseURL    string
	httpClient *http.Client
}

// NewRemote creates a remote extractor client. The timeout bounds every
// call; expiry is classified as a network failure.
func NewRemote(baseURL string, timeout time.Duration) *Remote {
	return &Remote{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Extract sends the mandate text and decodes the structured guess. Failures
// come back as *Error with a Kind the caller can branch on.
func (r *Remote) Extract(ctx context.Context, text string) (*model.RawParsed, error) {
	if len(text) > maxMandateLen {
		text = text[:maxMandateLen]
	}

	reqBody, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/parseBuyBox", r.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &Error{Kind: KindRateLimited, Status: resp.StatusCode, Err: fmt.Errorf("parser is rate limited")}
	case resp.StatusCode == http.StatusServiceUnavailable:
		return nil, &Error{Kind: KindUnavailable, Status: resp.StatusCode, Err: fmt.Errorf("parser is unavailable")}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &Error{Kind: KindHTTPError, Status: resp.StatusCode, Err: fmt.Errorf("parser request failed: %s", truncate(body, 200))}
	}

	// Malformed output is an extraction failure, same recoverable path as
	// an unreachable service.
	var raw model.RawParsed
	if err := jsonx.Unmarshal(string(body), &raw); err != nil {
		return nil, &Error{Kind: KindBadPayload, Status: resp.StatusCode, Err: err}
	}
	return &raw, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
