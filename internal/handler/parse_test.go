package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"dealfinder/internal/extractor"
	"dealfinder/internal/model"
	"dealfinder/internal/service"
)

func newTestRouter(pipeline *service.Pipeline) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewParseHandler(pipeline)
	router.POST("/api/v1/parse", h.Parse)
	router.POST("/api/v1/parse/stream", h.ParseStream)
	return router
}

func TestParseEndpoint(t *testing.T) {
	pipeline := service.NewPipeline(nil, extractor.NewLocal(), nil, false)
	router := newTestRouter(pipeline)

	body := `{"text":"Looking to buy a 60k-120k SF warehouse in Atlanta, budget under $15M"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp model.ParseResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.ParseID == "" {
		t.Error("parse_id is empty")
	}
	if resp.Source != service.SourceLocal {
		t.Errorf("source = %q, want %q", resp.Source, service.SourceLocal)
	}
	if resp.Record == nil || resp.Record.Intent != model.IntentAcquisition {
		t.Errorf("record = %+v, want acquisition intent", resp.Record)
	}
	if resp.Coverage < 80 {
		t.Errorf("coverage = %d, want >= 80", resp.Coverage)
	}
}

func TestParseEndpointValidation(t *testing.T) {
	pipeline := service.NewPipeline(nil, extractor.NewLocal(), nil, false)
	router := newTestRouter(pipeline)

	tests := []struct {
		name string
		body string
	}{
		{"missing text", `{}`},
		{"blank text", `{"text":"   "}`},
		{"malformed JSON", `{"text":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

// kindFailer is an extractor client that always fails with a fixed kind.
type kindFailer extractor.Kind

func (k kindFailer) Extract(ctx context.Context, text string) (*model.RawParsed, error) {
	return nil, &extractor.Error{Kind: extractor.Kind(k), Err: errors.New("synthetic failure")}
}

func TestParseEndpointFailureStatuses(t *testing.T) {
	tests := []struct {
		name       string
		kind       extractor.Kind
		wantStatus int
	}{
		{"rate limited maps to 429", extractor.KindRateLimited, http.StatusTooManyRequests},
		{"unavailable maps to 503", extractor.KindUnavailable, http.StatusServiceUnavailable},
		{"bad payload maps to 502", extractor.KindBadPayload, http.StatusBadGateway},
		{"network maps to 502", extractor.KindNetwork, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline := service.NewPipeline(kindFailer(tt.kind), extractor.NewLocal(), nil, false)
			router := newTestRouter(pipeline)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader(`{"text":"buy a warehouse"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var body model.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("error body is not valid JSON: %v", err)
			}
			if body.Kind != string(tt.kind) {
				t.Errorf("kind = %q, want %q", body.Kind, tt.kind)
			}
		})
	}
}

func TestParseStreamEndpoint(t *testing.T) {
	pipeline := service.NewPipeline(nil, extractor.NewLocal(), nil, false)
	router := newTestRouter(pipeline)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse/stream", strings.NewReader(`{"text":"buy a warehouse in atlanta"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	out := w.Body.String()
	for _, event := range []string{"event: extracting", "event: record", "event: done"} {
		if !strings.Contains(out, event) {
			t.Errorf("stream output missing %q:\n%s", event, out)
		}
	}
}
