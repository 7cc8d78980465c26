package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"dealfinder/internal/extractor"
	"dealfinder/internal/model"
)

// slowExtractor blocks until its context is cancelled or the delay elapses.
type slowExtractor struct {
	delay time.Duration
	raw   *model.RawParsed
}

func (s *slowExtractor) Extract(ctx context.Context, text string) (*model.RawParsed, error) {
	select {
	case <-ctx.Done():
		return nil, &extractor.Error{Kind: extractor.KindNetwork, Err: ctx.Err()}
	case <-time.After(s.delay):
		return s.raw, nil
	}
}

// failingExtractor always fails with the given kind.
type failingExtractor struct {
	kind extractor.Kind
}

func (f *failingExtractor) Extract(ctx context.Context, text string) (*model.RawParsed, error) {
	return nil, &extractor.Error{Kind: f.kind, Err: errors.New("synthetic failure")}
}

// memoryLogger captures LogParse calls for assertions.
type memoryLogger struct {
	mu      sync.Mutex
	entries []string
	done    chan struct{}
}

func (m *memoryLogger) LogParse(ctx context.Context, parseID, query, source string, record *model.UniversalParsed, coverage int, tookMS int64) error {
	m.mu.Lock()
	m.entries = append(m.entries, parseID)
	m.mu.Unlock()
	if m.done != nil {
		close(m.done)
	}
	return nil
}

func TestPipelineLocalOnly(t *testing.T) {
	p := NewPipeline(nil, extractor.NewLocal(), nil, false)

	resp, err := p.Parse(context.Background(), "buy a 60k-120k sf warehouse in atlanta under $15m")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if resp.Source != SourceLocal {
		t.Errorf("Source = %q, want %q", resp.Source, SourceLocal)
	}
	if resp.ParseID == "" {
		t.Error("ParseID is empty")
	}
	if resp.Record == nil || resp.Record.Intent != model.IntentAcquisition {
		t.Errorf("Record = %+v, want acquisition intent", resp.Record)
	}
	if resp.Coverage < 80 {
		t.Errorf("Coverage = %d, want >= 80", resp.Coverage)
	}
	if got := p.Current(); got != resp {
		t.Error("Current() does not return the latest response")
	}
}

func TestPipelineEmptyText(t *testing.T) {
	p := NewPipeline(nil, extractor.NewLocal(), nil, false)
	if _, err := p.Parse(context.Background(), "   "); !errors.Is(err, ErrEmptyText) {
		t.Errorf("Parse error = %v, want ErrEmptyText", err)
	}
}

// routedExtractor stalls requests mentioning "first" and answers everything
// else immediately, so tests can race an old parse against a new one.
type routedExtractor struct {
	honorCancel bool
	delay       time.Duration
	started     chan struct{}
}

func (r *routedExtractor) Extract(ctx context.Context, text string) (*model.RawParsed, error) {
	if !strings.Contains(text, "first") {
		return &model.RawParsed{Intent: "disposition"}, nil
	}
	if r.started != nil {
		close(r.started)
	}
	if r.honorCancel {
		select {
		case <-ctx.Done():
			return nil, &extractor.Error{Kind: extractor.KindNetwork, Err: ctx.Err()}
		case <-time.After(r.delay):
		}
	} else {
		time.Sleep(r.delay)
	}
	return &model.RawParsed{Intent: "acquisition"}, nil
}

func TestPipelineLatestWins(t *testing.T) {
	routed := &routedExtractor{honorCancel: true, delay: 5 * time.Second, started: make(chan struct{})}
	p := NewPipeline(routed, extractor.NewLocal(), nil, false)

	type result struct {
		resp *model.ParseResponse
		err  error
	}
	firstDone := make(chan result, 1)
	go func() {
		resp, err := p.Parse(context.Background(), "first mandate, buy offices")
		firstDone <- result{resp, err}
	}()

	// Supersede only after the first parse reached the extractor.
	<-routed.started
	second, err := p.Parse(context.Background(), "second mandate, sell retail")
	if err != nil {
		t.Fatalf("second Parse error: %v", err)
	}

	first := <-firstDone
	if first.err == nil {
		t.Fatalf("first Parse succeeded with %+v, want superseded or cancellation error", first.resp)
	}

	if got := p.Current(); got != second {
		t.Errorf("Current() = %+v, want the second response", got)
	}
}

func TestPipelineStaleCompletionDiscarded(t *testing.T) {
	// The first extraction ignores cancellation and finishes after the second
	// parse already completed; its result must not overwrite Current.
	routed := &routedExtractor{honorCancel: false, delay: 300 * time.Millisecond, started: make(chan struct{})}
	p := NewPipeline(routed, extractor.NewLocal(), nil, false)

	firstErr := make(chan error, 1)
	go func() {
		_, err := p.Parse(context.Background(), "first mandate")
		firstErr <- err
	}()

	<-routed.started
	second, err := p.Parse(context.Background(), "second mandate")
	if err != nil {
		t.Fatalf("second Parse error: %v", err)
	}

	if err := <-firstErr; !errors.Is(err, ErrSuperseded) {
		t.Errorf("first Parse error = %v, want ErrSuperseded", err)
	}
	if got := p.Current(); got != second {
		t.Errorf("Current() = %+v, want the second response", got)
	}
}

// ctxCapture records the context handed to the extractor.
type ctxCapture struct {
	ctx context.Context
}

func (c *ctxCapture) Extract(ctx context.Context, text string) (*model.RawParsed, error) {
	c.ctx = ctx
	return &model.RawParsed{Intent: "acquisition"}, nil
}

func TestPipelineReleasesContextAfterParse(t *testing.T) {
	capture := &ctxCapture{}
	p := NewPipeline(capture, extractor.NewLocal(), nil, false)

	if _, err := p.Parse(context.Background(), "buy a warehouse"); err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if capture.ctx == nil {
		t.Fatal("extractor was never called")
	}
	if capture.ctx.Err() == nil {
		t.Error("parse context still live after the parse completed")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancelPrev != nil {
		t.Error("cancelPrev retained after the latest parse completed")
	}
}

func TestPipelineRemoteFailureExplicit(t *testing.T) {
	p := NewPipeline(&failingExtractor{kind: extractor.KindRateLimited}, extractor.NewLocal(), nil, false)

	_, err := p.Parse(context.Background(), "buy a warehouse")
	if err == nil {
		t.Fatal("Parse succeeded, want error")
	}
	if got := extractor.KindOf(err); got != extractor.KindRateLimited {
		t.Errorf("KindOf = %q, want %q", got, extractor.KindRateLimited)
	}
}

func TestPipelineRemoteFailureFallsBackWhenEnabled(t *testing.T) {
	p := NewPipeline(&failingExtractor{kind: extractor.KindUnavailable}, extractor.NewLocal(), nil, true)

	resp, err := p.Parse(context.Background(), "buy a warehouse in atlanta")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if resp.Source != SourceLocal {
		t.Errorf("Source = %q, want %q", resp.Source, SourceLocal)
	}
	if resp.Record.Market == nil || resp.Record.Market.City == nil || *resp.Record.Market.City != "Atlanta" {
		t.Errorf("Market = %+v, want Atlanta", resp.Record.Market)
	}
}

func TestPipelineLogsParses(t *testing.T) {
	logger := &memoryLogger{done: make(chan struct{})}
	p := NewPipeline(nil, extractor.NewLocal(), logger, false)

	resp, err := p.Parse(context.Background(), "buy a warehouse in dallas")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	select {
	case <-logger.done:
	case <-time.After(2 * time.Second):
		t.Fatal("LogParse was never called")
	}

	logger.mu.Lock()
	defer logger.mu.Unlock()
	if len(logger.entries) != 1 || logger.entries[0] != resp.ParseID {
		t.Errorf("logged entries = %v, want [%s]", logger.entries, resp.ParseID)
	}
}

func TestPipelineStream(t *testing.T) {
	p := NewPipeline(nil, extractor.NewLocal(), nil, false)

	var stages []string
	err := p.ParseStream(context.Background(), "buy a warehouse in atlanta", func(s StreamStage) error {
		stages = append(stages, s.Stage)
		return nil
	})
	if err != nil {
		t.Fatalf("ParseStream error: %v", err)
	}
	want := []string{"extracting", "record", "done"}
	if len(stages) != len(want) {
		t.Fatalf("stages = %v, want %v", stages, want)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Fatalf("stages = %v, want %v", stages, want)
		}
	}
}
