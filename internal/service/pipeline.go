package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"dealfinder/internal/extractor"
	"dealfinder/internal/model"
)

// ErrSuperseded reports that a newer parse arrived while this one was in
// flight. The caller should drop the result silently.
var ErrSuperseded = errors.New("parse superseded by a newer request")

// ErrEmptyText reports a blank mandate.
var ErrEmptyText = errors.New("mandate text is empty")

// ParseLogger is the persistence hook the pipeline calls after each parse.
type ParseLogger interface {
	LogParse(ctx context.Context, parseID, query, source string, record *model.UniversalParsed, coverage int, tookMS int64) error
}

const (
	SourceRemote = "remote"
	SourceLocal  = "local"
)

// Pipeline orchestrates one mandate parse end to end: extraction, unification,
// coverage, refine plan, and logging. Concurrent Parse calls follow
// latest-wins semantics: a new call cancels the one in flight, and a parse
// that finishes after being superseded is discarded.
type Pipeline struct {
	remote        extractor.Client
	local         *extractor.Local
	repo          ParseLogger
	fallbackLocal bool

	mu         sync.Mutex
	gen        uint64
	cancelPrev context.CancelFunc
	current    *model.ParseResponse
}

// NewPipeline wires the parse pipeline. remote may be nil, in which case
// every parse runs the local extractor. repo may be nil to disable logging.
func NewPipeline(remote extractor.Client, local *extractor.Local, repo ParseLogger, fallbackLocal bool) *Pipeline {
	return &Pipeline{
		remote:        remote,
		local:         local,
		repo:          repo,
		fallbackLocal: fallbackLocal,
	}
}

// Parse runs the full pipeline on one mandate. A remote extraction failure
// surfaces as a classified error unless local fallback is enabled.
func (p *Pipeline) Parse(ctx context.Context, text string) (*model.ParseResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	start := time.Now()

	p.mu.Lock()
	p.gen++
	myGen := p.gen
	if p.cancelPrev != nil {
		p.cancelPrev()
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancelPrev = cancel
	p.mu.Unlock()
	// Release this parse's context on every exit path; without this the
	// winning parse of an idle session holds its cancel context forever.
	defer cancel()

	raw, source, err := p.extract(ctx, text)
	if err != nil {
		if p.superseded(myGen) {
			return nil, ErrSuperseded
		}
		return nil, err
	}

	record := NormalizeUniversal(raw, text)
	coverage := ComputeCoverage(record)
	resp := &model.ParseResponse{
		ParseID:  ulid.Make().String(),
		Source:   source,
		Record:   record,
		Coverage: coverage,
		Took:     time.Since(start).Milliseconds(),
	}
	if plan := BuildRefinePlan(record); len(plan.Items) > 0 {
		resp.RefinePlan = plan
	}

	p.mu.Lock()
	if p.gen != myGen {
		p.mu.Unlock()
		return nil, ErrSuperseded
	}
	p.current = resp
	// Still the latest parse: nothing in flight is left to cancel.
	p.cancelPrev = nil
	p.mu.Unlock()

	if p.repo != nil {
		// Log asynchronously so persistence latency never blocks the
		// response path. The request context may already be done.
		go func() {
			logCtx, logCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer logCancel()
			if err := p.repo.LogParse(logCtx, resp.ParseID, text, source, record, coverage, resp.Took); err != nil {
				log.Printf("Failed to log parse %s: %v", resp.ParseID, err)
			}
		}()
	}

	return resp, nil
}

func (p *Pipeline) extract(ctx context.Context, text string) (*model.RawParsed, string, error) {
	if p.remote == nil {
		raw, err := p.local.Extract(ctx, text)
		return raw, SourceLocal, err
	}

	raw, err := p.remote.Extract(ctx, text)
	if err == nil {
		return raw, SourceRemote, nil
	}
	if ctx.Err() != nil {
		return nil, SourceRemote, err
	}
	if p.fallbackLocal {
		log.Printf("Remote extraction failed (%s), falling back to local parser: %v", extractor.KindOf(err), err)
		raw, lerr := p.local.Extract(ctx, text)
		return raw, SourceLocal, lerr
	}
	return nil, SourceRemote, err
}

func (p *Pipeline) superseded(myGen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen != myGen
}

// Current returns the latest completed parse, or nil when none finished yet.
func (p *Pipeline) Current() *model.ParseResponse {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// ParseLocal runs the deterministic local path only, bypassing the remote
// extractor and latest-wins bookkeeping. Used by the CLI.
func (p *Pipeline) ParseLocal(text string) (*model.ParseResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	start := time.Now()
	raw := p.local.Parse(text)
	record := NormalizeUniversal(raw, text)
	resp := &model.ParseResponse{
		ParseID:  ulid.Make().String(),
		Source:   SourceLocal,
		Record:   record,
		Coverage: ComputeCoverage(record),
		Took:     time.Since(start).Milliseconds(),
	}
	if plan := BuildRefinePlan(record); len(plan.Items) > 0 {
		resp.RefinePlan = plan
	}
	return resp, nil
}

// StreamStage is one progress event emitted during a streaming parse.
type StreamStage struct {
	Stage string `json:"stage"`
	Data  any    `json:"data,omitempty"`
}

// ParseStream runs Parse and reports progress through send: an "extracting"
// stage up front, then "record" with the response, then "done". A send error
// aborts the stream.
func (p *Pipeline) ParseStream(ctx context.Context, text string, send func(StreamStage) error) error {
	if err := send(StreamStage{Stage: "extracting"}); err != nil {
		return err
	}
	resp, err := p.Parse(ctx, text)
	if err != nil {
		return err
	}
	if err := send(StreamStage{Stage: "record", Data: resp}); err != nil {
		return err
	}
	return send(StreamStage{Stage: "done"})
}
