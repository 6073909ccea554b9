package sigscan

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/signalworks/sigscan/pkg/sigscan/sink"
)

// Source fetches raw items from one external origin. Implementations
// normalize into RawItem at the boundary.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]RawItem, error)
}

// RunState is the agent's lifecycle state. Runs start cold: there is no
// persisted state between them.
type RunState int32

const (
	StateIdle RunState = iota
	StateRunning
	StateFailed
)

func (s RunState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// RowFunc converts a surviving signal into its destination row.
type RowFunc func(sig Signal) sink.Row

// RunReport aggregates one run's totals.
type RunReport struct {
	Items         int
	Signals       int
	Written       int
	FailedSources int
}

func (r RunReport) String() string {
	return fmt.Sprintf("%d items, %d signals, %d written, %d sources failed",
		r.Items, r.Signals, r.Written, r.FailedSources)
}

// Agent sequences sources → extractor → sink for one pipeline.
type Agent struct {
	name           string
	sources        []Source
	extractor      *Extractor
	sink           *sink.Sink
	row            RowFunc
	flushPerSource bool
	logger         *log.Logger
	state          atomic.Int32
}

// NewDebtScanner builds the feed pipeline: signals from all sources are
// written in one batch at the end of the run.
func NewDebtScanner(sources []Source, keywords []string, snk *sink.Sink, logger *log.Logger) *Agent {
	ids := newQueueIDs()
	return &Agent{
		name:      DebtAgentName,
		sources:   sources,
		extractor: NewDebtExtractor(keywords),
		sink:      snk,
		row: func(sig Signal) sink.Row {
			return DebtQueueRow(sig, ids.next())
		},
		logger: logger,
	}
}

// NewRegionalMonitor builds the discussion pipeline: signals are flushed
// to the sink after each source.
func NewRegionalMonitor(sources []Source, keywords, regions []string, snk *sink.Sink, logger *log.Logger) *Agent {
	return &Agent{
		name:      RegionalAgentName,
		sources:   sources,
		extractor: NewRegionalExtractor(keywords, regions),
		sink:      snk,
		row: func(sig Signal) sink.Row {
			return RegionalRow(sig, time.Now())
		},
		flushPerSource: true,
		logger:         logger,
	}
}

// Name returns the agent's human-readable name.
func (a *Agent) Name() string { return a.name }

// State returns the agent's current run state.
func (a *Agent) State() RunState { return RunState(a.state.Load()) }

// Run executes one full pass: fetch → extract → dedup → append. A single
// source's fetch failure is logged and skipped; that source contributes
// zero signals and the run continues. A persistence failure fails the run
// and propagates to the caller.
func (a *Agent) Run(ctx context.Context) (RunReport, error) {
	a.state.Store(int32(StateRunning))
	a.logger.Printf("%s starting: %d sources", a.name, len(a.sources))

	var report RunReport
	var pending []sink.Row

	for _, src := range a.sources {
		items, err := src.Fetch(ctx)
		if err != nil {
			a.logger.Printf("fetch %s failed, skipping: %v", src.Name(), err)
			report.FailedSources++
			continue
		}
		a.logger.Printf("retrieved %d items from %s", len(items), src.Name())
		report.Items += len(items)

		for _, item := range items {
			sig, ok := a.extractor.Extract(item)
			if !ok {
				continue
			}
			report.Signals++
			a.logger.Printf("found signal: %.50s (score: %d)", sig.Title, sig.RelevanceScore)
			pending = append(pending, a.row(sig))
		}

		if a.flushPerSource && len(pending) > 0 {
			written, err := a.sink.Append(ctx, pending)
			if err != nil {
				a.state.Store(int32(StateFailed))
				return report, fmt.Errorf("%s: persist signals from %s: %w", a.name, src.Name(), err)
			}
			report.Written += written
			pending = pending[:0]
		}
	}

	if len(pending) > 0 {
		written, err := a.sink.Append(ctx, pending)
		if err != nil {
			a.state.Store(int32(StateFailed))
			return report, fmt.Errorf("%s: persist signals: %w", a.name, err)
		}
		report.Written += written
	}

	a.logger.Printf("%s complete: %s", a.name, report)
	a.state.Store(int32(StateIdle))
	return report, nil
}
