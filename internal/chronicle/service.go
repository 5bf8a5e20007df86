package chronicle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/talgya/chronicler/internal/history"
	"github.com/talgya/chronicler/internal/observe"
)

// ErrCivilizationNotFound is returned by a Source for an unknown civilization.
var ErrCivilizationNotFound = errors.New("civilization not found")

// Source supplies a materialized snapshot of one civilization's history.
type Source interface {
	Civilization(ctx context.Context, civID string) (history.Civilization, error)
	Events(ctx context.Context, civID string) ([]history.Event, error)
}

// Cache stores compiled chronicles keyed by civilization and Fingerprint.
// It belongs to the caller; the Compiler never sees it.
type Cache interface {
	Get(civID, fingerprint string) (*CompiledChronicle, bool)
	Put(c *CompiledChronicle)
}

// Service is the command surface: it fetches snapshots from a Source and
// compiles them, optionally memoizing through a Cache.
type Service struct {
	Source   Source
	Compiler *Compiler
	Cache    Cache            // Optional
	Metrics  *observe.Metrics // Optional
	Workers  int              // CompileAll parallelism; 0 = runtime.NumCPU()
}

// NewService returns a Service using the default Compiler.
func NewService(src Source) *Service {
	return &Service{
		Source:   src,
		Compiler: NewCompiler(),
	}
}

// CompileChronicle compiles the chronicle for one civilization.
func (s *Service) CompileChronicle(ctx context.Context, civID string) (*CompiledChronicle, error) {
	civ, err := s.Source.Civilization(ctx, civID)
	if err != nil {
		return nil, fmt.Errorf("load civilization %s: %w", civID, err)
	}
	events, err := s.Source.Events(ctx, civID)
	if err != nil {
		return nil, fmt.Errorf("load events for %s: %w", civID, err)
	}

	var fingerprint string
	if s.Cache != nil {
		fingerprint = Fingerprint(civ.Name, events)
		if cc, ok := s.Cache.Get(civID, fingerprint); ok {
			s.Metrics.RecordCacheHit(ctx)
			slog.Debug("chronicle cache hit", "civ", civID, "fingerprint", fingerprint)
			return cc, nil
		}
	}

	start := time.Now()
	cc, err := s.Compiler.Compile(civID, civ.Name, events)
	elapsed := time.Since(start)
	if err != nil {
		s.Metrics.RecordCompile(ctx, elapsed, "malformed", 0, 0)
		return nil, err
	}
	s.Metrics.RecordCompile(ctx, elapsed, "ok", len(cc.Chapters), cc.TotalEntries)

	slog.Debug("chronicle compiled",
		"civ", civID,
		"name", civ.Name,
		"events", len(events),
		"entries", cc.TotalEntries,
		"chapters", len(cc.Chapters),
		"elapsed", elapsed,
	)

	if s.Cache != nil {
		s.Cache.Put(cc)
	}
	return cc, nil
}

// CompileAll compiles several chronicles in parallel. Results follow the order
// of civIDs. The first failure cancels the remaining work.
func (s *Service) CompileAll(ctx context.Context, civIDs []string) ([]*CompiledChronicle, error) {
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]*CompiledChronicle, len(civIDs))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i, id := range civIDs {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			cc, err := s.CompileChronicle(egCtx, id)
			if err != nil {
				return err
			}
			results[i] = cc
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	slog.Info("chronicles compiled", "count", len(results), "workers", workers)
	return results, nil
}
