// Package services holds the core orchestration: instruction in, report out.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ewilliams-labs/chorale/internal/core/domain"
	"github.com/ewilliams-labs/chorale/internal/core/ports"
)

// Finder coordinates extraction, the live lookup, and the catalog fallback.
//
// The fallback contract is total: a missing capability, a transport or
// remote failure, and an empty live result all degrade to the catalog, and
// the catalog itself never returns an empty set. Callers therefore always
// get records and never an error from Search.
type Finder struct {
	extractor ports.InstructionExtractor
	live      ports.ScoreProvider // nil when the capability is not installed
	fallback  ports.ScoreProvider
	logger    *zap.Logger
}

// NewFinder constructs a Finder. live may be nil; fallback must not be.
func NewFinder(extractor ports.InstructionExtractor, live, fallback ports.ScoreProvider, logger *zap.Logger) *Finder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Finder{
		extractor: extractor,
		live:      live,
		fallback:  fallback,
		logger:    logger,
	}
}

// Process runs the full pipeline for one instruction.
func (f *Finder) Process(ctx context.Context, instruction string) domain.SearchReport {
	params := f.extractor.Extract(instruction)
	records, origin := f.search(ctx, params)

	return domain.SearchReport{
		ID:          uuid.NewString(),
		Instruction: instruction,
		Parameters:  params,
		Results:     records,
		ResultCount: len(records),
		Origin:      origin,
		CreatedAt:   time.Now().UTC(),
	}
}

// Search returns records for already-extracted parameters.
func (f *Finder) Search(ctx context.Context, params domain.SearchParameters) []domain.ScoreRecord {
	records, _ := f.search(ctx, params)
	return records
}

func (f *Finder) search(ctx context.Context, params domain.SearchParameters) ([]domain.ScoreRecord, domain.ResultOrigin) {
	if f.live == nil {
		f.warnFallback(ports.ErrCapabilityUnavailable)
		return f.serveFallback(ctx, params)
	}

	records, err := f.live.Search(ctx, params)
	if err != nil {
		f.warnFallback(err)
		return f.serveFallback(ctx, params)
	}
	if len(records) == 0 {
		f.warnFallback(ports.ErrNoMatch)
		return f.serveFallback(ctx, params)
	}

	return records, domain.OriginLive
}

func (f *Finder) serveFallback(ctx context.Context, params domain.SearchParameters) ([]domain.ScoreRecord, domain.ResultOrigin) {
	records, err := f.fallback.Search(ctx, params)
	if err != nil {
		// The catalog provider has no failure modes; guard anyway so the
		// contract of a non-empty result survives a misbehaving fallback.
		f.logger.Warn("fallback provider failed", zap.Error(err))
		records = nil
	}
	return records, domain.OriginCatalog
}

func (f *Finder) warnFallback(err error) {
	f.logger.Warn("live lookup unavailable, serving catalog",
		zap.String("cause", classify(err)),
		zap.Error(err),
	)
}

// classify names the failure category for the log line.
func classify(err error) string {
	var transport *ports.TransportError
	var remote *ports.RemoteError
	switch {
	case errors.Is(err, ports.ErrCapabilityUnavailable):
		return "capability_unavailable"
	case errors.Is(err, ports.ErrNoMatch):
		return "no_match"
	case errors.As(err, &transport):
		return "transport_error"
	case errors.As(err, &remote):
		return "remote_error"
	default:
		return "transport_error"
	}
}
