package mock

import (
	"context"

	"github.com/fwojciec/docmirror"
)

var _ docmirror.ManifestService = (*ManifestService)(nil)

// ManifestService is a mock implementation of docmirror.ManifestService.
type ManifestService struct {
	BeginRunFn       func(ctx context.Context, run *docmirror.Run) error
	RecordPageFn     func(ctx context.Context, rec *docmirror.PageRecord) error
	FinishRunFn      func(ctx context.Context, runID string, stats docmirror.RunStats) error
	FindPagesByRunFn func(ctx context.Context, runID string) ([]*docmirror.PageRecord, error)
}

func (s *ManifestService) BeginRun(ctx context.Context, run *docmirror.Run) error {
	return s.BeginRunFn(ctx, run)
}

func (s *ManifestService) RecordPage(ctx context.Context, rec *docmirror.PageRecord) error {
	return s.RecordPageFn(ctx, rec)
}

func (s *ManifestService) FinishRun(ctx context.Context, runID string, stats docmirror.RunStats) error {
	return s.FinishRunFn(ctx, runID, stats)
}

func (s *ManifestService) FindPagesByRun(ctx context.Context, runID string) ([]*docmirror.PageRecord, error) {
	return s.FindPagesByRunFn(ctx, runID)
}
