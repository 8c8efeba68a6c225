package mock

import (
	"context"

	"github.com/fwojciec/docmirror"
)

var _ docmirror.Strategy = (*Strategy)(nil)

// Strategy is a mock implementation of docmirror.Strategy.
type Strategy struct {
	NameFn    func() string
	SeedFn    func(ctx context.Context) ([]string, error)
	AcquireFn func(ctx context.Context, target string) (*docmirror.Acquisition, error)
}

func (s *Strategy) Name() string {
	if s.NameFn == nil {
		return "mock"
	}
	return s.NameFn()
}

func (s *Strategy) Seed(ctx context.Context) ([]string, error) {
	if s.SeedFn == nil {
		return nil, nil
	}
	return s.SeedFn(ctx)
}

func (s *Strategy) Acquire(ctx context.Context, target string) (*docmirror.Acquisition, error) {
	return s.AcquireFn(ctx, target)
}
