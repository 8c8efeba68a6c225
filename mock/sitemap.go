package mock

import (
	"context"

	"github.com/fwojciec/docmirror"
)

var _ docmirror.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of docmirror.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *docmirror.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *docmirror.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}

var _ docmirror.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of docmirror.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, domain)
}
