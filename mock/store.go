package mock

import (
	"context"

	"github.com/fwojciec/docmirror"
)

var _ docmirror.PathMapper = (*PathMapper)(nil)

// PathMapper is a mock implementation of docmirror.PathMapper.
type PathMapper struct {
	MapFn func(target string, kind docmirror.ContentKind) (string, error)
}

func (m *PathMapper) Map(target string, kind docmirror.ContentKind) (string, error) {
	return m.MapFn(target, kind)
}

var _ docmirror.PageWriter = (*PageWriter)(nil)

// PageWriter is a mock implementation of docmirror.PageWriter.
type PageWriter struct {
	PersistFn func(ctx context.Context, relPath string, body []byte) (docmirror.Outcome, error)
}

func (w *PageWriter) Persist(ctx context.Context, relPath string, body []byte) (docmirror.Outcome, error) {
	return w.PersistFn(ctx, relPath, body)
}
