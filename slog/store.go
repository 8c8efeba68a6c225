package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/docmirror"
)

// Ensure LoggingPageWriter implements docmirror.PageWriter.
var _ docmirror.PageWriter = (*LoggingPageWriter)(nil)

// LoggingPageWriter wraps a PageWriter and surfaces overwrites, which mean
// two URLs mapped to the same file and one version was lost.
type LoggingPageWriter struct {
	next   docmirror.PageWriter
	logger *slog.Logger
}

// NewLoggingPageWriter creates a new LoggingPageWriter.
func NewLoggingPageWriter(next docmirror.PageWriter, logger *slog.Logger) *LoggingPageWriter {
	return &LoggingPageWriter{next: next, logger: logger}
}

// Persist delegates to the wrapped writer and logs the outcome.
func (w *LoggingPageWriter) Persist(ctx context.Context, relPath string, body []byte) (docmirror.Outcome, error) {
	outcome, err := w.next.Persist(ctx, relPath, body)
	switch {
	case err != nil:
		w.logger.Error("persist failed", "path", relPath, "err", err)
	case outcome == docmirror.OutcomeOverwritten:
		w.logger.Warn("page overwritten, earlier content lost", "path", relPath)
	default:
		w.logger.Debug("persist", "path", relPath, "outcome", outcome.String(), "bytes", len(body))
	}
	return outcome, err
}

// Ensure LoggingPathMapper implements docmirror.PathMapper.
var _ docmirror.PathMapper = (*LoggingPathMapper)(nil)

// LoggingPathMapper wraps a PathMapper and flags rejected paths. A rejection
// means a crawled URL tried to escape the output directory.
type LoggingPathMapper struct {
	next   docmirror.PathMapper
	logger *slog.Logger
}

// NewLoggingPathMapper creates a new LoggingPathMapper.
func NewLoggingPathMapper(next docmirror.PathMapper, logger *slog.Logger) *LoggingPathMapper {
	return &LoggingPathMapper{next: next, logger: logger}
}

// Map delegates to the wrapped mapper and logs rejections.
func (m *LoggingPathMapper) Map(target string, kind docmirror.ContentKind) (string, error) {
	relPath, err := m.next.Map(target, kind)
	if docmirror.ErrorCode(err) == docmirror.EFORBIDDEN {
		m.logger.Warn("rejected unsafe path", "target", target, "err", err)
	}
	return relPath, err
}
