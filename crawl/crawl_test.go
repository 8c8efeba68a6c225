package crawl_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/docmirror"
	"github.com/fwojciec/docmirror/crawl"
	"github.com/fwojciec/docmirror/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCrawler wires a Crawler around an in-memory writer and identity
// mapper so tests can focus on orchestration behavior.
func newTestCrawler(t *testing.T, strategy docmirror.Strategy) (*crawl.Crawler, *memoryWriter) {
	t.Helper()

	writer := &memoryWriter{files: make(map[string]int)}
	return &crawl.Crawler{
		Strategy: strategy,
		Frontier: crawl.NewFrontier(1000, 0.01),
		Mapper: &mock.PathMapper{
			MapFn: func(target string, kind docmirror.ContentKind) (string, error) {
				return target + kind.Ext(), nil
			},
		},
		Writer:      writer,
		Scope:       newScope(t, "https://docs.example.com/guide"),
		Concurrency: 4,
	}, writer
}

// memoryWriter counts Persist calls per path.
type memoryWriter struct {
	mu    sync.Mutex
	files map[string]int
}

func (w *memoryWriter) Persist(ctx context.Context, relPath string, body []byte) (docmirror.Outcome, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[relPath]++
	if w.files[relPath] > 1 {
		return docmirror.OutcomeOverwritten, nil
	}
	return docmirror.OutcomeWritten, nil
}

func TestCrawler_run_visits_each_target_once(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	acquired := make(map[string]int)

	strategy := &mock.Strategy{
		SeedFn: func(ctx context.Context) ([]string, error) {
			// Sitemap variants of the same pages: fragments, trailing
			// slashes, and duplicates must collapse.
			return []string{
				"https://docs.example.com/guide/a",
				"https://docs.example.com/guide/a/",
				"https://docs.example.com/guide/a#section",
				"https://docs.example.com/guide/b",
				"https://docs.example.com/guide/b?utm=x",
				"https://docs.example.com/guide/c",
			}, nil
		},
		AcquireFn: func(ctx context.Context, target string) (*docmirror.Acquisition, error) {
			mu.Lock()
			acquired[target]++
			mu.Unlock()
			return &docmirror.Acquisition{
				Body: []byte("# Page"),
				Kind: docmirror.KindMarkdown,
				// Every page links back to every other page.
				Links: []string{
					"https://docs.example.com/guide/a",
					"https://docs.example.com/guide/b",
					"https://docs.example.com/guide/c",
				},
			}, nil
		},
	}

	crawler, writer := newTestCrawler(t, strategy)

	stats, err := crawler.Run(context.Background())
	require.NoError(t, err)

	// Base URL plus a, b, c.
	assert.Equal(t, 4, stats.Discovered)
	assert.Equal(t, 4, stats.Downloaded)
	assert.Equal(t, 0, stats.Failed)
	assert.Len(t, writer.files, 4)
	for target, count := range acquired {
		assert.Equal(t, 1, count, "target %s acquired more than once", target)
	}
	assert.Equal(t, crawl.StateDone, crawler.State())
}

func TestCrawler_per_target_failure_does_not_abort(t *testing.T) {
	t.Parallel()

	strategy := &mock.Strategy{
		SeedFn: func(ctx context.Context) ([]string, error) {
			return []string{
				"https://docs.example.com/guide/ok",
				"https://docs.example.com/guide/broken",
			}, nil
		},
		AcquireFn: func(ctx context.Context, target string) (*docmirror.Acquisition, error) {
			if target == "https://docs.example.com/guide/broken" {
				return nil, docmirror.Errorf(docmirror.ENOTFOUND, "no source found")
			}
			return &docmirror.Acquisition{Body: []byte("# Page"), Kind: docmirror.KindMarkdown}, nil
		},
	}

	crawler, _ := newTestCrawler(t, strategy)

	stats, err := crawler.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Downloaded, "base URL and /ok")
	assert.Equal(t, 1, stats.Failed)
}

func TestCrawler_seeding_failure_is_fatal(t *testing.T) {
	t.Parallel()

	strategy := &mock.Strategy{
		SeedFn: func(ctx context.Context) ([]string, error) {
			return nil, docmirror.Errorf(docmirror.EUNAVAILABLE, "site unreachable")
		},
		AcquireFn: func(ctx context.Context, target string) (*docmirror.Acquisition, error) {
			t.Fatal("no acquisition should happen after a fatal seeding error")
			return nil, nil
		},
	}

	crawler, _ := newTestCrawler(t, strategy)

	_, err := crawler.Run(context.Background())
	assert.Equal(t, docmirror.EUNAVAILABLE, docmirror.ErrorCode(err))
	assert.Equal(t, crawl.StateCancelled, crawler.State())
}

func TestCrawler_path_policy_violation_counts_as_failure(t *testing.T) {
	t.Parallel()

	strategy := &mock.Strategy{
		AcquireFn: func(ctx context.Context, target string) (*docmirror.Acquisition, error) {
			return &docmirror.Acquisition{Body: []byte("# Page"), Kind: docmirror.KindMarkdown}, nil
		},
	}

	crawler, writer := newTestCrawler(t, strategy)
	crawler.Mapper = &mock.PathMapper{
		MapFn: func(target string, kind docmirror.ContentKind) (string, error) {
			return "", docmirror.Errorf(docmirror.EFORBIDDEN, "path escapes output directory")
		},
	}

	stats, err := crawler.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Failed)
	assert.Empty(t, writer.files, "nothing may be persisted for a rejected path")
}

func TestCrawler_skipped_outcome_counted(t *testing.T) {
	t.Parallel()

	strategy := &mock.Strategy{
		AcquireFn: func(ctx context.Context, target string) (*docmirror.Acquisition, error) {
			return &docmirror.Acquisition{Body: []byte("# Page"), Kind: docmirror.KindMarkdown}, nil
		},
	}

	crawler, _ := newTestCrawler(t, strategy)
	crawler.Writer = &mock.PageWriter{
		PersistFn: func(ctx context.Context, relPath string, body []byte) (docmirror.Outcome, error) {
			return docmirror.OutcomeSkipped, nil
		},
	}

	stats, err := crawler.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 0, stats.Downloaded)
}

func TestCrawler_cancellation_returns_partial_stats(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	strategy := &mock.Strategy{
		SeedFn: func(ctx context.Context) ([]string, error) {
			urls := make([]string, 50)
			for i := range urls {
				urls[i] = "https://docs.example.com/guide/page-" + string(rune('a'+i%26)) + string(rune('a'+i/26))
			}
			return urls, nil
		},
		AcquireFn: func(ctx context.Context, target string) (*docmirror.Acquisition, error) {
			cancel()
			return &docmirror.Acquisition{Body: []byte("# Page"), Kind: docmirror.KindMarkdown}, nil
		},
	}

	crawler, _ := newTestCrawler(t, strategy)
	crawler.Concurrency = 1

	stats, err := crawler.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, stats)
	assert.Less(t, stats.Downloaded, 50)
	assert.Equal(t, crawl.StateCancelled, crawler.State())
}

func TestCrawler_records_run_in_manifest(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var began bool
	var finished bool
	var records []*docmirror.PageRecord

	manifest := &mock.ManifestService{
		BeginRunFn: func(ctx context.Context, run *docmirror.Run) error {
			run.ID = "run-1"
			began = true
			return nil
		},
		RecordPageFn: func(ctx context.Context, rec *docmirror.PageRecord) error {
			mu.Lock()
			records = append(records, rec)
			mu.Unlock()
			return nil
		},
		FinishRunFn: func(ctx context.Context, runID string, stats docmirror.RunStats) error {
			assert.Equal(t, "run-1", runID)
			finished = true
			return nil
		},
	}

	strategy := &mock.Strategy{
		AcquireFn: func(ctx context.Context, target string) (*docmirror.Acquisition, error) {
			return &docmirror.Acquisition{Body: []byte("# Page"), Kind: docmirror.KindMarkdown}, nil
		},
	}

	crawler, _ := newTestCrawler(t, strategy)
	crawler.Manifest = manifest

	_, err := crawler.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, began)
	assert.True(t, finished)
	require.Len(t, records, 1)
	assert.Equal(t, "run-1", records[0].RunID)
	assert.Equal(t, "written", records[0].Outcome)
	assert.NotEmpty(t, records[0].ContentHash)
	assert.Equal(t, "run-1", crawler.RunID())
}

func TestCrawler_deadline_stops_claiming(t *testing.T) {
	t.Parallel()

	strategy := &mock.Strategy{
		SeedFn: func(ctx context.Context) ([]string, error) {
			return []string{
				"https://docs.example.com/guide/slow-a",
				"https://docs.example.com/guide/slow-b",
				"https://docs.example.com/guide/slow-c",
			}, nil
		},
		AcquireFn: func(ctx context.Context, target string) (*docmirror.Acquisition, error) {
			select {
			case <-time.After(200 * time.Millisecond):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			return &docmirror.Acquisition{Body: []byte("# Page"), Kind: docmirror.KindMarkdown}, nil
		},
	}

	crawler, _ := newTestCrawler(t, strategy)
	crawler.Concurrency = 1
	crawler.Deadline = 50 * time.Millisecond

	start := time.Now()
	_, err := crawler.Run(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}
