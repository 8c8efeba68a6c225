// Package crawl provides documentation crawling orchestration.
// It coordinates seeding, frontier-driven fetching, validation, and
// persistence of documentation pages.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docmirror"
	"golang.org/x/sync/errgroup"
)

// State identifies the lifecycle phase of a crawl run.
type State int

// Crawl lifecycle states.
const (
	StateIdle State = iota
	StateSeeding
	StateRunning
	StateDraining
	StateDone
	StateCancelled
)

// String returns the state label.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSeeding:
		return "seeding"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateDone:
		return "done"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type    ProgressType
	URL     string
	Path    string
	Outcome docmirror.Outcome
	Queued  int
	Error   error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Crawler orchestrates the crawling of a documentation site. The frontier
// drives the run: workers claim targets, acquisition feeds newly discovered
// links back in, and the run ends when the frontier drains or the context
// is done.
type Crawler struct {
	Strategy    docmirror.Strategy
	Frontier    docmirror.Frontier
	Mapper      docmirror.PathMapper
	Writer      docmirror.PageWriter
	Scope       *docmirror.Scope
	Manifest    docmirror.ManifestService // optional
	RateLimiter docmirror.DomainLimiter   // optional
	Concurrency int
	Deadline    time.Duration // optional wall-clock ceiling
	MaxPages    int           // optional; 0 means unbounded
	Progress    ProgressFunc

	mu    sync.Mutex
	state State
	stats docmirror.RunStats
	runID string
}

// State returns the current lifecycle phase.
func (c *Crawler) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// RunID returns the manifest identifier assigned to this run, or the empty
// string when no manifest is configured. Callers need it to query the
// recorded pages after Run returns.
func (c *Crawler) RunID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runID
}

// Run executes one crawl: seed, process until the frontier drains, report.
// Per-target failures are counted, never fatal; a seeding failure aborts the
// run before any page work starts. A deadline or cancellation stops claiming
// new targets and lets in-flight targets finish.
func (c *Crawler) Run(ctx context.Context) (*docmirror.RunStats, error) {
	if c.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Deadline)
		defer cancel()
	}

	c.setState(StateSeeding)

	if err := c.seed(ctx); err != nil {
		c.setState(StateCancelled)
		return nil, err
	}

	if c.Manifest != nil {
		run := &docmirror.Run{
			BaseURL:   c.Scope.BaseURL(),
			Strategy:  c.Strategy.Name(),
			StartedAt: time.Now(),
		}
		if err := c.Manifest.BeginRun(ctx, run); err != nil {
			c.setState(StateCancelled)
			return nil, err
		}
		c.mu.Lock()
		c.runID = run.ID
		c.mu.Unlock()
	}

	if c.Progress != nil {
		c.Progress(ProgressEvent{Type: ProgressStarted, Queued: c.Frontier.Len()})
	}

	c.setState(StateRunning)

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < concurrency; i++ {
		g.Go(func() error {
			c.worker(gctx)
			return nil
		})
	}
	_ = g.Wait()

	c.setState(StateDraining)

	stats := c.snapshotStats()

	if c.Manifest != nil && c.runID != "" {
		// Finalizing the manifest should survive a cancelled crawl context.
		finishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = c.Manifest.FinishRun(finishCtx, c.runID, stats)
	}

	if c.Progress != nil {
		c.Progress(ProgressEvent{Type: ProgressFinished})
	}

	if ctx.Err() != nil {
		c.setState(StateCancelled)
		return &stats, ctx.Err()
	}
	c.setState(StateDone)
	return &stats, nil
}

// seed enqueues the base URL plus whatever the strategy's seeding phase
// discovers. A strategy error here is fatal: nothing has been crawled yet
// and the configuration is evidently wrong.
func (c *Crawler) seed(ctx context.Context) error {
	base, err := docmirror.NormalizeURL(c.Scope.BaseURL())
	if err != nil {
		return docmirror.Errorf(docmirror.EINVALID, "invalid base URL %q: %v", c.Scope.BaseURL(), err)
	}
	if c.Frontier.Enqueue(base) {
		c.addDiscovered(1)
	}

	seeds, err := c.Strategy.Seed(ctx)
	if err != nil {
		return err
	}
	// Seeds are normalized here so that sitemap variants of one page
	// (trailing slash, fragment) collapse to a single target.
	for _, seed := range seeds {
		normalized, err := docmirror.NormalizeURL(seed)
		if err != nil || !c.Scope.Allows(normalized) {
			continue
		}
		if c.Frontier.Enqueue(normalized) {
			c.addDiscovered(1)
		}
	}
	return nil
}

// worker claims targets until the frontier drains or the context is done.
func (c *Crawler) worker(ctx context.Context) {
	for {
		target, ok := c.Frontier.Claim(ctx)
		if !ok {
			return
		}
		c.processTarget(ctx, target)
		c.Frontier.Done()
	}
}

// processTarget runs the full per-page pipeline: acquire, feed discovered
// links back into the frontier, map to a path, persist, account.
func (c *Crawler) processTarget(ctx context.Context, target string) {
	if c.RateLimiter != nil {
		if u, err := url.Parse(target); err == nil {
			if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
				c.recordFailure(ctx, target, err)
				return
			}
		}
	}

	acq, err := c.Strategy.Acquire(ctx, target)
	if err != nil {
		c.recordFailure(ctx, target, err)
		return
	}

	c.enqueueLinks(acq.Links)

	relPath, err := c.Mapper.Map(target, acq.Kind)
	if err != nil {
		c.recordFailure(ctx, target, err)
		return
	}

	outcome, err := c.Writer.Persist(ctx, relPath, acq.Body)
	if err != nil {
		c.recordFailure(ctx, target, err)
		return
	}

	c.addOutcome(outcome)
	c.recordPage(ctx, &docmirror.PageRecord{
		RunID:       c.runID,
		URL:         target,
		Path:        relPath,
		ContentHash: ComputeHash(string(acq.Body)),
		Outcome:     outcome.String(),
		FetchedAt:   time.Now(),
	})

	if c.Progress != nil {
		c.Progress(ProgressEvent{
			Type:    ProgressCompleted,
			URL:     target,
			Path:    relPath,
			Outcome: outcome,
			Queued:  c.Frontier.Len(),
		})
	}
}

// enqueueLinks filters discovered links through the crawl scope and feeds
// the survivors into the frontier. The frontier's seen-set makes this
// idempotent, so pages can be discovered from any number of sources.
func (c *Crawler) enqueueLinks(links []string) {
	for _, link := range links {
		normalized, err := docmirror.NormalizeURL(link)
		if err != nil {
			continue
		}
		if !c.Scope.Allows(normalized) {
			continue
		}
		if c.MaxPages > 0 && c.discoveredCount() >= c.MaxPages {
			return
		}
		if c.Frontier.Enqueue(normalized) {
			c.addDiscovered(1)
		}
	}
}

func (c *Crawler) recordFailure(ctx context.Context, target string, err error) {
	c.mu.Lock()
	c.stats.Failed++
	c.mu.Unlock()

	c.recordPage(ctx, &docmirror.PageRecord{
		RunID:     c.runID,
		URL:       target,
		Outcome:   "failed",
		Error:     docmirror.ErrorMessage(err),
		FetchedAt: time.Now(),
	})

	if c.Progress != nil {
		c.Progress(ProgressEvent{
			Type:   ProgressFailed,
			URL:    target,
			Queued: c.Frontier.Len(),
			Error:  err,
		})
	}
}

func (c *Crawler) recordPage(ctx context.Context, rec *docmirror.PageRecord) {
	if c.Manifest == nil || c.runID == "" {
		return
	}
	_ = c.Manifest.RecordPage(ctx, rec)
}

func (c *Crawler) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Crawler) addDiscovered(n int) {
	c.mu.Lock()
	c.stats.Discovered += n
	c.mu.Unlock()
}

func (c *Crawler) discoveredCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats.Discovered
}

func (c *Crawler) addOutcome(outcome docmirror.Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch outcome {
	case docmirror.OutcomeSkipped:
		c.stats.Skipped++
	case docmirror.OutcomeOverwritten:
		c.stats.Overwritten++
	default:
		c.stats.Downloaded++
	}
}

func (c *Crawler) snapshotStats() docmirror.RunStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// ComputeHash computes a short content hash using xxhash.
func ComputeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
