package main

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/fwojciec/docmirror"
	"github.com/fwojciec/docmirror/crawl"
	"github.com/fwojciec/docmirror/fs"
	"github.com/fwojciec/docmirror/goquery"
	"github.com/fwojciec/docmirror/htmltomarkdown"
	docmirrorhttp "github.com/fwojciec/docmirror/http"
	docmirrorslog "github.com/fwojciec/docmirror/slog"
	"github.com/fwojciec/docmirror/sqlite"
	"github.com/fwojciec/docmirror/trafilatura"
)

// Frontier sizing: documentation sites rarely exceed a few thousand pages.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// Run executes the mirror command.
func (c *MirrorCmd) Run(deps *Dependencies) error {
	var exclude []*regexp.Regexp
	for _, pattern := range c.Exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		exclude = append(exclude, re)
	}

	scope, err := docmirror.NewScope(c.URL, exclude)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %s", c.URL, docmirror.ErrorMessage(err))
	}

	logger := slog.New(slog.NewTextHandler(deps.Stderr, &slog.HandlerOptions{
		Level: logLevel(c.Verbose),
	}))

	var fetcher docmirror.Fetcher = docmirrorhttp.NewFetcher(docmirrorhttp.WithTimeout(c.Timeout))
	defer fetcher.Close()
	fetcher = docmirrorslog.NewLoggingFetcher(fetcher, logger)

	source := c.Source
	if source == "auto" {
		source = ProbeSource(deps.Ctx, fetcher, scope.BaseURL())
		fmt.Fprintf(deps.Stdout, "Source: %s (auto-detected)\n", source)
	}

	strategy, err := c.buildStrategy(source, fetcher, scope, logger)
	if err != nil {
		return err
	}

	policy := docmirror.PolicyPreserve
	if c.ForceMD {
		policy = docmirror.PolicyForceMD
	}
	var mapper docmirror.PathMapper = fs.NewMapper(scope, policy)
	mapper = docmirrorslog.NewLoggingPathMapper(mapper, logger)

	var writer docmirror.PageWriter = fs.NewWriter(c.Out, c.SkipExisting)
	writer = docmirrorslog.NewLoggingPageWriter(writer, logger)

	var manifest docmirror.ManifestService
	if c.Manifest != "" {
		deps.Main.DB = sqlite.NewDB(c.Manifest)
		if err := deps.Main.DB.Open(); err != nil {
			return fmt.Errorf("failed to open manifest at %q: %w", c.Manifest, err)
		}
		manifest = sqlite.NewManifestService(deps.Main.DB)
	}

	crawler := &crawl.Crawler{
		Strategy:    strategy,
		Frontier:    crawl.NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate),
		Mapper:      mapper,
		Writer:      writer,
		Scope:       scope,
		Manifest:    manifest,
		RateLimiter: crawl.NewDomainLimiter(c.RateLimit),
		Concurrency: c.Concurrency,
		Deadline:    c.Deadline,
		MaxPages:    c.MaxPages,
		Progress:    c.progressPrinter(deps),
	}

	stats, runErr := crawler.Run(deps.Ctx)
	if stats == nil {
		return fmt.Errorf("mirror failed: %s", docmirror.ErrorMessage(runErr))
	}

	fmt.Fprintf(deps.Stdout, "\nDiscovered %d, downloaded %d, skipped %d, overwritten %d, failed %d\n",
		stats.Discovered, stats.Downloaded, stats.Skipped, stats.Overwritten, stats.Failed)

	if id := crawler.RunID(); id != "" {
		fmt.Fprintf(deps.Stdout, "Run %s recorded in %s\n", id, c.Manifest)
	}

	if runErr != nil {
		return fmt.Errorf("run interrupted: %w", runErr)
	}
	return nil
}

// buildStrategy wires the acquisition pipeline for the chosen source.
func (c *MirrorCmd) buildStrategy(source string, fetcher docmirror.Fetcher, scope *docmirror.Scope, logger *slog.Logger) (docmirror.Strategy, error) {
	links := goquery.NewLinkExtractor()

	switch source {
	case "suffix":
		return &crawl.SuffixProbe{
			Fetcher: fetcher,
			Links:   links,
			Scope:   scope,
			Seeder:  &crawl.ManifestSeeder{Fetcher: fetcher, Scope: scope},
			Strict:  c.Strict,
		}, nil
	case "sitemap":
		sitemaps := docmirrorslog.NewLoggingSitemapService(docmirrorhttp.NewSitemapService(nil), logger)
		return &crawl.SitemapHTML{
			Fetcher:   fetcher,
			Sitemaps:  sitemaps,
			Extractor: goquery.NewExtractor(),
			Fallback:  trafilatura.NewExtractor(),
			Converter: htmltomarkdown.NewConverter(),
			Links:     links,
			Scope:     scope,
		}, nil
	default:
		return nil, fmt.Errorf("unknown source %q", source)
	}
}

// progressPrinter reports per-page progress on stdout.
func (c *MirrorCmd) progressPrinter(deps *Dependencies) crawl.ProgressFunc {
	return func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Seeded %d URLs\n", event.Queued)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  %-11s %s\n", event.Outcome.String(), crawl.TruncateURL(event.URL, 70))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  failed      %s: %s\n",
				crawl.TruncateURL(event.URL, 70), docmirror.ErrorMessage(event.Error))
		}
	}
}

func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
