package main

import (
	"context"
	"io"
	"time"
)

// Dependencies holds shared state for command execution.
type Dependencies struct {
	Ctx    context.Context
	Main   *Main
	Stdout io.Writer
	Stderr io.Writer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Mirror MirrorCmd `cmd:"" help:"Crawl a documentation site and mirror it locally"`
	Pages  PagesCmd  `cmd:"" help:"List page outcomes recorded for a run"`
}

// MirrorCmd is the "mirror" subcommand.
type MirrorCmd struct {
	URL string `arg:"" help:"Documentation base URL"`
	Out string `short:"o" default:"docs-mirror" help:"Output directory"`

	Source      string        `default:"auto" enum:"auto,suffix,sitemap" help:"Acquisition source: auto, suffix (raw .md/.mdx probing), sitemap (rendered HTML)"`
	Concurrency int           `short:"c" default:"10" help:"Concurrent fetch limit"`
	Timeout     time.Duration `default:"10s" help:"Per-request timeout"`
	Deadline    time.Duration `help:"Wall-clock limit for the whole run (0 = none)"`
	MaxPages    int           `help:"Stop discovering after this many targets (0 = unbounded)"`
	RateLimit   float64       `default:"4" help:"Requests per second per domain"`

	SkipExisting bool     `help:"Leave files that already exist on disk untouched"`
	ForceMD      bool     `name:"force-md" help:"Persist MDX sources with a .md extension"`
	Strict       bool     `help:"Reject bodies without Markdown structure markers"`
	Exclude      []string `short:"x" help:"Exclude URLs by regex (repeatable)"`

	Manifest string `help:"SQLite manifest path; records per-page outcomes (empty = off)"`
	Verbose  bool   `short:"v" help:"Log individual fetches and writes"`
}

// PagesCmd is the "pages" subcommand.
type PagesCmd struct {
	RunID    string `arg:"" help:"Run ID printed by mirror"`
	Manifest string `required:"" help:"SQLite manifest path"`
	Failed   bool   `help:"Show only failed pages"`
}
