package main

import (
	"fmt"

	"github.com/fwojciec/docmirror"
	"github.com/fwojciec/docmirror/sqlite"
)

// Run executes the pages command.
func (c *PagesCmd) Run(deps *Dependencies) error {
	deps.Main.DB = sqlite.NewDB(c.Manifest)
	if err := deps.Main.DB.Open(); err != nil {
		return fmt.Errorf("failed to open manifest at %q: %w", c.Manifest, err)
	}
	svc := sqlite.NewManifestService(deps.Main.DB)

	records, err := svc.FindPagesByRun(deps.Ctx, c.RunID)
	if err != nil {
		return fmt.Errorf("error: %s", docmirror.ErrorMessage(err))
	}
	if len(records) == 0 {
		fmt.Fprintf(deps.Stdout, "No pages recorded for run %q\n", c.RunID)
		return nil
	}

	for _, rec := range records {
		if c.Failed && rec.Outcome != "failed" {
			continue
		}
		if rec.Outcome == "failed" {
			fmt.Fprintf(deps.Stdout, "%-11s %s: %s\n", rec.Outcome, rec.URL, rec.Error)
			continue
		}
		fmt.Fprintf(deps.Stdout, "%-11s %s -> %s\n", rec.Outcome, rec.URL, rec.Path)
	}
	return nil
}
