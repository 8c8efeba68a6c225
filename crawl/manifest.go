package crawl

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fwojciec/docmirror"
)

// manifestNames are the configuration resources probed at run start, in
// order of preference. docs.json superseded mint.json but older sites still
// serve the latter.
var manifestNames = []string{"docs.json", "mint.json"}

// ManifestSeeder discovers the full page set from a site-provided
// configuration manifest fetched once at run start. A parseable manifest is
// authoritative: its navigation entries become the initial URL set.
type ManifestSeeder struct {
	Fetcher docmirror.Fetcher
	Scope   *docmirror.Scope
}

// Seed fetches and parses the first available manifest. A missing manifest
// returns no URLs and no error; a present but malformed manifest returns
// EINVALID so the caller can fall back to incremental discovery.
func (m *ManifestSeeder) Seed(ctx context.Context) ([]string, error) {
	root := m.Scope.Scheme + "://" + m.Scope.Host

	for _, name := range manifestNames {
		resp, err := m.Fetcher.Fetch(ctx, root+"/"+name)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		if resp.Status != http.StatusOK {
			continue
		}

		var doc map[string]any
		if err := json.Unmarshal(resp.Body, &doc); err != nil {
			return nil, docmirror.Errorf(docmirror.EINVALID, "malformed manifest %s: %v", name, err)
		}

		urls := m.resolve(collectManifestEntries(doc))
		if len(urls) > 0 {
			return urls, nil
		}
	}

	return nil, nil
}

// resolve converts manifest page entries into normalized in-scope targets.
// Bare entries are site-root-relative paths ("guide/intro" means
// /guide/intro); absolute URLs pass through.
func (m *ManifestSeeder) resolve(entries []string) []string {
	var urls []string
	for _, entry := range entries {
		var raw string
		switch {
		case entry == "":
			continue
		case entry[0] == '/':
			raw = m.Scope.Scheme + "://" + m.Scope.Host + entry
		case len(entry) > 4 && entry[:4] == "http":
			raw = entry
		default:
			raw = m.Scope.Scheme + "://" + m.Scope.Host + "/" + entry
		}

		normalized, err := docmirror.NormalizeURL(raw)
		if err != nil {
			continue
		}
		if m.Scope.Allows(normalized) {
			urls = append(urls, normalized)
		}
	}
	return urls
}

// collectManifestEntries walks the manifest's navigation structure and
// gathers page references. The structure is free-form JSON: navigation
// groups nest arbitrarily, pages appear as bare strings or as objects with
// "pages", "href", "url", or "tabs" keys.
func collectManifestEntries(doc map[string]any) []string {
	var entries []string

	var walk func(v any)
	walk = func(v any) {
		switch node := v.(type) {
		case string:
			entries = append(entries, node)
		case []any:
			for _, item := range node {
				walk(item)
			}
		case map[string]any:
			for _, key := range []string{"pages", "groups", "tabs", "anchors", "navigation"} {
				if sub, ok := node[key]; ok {
					walk(sub)
				}
			}
			for _, key := range []string{"href", "url", "page"} {
				if ref, ok := node[key].(string); ok {
					entries = append(entries, ref)
				}
			}
		}
	}

	if nav, ok := doc["navigation"]; ok {
		walk(nav)
	}
	if tabs, ok := doc["tabs"]; ok {
		walk(tabs)
	}

	return entries
}
