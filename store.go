package docmirror

import "context"

// ExtensionPolicy controls the file extension of persisted pages.
type ExtensionPolicy string

// Extension policies.
const (
	// PolicyPreserve keeps the extension of the source as acquired
	// (.md or .mdx).
	PolicyPreserve ExtensionPolicy = "preserve"

	// PolicyForceMD rewrites .mdx to .md.
	PolicyForceMD ExtensionPolicy = "force-md"
)

// PathMapper deterministically converts a target URL to a relative file
// path. Distinct targets may map to the same path only when they identify
// the same logical resource; any other collision is resolved by the writer.
type PathMapper interface {
	// Map yields the relative filesystem path for a normalized target.
	// Targets whose decoded path segments contain traversal sequences or
	// are empty after decoding are rejected with EFORBIDDEN and must
	// never reach persistence.
	Map(target string, kind ContentKind) (string, error)
}

// Outcome classifies the result of persisting one page.
type Outcome int

// Persistence outcomes.
const (
	OutcomeWritten Outcome = iota
	OutcomeSkipped
	OutcomeOverwritten
)

// String returns the outcome label used in reports and the run manifest.
func (o Outcome) String() string {
	switch o {
	case OutcomeWritten:
		return "written"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeOverwritten:
		return "overwritten"
	default:
		return "unknown"
	}
}

// PageWriter persists validated page content to storage.
type PageWriter interface {
	// Persist writes body to the relative path. When skip-existing is
	// configured and the destination exists, no write I/O occurs and the
	// outcome is OutcomeSkipped. A second write to the same path within
	// one run wins and is reported as OutcomeOverwritten; callers should
	// surface it as a data-loss risk rather than dropping either version.
	Persist(ctx context.Context, relPath string, body []byte) (Outcome, error)
}
