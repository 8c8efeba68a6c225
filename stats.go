package docmirror

// RunStats aggregates per-outcome counters for a crawl run. The orchestrator
// owns the counters and mutates them only on target completion; readers
// consume them after the run finishes.
type RunStats struct {
	Discovered  int `json:"discovered"`
	Downloaded  int `json:"downloaded"`
	Skipped     int `json:"skipped"`
	Overwritten int `json:"overwritten"`
	Failed      int `json:"failed"`
}
