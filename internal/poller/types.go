package poller

import "time"

// Config tunes the loop.
type Config struct {
	ListID   string
	Cycles   int // 0 runs until the context is cancelled
	Interval time.Duration
	Comment  string // empty uses the task use case default
}

// CycleResult summarises one cycle.
type CycleResult struct {
	CycleID   string `json:"cycle_id"`
	Fetched   int    `json:"fetched"`
	Eligible  int    `json:"eligible"`
	Updated   int    `json:"updated"`
	Unchanged int    `json:"unchanged"`
	Commented int    `json:"commented"`
}

// Status is a point in time snapshot of the poller.
type Status struct {
	ListID         string      `json:"list_id"`
	Watermark      int64       `json:"watermark"`
	CyclesRun      int         `json:"cycles_run"`
	Running        bool        `json:"running"`
	LastCycleStart time.Time   `json:"last_cycle_start"`
	LastCycleEnd   time.Time   `json:"last_cycle_end"`
	LastCycle      CycleResult `json:"last_cycle"`
	LastError      string      `json:"last_error,omitempty"`
}
