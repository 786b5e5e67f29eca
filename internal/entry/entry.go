package entry

import "github.com/xolan/worktimer/internal/timeutil"

// TimeEntry is the clock-in/clock-out pair recorded for one calendar day.
// Either field may be empty, meaning "not recorded".
type TimeEntry struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// IsEmpty reports whether neither time has been recorded.
func (e TimeEntry) IsEmpty() bool {
	return e.Start == "" && e.End == ""
}

// IsComplete reports whether both times are present and parse as "HH:mm".
func (e TimeEntry) IsComplete() bool {
	_, okStart := timeutil.ParseTimeOfDay(e.Start)
	_, okEnd := timeutil.ParseTimeOfDay(e.End)
	return okStart && okEnd
}

// Crosses reports whether the entry runs past midnight.
func (e TimeEntry) Crosses() bool {
	start, okStart := timeutil.ParseTimeOfDay(e.Start)
	end, okEnd := timeutil.ParseTimeOfDay(e.End)
	return okStart && okEnd && end.Before(start)
}
