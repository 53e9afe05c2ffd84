package domain

// FetchResult is the outcome of one poll: either the current statistics or
// nothing at all. The zero value is Unreachable.
type FetchResult struct {
	available bool
	snapshot  StatSnapshot
	peak      PeakSeries
}

// Available returns a result carrying a fully decoded poll.
func Available(snapshot StatSnapshot, peak PeakSeries) FetchResult {
	return FetchResult{available: true, snapshot: snapshot, peak: peak}
}

// Unreachable returns a result for a failed poll.
func Unreachable() FetchResult { return FetchResult{} }

// IsAvailable reports whether the poll succeeded.
func (r FetchResult) IsAvailable() bool { return r.available }

// Data returns the snapshot and peak series, and false for an Unreachable result.
func (r FetchResult) Data() (StatSnapshot, PeakSeries, bool) {
	if !r.available {
		return StatSnapshot{}, PeakSeries{}, false
	}
	return r.snapshot, r.peak, true
}

func (r FetchResult) String() string {
	if r.available {
		return "available"
	}
	return "unreachable"
}
