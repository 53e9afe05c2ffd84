package domain

// Placeholder is shown for text statistics the stats service did not report.
const Placeholder = "-"

// StatSnapshot is one successfully decoded poll of the aggregate statistics.
// Every field is always populated; decoders substitute the defaults from
// DefaultStatSnapshot for anything missing or malformed.
type StatSnapshot struct {
	Uptime        string
	TotalRequests int64
	CacheHitRate  string
	Errors        int64
	UniqueClients int64
	CacheEntries  int64
}

// DefaultStatSnapshot returns a snapshot holding the per-field defaults:
// the placeholder for text fields and zero for counters.
func DefaultStatSnapshot() StatSnapshot {
	return StatSnapshot{
		Uptime:       Placeholder,
		CacheHitRate: Placeholder,
	}
}

// HasErrors reports whether the stats service has recorded any errors.
func (s StatSnapshot) HasErrors() bool { return s.Errors > 0 }
