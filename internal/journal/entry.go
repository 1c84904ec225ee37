package journal

import "time"

// TimestampLayout is the second-granularity layout used when rendering entries
const TimestampLayout = "2006-01-02 15:04:05"

// Entry represents a single journal entry. Entries are never modified after append.
type Entry struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Message   string    `json:"message" yaml:"message"`
}

// String renders the entry as "[YYYY-MM-DD HH:MM:SS] message" in local time
func (e Entry) String() string {
	return "[" + e.Timestamp.Local().Format(TimestampLayout) + "] " + e.Message
}
