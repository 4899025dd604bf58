package domain

import "time"

// ChangeRecord is the audit record of one applied recommendation.
// Records are immutable once created; SequenceID is assigned by the change
// log on append and is never reused.
type ChangeRecord struct {
	SequenceID       int
	RunID            string // identifies the session that produced the record
	Timestamp        time.Time
	AlertID          int
	AlertType        AlertType
	AlertDescription string
	MaterialID       string
	MaterialName     string
	Week             string
	ChangeType       ChangeType
	Before           int
	After            int
	Impact           string
}

// Material returns the display value for the record's material: the
// resolved name when known, otherwise the raw ID.
func (r ChangeRecord) Material() string {
	if r.MaterialName != "" {
		return r.MaterialName
	}
	return r.MaterialID
}

const timestampLayout = "2006-01-02 15:04:05"

// TimestampString formats the record timestamp for tables and CSV export.
func (r ChangeRecord) TimestampString() string {
	return r.Timestamp.Format(timestampLayout)
}
