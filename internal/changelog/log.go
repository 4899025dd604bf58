// Package changelog keeps the append-only record of applied
// recommendations for a session.
package changelog

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/planops/sopdash/internal/domain"
)

// Log is an append-only sequence of change records. Sequence IDs are
// monotonic from 1 and never reused; removal is not supported. A Log is
// safe for concurrent use.
type Log struct {
	mu      sync.Mutex
	records []domain.ChangeRecord
	nextSeq int
}

func New() *Log {
	return &Log{nextSeq: 1}
}

// Append stores the record with the next sequence ID and returns the
// stored copy.
func (l *Log) Append(r domain.ChangeRecord) domain.ChangeRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	r.SequenceID = l.nextSeq
	l.nextSeq++
	l.records = append(l.records, r)
	return r
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Records returns the records in insertion order. The slice is a copy;
// the log's own storage is never handed out.
func (l *Log) Records() []domain.ChangeRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.ChangeRecord(nil), l.records...)
}

// Filter returns the records whose displayed fields contain the query,
// case-insensitively. An empty query matches everything.
func (l *Log) Filter(query string) []domain.ChangeRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	if query == "" {
		return append([]domain.ChangeRecord(nil), l.records...)
	}
	q := strings.ToLower(query)
	var out []domain.ChangeRecord
	for _, r := range l.records {
		if recordMatches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

func recordMatches(r domain.ChangeRecord, q string) bool {
	for _, field := range []string{
		strconv.Itoa(r.SequenceID),
		r.TimestampString(),
		string(r.AlertType),
		r.AlertDescription,
		r.Material(),
		r.Week,
		string(r.ChangeType),
		strconv.Itoa(r.Before),
		strconv.Itoa(r.After),
		r.Impact,
	} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// SortField names a sortable change-log column.
type SortField string

const (
	FieldSequence   SortField = "id"
	FieldTimestamp  SortField = "timestamp"
	FieldAlertType  SortField = "alertType"
	FieldMaterial   SortField = "material"
	FieldWeek       SortField = "week"
	FieldChangeType SortField = "changeType"
	FieldBefore     SortField = "before"
	FieldAfter      SortField = "after"
)

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// SortBy returns the records ordered by the given field. The sort is
// stable, so equal keys keep insertion order (records is expected in
// insertion order, as returned by Filter and Records). Numeric fields
// compare numerically, the timestamp by instant, everything else as
// strings. The display default is timestamp descending.
func SortBy(records []domain.ChangeRecord, field SortField, dir SortDirection) []domain.ChangeRecord {
	out := append([]domain.ChangeRecord(nil), records...)
	less := lessFunc(field)
	sort.SliceStable(out, func(i, j int) bool {
		if dir == Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func lessFunc(field SortField) func(a, b domain.ChangeRecord) bool {
	switch field {
	case FieldSequence:
		return func(a, b domain.ChangeRecord) bool { return a.SequenceID < b.SequenceID }
	case FieldTimestamp:
		return func(a, b domain.ChangeRecord) bool { return a.Timestamp.Before(b.Timestamp) }
	case FieldBefore:
		return func(a, b domain.ChangeRecord) bool { return a.Before < b.Before }
	case FieldAfter:
		return func(a, b domain.ChangeRecord) bool { return a.After < b.After }
	case FieldAlertType:
		return func(a, b domain.ChangeRecord) bool { return a.AlertType < b.AlertType }
	case FieldMaterial:
		return func(a, b domain.ChangeRecord) bool { return a.Material() < b.Material() }
	case FieldWeek:
		return func(a, b domain.ChangeRecord) bool { return a.Week < b.Week }
	case FieldChangeType:
		return func(a, b domain.ChangeRecord) bool { return a.ChangeType < b.ChangeType }
	}
	return func(a, b domain.ChangeRecord) bool { return a.Timestamp.Before(b.Timestamp) }
}
