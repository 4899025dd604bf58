package changelog

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/planops/sopdash/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(alertID int, ts time.Time, ct domain.ChangeType, before, after int) domain.ChangeRecord {
	return domain.ChangeRecord{
		Timestamp:        ts,
		AlertID:          alertID,
		AlertType:        domain.AlertCritical,
		AlertDescription: "Supply less than Total Demand",
		MaterialID:       "FG-90",
		MaterialName:     "LCO Cathode Sheet",
		Week:             "16",
		ChangeType:       ct,
		Before:           before,
		After:            after,
		Impact:           "Increased supply by 150 units (15%), improving fill rate from 0.83 to 0.96",
	}
}

func TestAppend_AssignsMonotonicSequenceIDs(t *testing.T) {
	l := New()
	t0 := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	first := l.Append(record(1, t0, domain.ChangeSupplyIncrease, 1000, 1150))
	second := l.Append(record(2, t0.Add(time.Minute), domain.ChangeInventoryIncrease, 150, 250))
	third := l.Append(record(3, t0.Add(2*time.Minute), domain.ChangeSafetyStock, 200, 275))

	assert.Equal(t, 1, first.SequenceID)
	assert.Equal(t, 2, second.SequenceID)
	assert.Equal(t, 3, third.SequenceID)
	assert.Equal(t, 3, l.Len())

	// insertion order preserved
	recs := l.Records()
	assert.Equal(t, []int{1, 2, 3}, []int{recs[0].SequenceID, recs[1].SequenceID, recs[2].SequenceID})
}

func TestRecords_ReturnsCopy(t *testing.T) {
	l := New()
	l.Append(record(1, time.Now(), domain.ChangeSupplyIncrease, 1, 2))
	recs := l.Records()
	recs[0].Before = 999
	assert.Equal(t, 1, l.Records()[0].Before)
}

func TestFilter_CaseInsensitiveAcrossFields(t *testing.T) {
	l := New()
	t0 := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	l.Append(record(1, t0, domain.ChangeSupplyIncrease, 1000, 1150))
	r2 := record(2, t0, domain.ChangeCapacityIncrease, 500, 600)
	r2.MaterialName = "Calcined LCO Powder"
	l.Append(r2)

	assert.Len(t, l.Filter(""), 2)
	assert.Len(t, l.Filter("calcined"), 1)
	assert.Len(t, l.Filter("SUPPLY INCREASE"), 1)
	assert.Len(t, l.Filter("fill rate"), 2)
	assert.Len(t, l.Filter("1150"), 1)
	assert.Empty(t, l.Filter("nothing matches this"))
}

func TestSortBy_TimestampDefaultDescending(t *testing.T) {
	l := New()
	t1 := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)
	t3 := t2.Add(time.Minute)
	l.Append(record(1, t1, domain.ChangeSupplyIncrease, 1, 2))
	l.Append(record(2, t2, domain.ChangeForecast, 3, 4))
	l.Append(record(3, t3, domain.ChangeSafetyStock, 5, 6))

	sorted := SortBy(l.Records(), FieldTimestamp, Descending)
	require.Len(t, sorted, 3)
	assert.Equal(t, 3, sorted[0].AlertID)
	assert.Equal(t, 2, sorted[1].AlertID)
	assert.Equal(t, 1, sorted[2].AlertID)
}

func TestSortBy_EqualTimestampsKeepInsertionOrder(t *testing.T) {
	l := New()
	ts := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	l.Append(record(1, ts, domain.ChangeSupplyIncrease, 1, 2))
	l.Append(record(2, ts, domain.ChangeForecast, 3, 4))

	sorted := SortBy(l.Records(), FieldTimestamp, Descending)
	assert.Equal(t, 1, sorted[0].AlertID)
	assert.Equal(t, 2, sorted[1].AlertID)
}

func TestSortBy_ChangeTypeLexicographic(t *testing.T) {
	l := New()
	ts := time.Now()
	l.Append(record(1, ts, domain.ChangeSupplyIncrease, 1, 2))
	l.Append(record(2, ts, domain.ChangeCapacityIncrease, 3, 4))
	l.Append(record(3, ts, domain.ChangeForecast, 5, 6))

	sorted := SortBy(l.Records(), FieldChangeType, Ascending)
	got := []domain.ChangeType{sorted[0].ChangeType, sorted[1].ChangeType, sorted[2].ChangeType}
	assert.Equal(t, []domain.ChangeType{
		domain.ChangeCapacityIncrease, // "Capacity Increase"
		domain.ChangeForecast,         // "Forecast Adjustment"
		domain.ChangeSupplyIncrease,   // "Supply Increase"
	}, got)
}

func TestSortBy_NumericFields(t *testing.T) {
	l := New()
	ts := time.Now()
	l.Append(record(1, ts, domain.ChangeSupplyIncrease, 900, 1000))
	l.Append(record(2, ts, domain.ChangeSupplyIncrease, 80, 100))

	sorted := SortBy(l.Records(), FieldBefore, Ascending)
	assert.Equal(t, 80, sorted[0].Before)
	assert.Equal(t, 900, sorted[1].Before)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	l := New()
	t0 := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	r1 := record(1, t0, domain.ChangeSupplyIncrease, 1000, 1150)
	r1.RunID = "run-a"
	l.Append(r1)
	r2 := record(2, t0.Add(time.Minute), domain.ChangeInventoryIncrease, 150, 250)
	r2.RunID = "run-a"
	l.Append(r2)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, l.Records()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3) // header + 2 rows
	assert.Equal(t, "ID,Timestamp,Alert Type,Alert Description,Material,Week,Change Type,Before,After,Impact,Run ID", lines[0])

	// splitting on commas outside quoted segments recovers before/after
	fields := splitCSV(lines[1])
	require.Len(t, fields, 11)
	assert.Equal(t, "1", fields[0])
	assert.Equal(t, "1000", fields[7])
	assert.Equal(t, "1150", fields[8])
	assert.Equal(t, `"Supply less than Total Demand"`, fields[3])
	assert.Equal(t, "run-a", fields[10])

	fields = splitCSV(lines[2])
	assert.Equal(t, "150", fields[7])
	assert.Equal(t, "250", fields[8])
}

func TestWriteCSV_RunIDDistinguishesSessions(t *testing.T) {
	t0 := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	r1 := record(1, t0, domain.ChangeSupplyIncrease, 1000, 1150)
	r1.RunID = "run-a"
	r2 := record(1, t0.Add(time.Hour), domain.ChangeSupplyIncrease, 1000, 1150)
	r2.RunID = "run-b"

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []domain.ChangeRecord{r1, r2}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "run-a", splitCSV(lines[1])[10])
	assert.Equal(t, "run-b", splitCSV(lines[2])[10])
}

// splitCSV splits a line on commas that are not inside quoted segments.
func splitCSV(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			cur.WriteRune(r)
		case r == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	fields = append(fields, cur.String())
	return fields
}
