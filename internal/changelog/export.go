package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/planops/sopdash/internal/domain"
)

// ExportFilename is the fixed name for change-log exports.
const ExportFilename = "change_log.csv"

var exportHeader = []string{
	"ID", "Timestamp", "Alert Type", "Alert Description",
	"Material", "Week", "Change Type", "Before", "After", "Impact", "Run ID",
}

// WriteCSV serializes the records in the fixed export column order.
// Description and impact are free text and always quoted; the remaining
// fields never contain the delimiter. The trailing Run ID column keeps
// exports from different review sessions distinguishable after merging.
func WriteCSV(w io.Writer, records []domain.ChangeRecord) error {
	if _, err := fmt.Fprintln(w, strings.Join(exportHeader, ",")); err != nil {
		return fmt.Errorf("writing change log header: %w", err)
	}
	for _, r := range records {
		row := strings.Join([]string{
			fmt.Sprintf("%d", r.SequenceID),
			r.TimestampString(),
			string(r.AlertType),
			quote(r.AlertDescription),
			r.Material(),
			r.Week,
			string(r.ChangeType),
			fmt.Sprintf("%d", r.Before),
			fmt.Sprintf("%d", r.After),
			quote(r.Impact),
			r.RunID,
		}, ",")
		if _, err := fmt.Fprintln(w, row); err != nil {
			return fmt.Errorf("writing change log row %d: %w", r.SequenceID, err)
		}
	}
	return nil
}

// quote wraps free text in double quotes, escaping embedded quotes.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
