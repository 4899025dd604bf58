// Package export writes alert and raw-data views as CSV files named after
// the scenario they came from.
package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/planops/sopdash/internal/domain"
)

// ErrNoData signals an export of an empty view.
var ErrNoData = errors.New("nothing to export")

// AlertsFilename returns the download name for a scenario's alert export.
func AlertsFilename(id domain.ScenarioID) string {
	return fmt.Sprintf("%s_alerts.csv", id)
}

// RawDataFilename returns the download name for a scenario's raw data export.
func RawDataFilename(id domain.ScenarioID) string {
	return fmt.Sprintf("%s_data_export.csv", id)
}

var alertsHeader = []string{"ID", "Type", "Description", "Week", "Item", "Item Name"}

// WriteAlertsCSV writes the alerts with their resolved material names.
// Description and Item Name are always quoted; other free-text values are
// quoted only when they contain a comma or a quote.
func WriteAlertsCSV(w io.Writer, alerts []domain.Alert, materials map[string]domain.Material) error {
	if len(alerts) == 0 {
		return ErrNoData
	}
	if _, err := fmt.Fprintln(w, strings.Join(alertsHeader, ",")); err != nil {
		return fmt.Errorf("writing alerts header: %w", err)
	}
	for _, a := range alerts {
		fields := []string{
			strconv.Itoa(a.ID),
			string(a.Type),
			quote(a.Description),
			a.Week,
			a.MaterialID,
			quote(domain.MaterialName(materials, a.MaterialID)),
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, ",")); err != nil {
			return fmt.Errorf("writing alert %d: %w", a.ID, err)
		}
	}
	return nil
}

// WriteRawCSV writes the raw planning grid using the dataset's own column
// order. Missing cells become empty fields.
func WriteRawCSV(w io.Writer, ds *domain.ScenarioDataset) error {
	if ds == nil || len(ds.RawRows) == 0 {
		return ErrNoData
	}
	if _, err := fmt.Fprintln(w, strings.Join(ds.RawColumns, ",")); err != nil {
		return fmt.Errorf("writing raw header: %w", err)
	}
	for i, row := range ds.RawRows {
		fields := make([]string, len(ds.RawColumns))
		for j, col := range ds.RawColumns {
			fields[j] = quoteIfNeeded(row[col])
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, ",")); err != nil {
			return fmt.Errorf("writing raw row %d: %w", i, err)
		}
	}
	return nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, `",`) {
		return quote(s)
	}
	return s
}
