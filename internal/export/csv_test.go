package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planops/sopdash/internal/domain"
	"github.com/planops/sopdash/internal/testutil"
)

func TestAlertsFilename(t *testing.T) {
	assert.Equal(t, "S2_alerts.csv", AlertsFilename(domain.ScenarioS2))
	assert.Equal(t, "BASE_data_export.csv", RawDataFilename(domain.ScenarioBase))
}

func TestWriteAlertsCSV(t *testing.T) {
	alerts := []domain.Alert{
		testutil.NewAlert(1, domain.ScenarioBase, domain.AlertCritical,
			"Supply less than Total Demand, week 14", "14", "FG-90"),
		testutil.NewAlert(2, domain.ScenarioBase, domain.AlertSupporting,
			"Below Safety Stock", "15", "XX-99"),
	}

	var buf strings.Builder
	require.NoError(t, WriteAlertsCSV(&buf, alerts, testutil.MaterialIndex()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Type,Description,Week,Item,Item Name", lines[0])
	assert.Equal(t, `1,Critical,"Supply less than Total Demand, week 14",14,FG-90,"LCO Cathode Sheet"`, lines[1])
	// Unknown materials fall back to the ID in the name column.
	assert.Equal(t, `2,Supporting,"Below Safety Stock",15,XX-99,"XX-99"`, lines[2])
}

func TestWriteAlertsCSVEmpty(t *testing.T) {
	var buf strings.Builder
	err := WriteAlertsCSV(&buf, nil, nil)
	assert.ErrorIs(t, err, ErrNoData)
	assert.Empty(t, buf.String())
}

func TestWriteRawCSVQuotesCommaValues(t *testing.T) {
	ds := testutil.NewDataset(domain.ScenarioBase)

	var buf strings.Builder
	require.NoError(t, WriteRawCSV(&buf, ds))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Week,Item,Plant,Quantity", lines[0])
	assert.Equal(t, `14,FG-90,"Detroit, MI",950`, lines[1])
}

func TestWriteRawCSVMissingCells(t *testing.T) {
	ds := &domain.ScenarioDataset{
		Scenario:   domain.ScenarioBase,
		RawColumns: []string{"Week", "Item", "Note"},
		RawRows:    []map[string]string{{"Week": "14", "Item": "FG-90"}},
	}

	var buf strings.Builder
	require.NoError(t, WriteRawCSV(&buf, ds))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "14,FG-90,", lines[1])
}

func TestWriteRawCSVEmpty(t *testing.T) {
	var buf strings.Builder
	assert.ErrorIs(t, WriteRawCSV(&buf, nil), ErrNoData)
	assert.ErrorIs(t, WriteRawCSV(&buf, &domain.ScenarioDataset{}), ErrNoData)
}
