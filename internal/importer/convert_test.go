package importer

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planops/sopdash/internal/domain"
	"github.com/planops/sopdash/internal/repository"
	"github.com/planops/sopdash/internal/testutil"
)

func TestConvertRecomputesFillRateAndResolvesRules(t *testing.T) {
	schema := validSchema()

	info, ds, alerts, materials := Convert(schema)

	assert.Equal(t, domain.ScenarioID("S5"), info.ID)
	assert.Equal(t, "Dual Sourcing", info.Name)

	require.Len(t, ds.TimeSeries, 2)
	assert.InDelta(t, 1000.0/1200.0, ds.TimeSeries[0].FillRate, 1e-9)
	assert.InDelta(t, 1.0, ds.TimeSeries[1].FillRate, 1e-9)

	require.Len(t, alerts, 1)
	assert.Equal(t, domain.RuleSupplyShortfall, alerts[0].Rule)
	assert.Equal(t, domain.ScenarioID("S5"), alerts[0].Scenario)

	require.Len(t, materials, 1)
	assert.Equal(t, domain.MaterialRaw, materials[0].Type)
}

func TestConvertZeroDemandWeek(t *testing.T) {
	schema := validSchema()
	schema.TimeSeries[0].Demand = 0

	_, ds, _, _ := Convert(schema)
	assert.Zero(t, ds.TimeSeries[0].FillRate)
}

func TestConvertCopiesSchemaSlices(t *testing.T) {
	schema := validSchema()
	_, ds, _, _ := Convert(schema)

	schema.Production[0].Quantities["RM-30"] = 999
	schema.Inventory["RM-30"][0] = 999

	assert.Equal(t, 300, ds.Production[0].Quantities["RM-30"])
	assert.Equal(t, 100, ds.Inventory["RM-30"][0])
}

func TestImportFileRoundTrip(t *testing.T) {
	schema := validSchema()
	data, err := json.Marshal(schema)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "scenario.json")
	require.NoError(t, os.WriteFile(path, data, 0644))

	database := testutil.NewTestDB(t)
	materialRepo := repository.NewSQLiteMaterialRepo(database)
	scenarioRepo := repository.NewSQLiteScenarioRepo(database)
	alertRepo := repository.NewSQLiteAlertRepo(database)

	ctx := context.Background()
	id, err := ImportFile(ctx, path, materialRepo, scenarioRepo, alertRepo)
	require.NoError(t, err)
	assert.Equal(t, domain.ScenarioID("S5"), id)

	ds, err := scenarioRepo.Get(ctx, id)
	require.NoError(t, err)
	assert.Len(t, ds.TimeSeries, 2)
	assert.Equal(t, []string{"Week", "Item"}, ds.RawColumns)

	alerts, err := alertRepo.ListByScenario(ctx, id)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, domain.RuleSupplyShortfall, alerts[0].Rule)
}

func TestImportFileRejectsInvalid(t *testing.T) {
	schema := validSchema()
	schema.Scenario.ID = "S1"
	data, err := json.Marshal(schema)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "scenario.json")
	require.NoError(t, os.WriteFile(path, data, 0644))

	database := testutil.NewTestDB(t)
	_, err = ImportFile(context.Background(), path,
		repository.NewSQLiteMaterialRepo(database),
		repository.NewSQLiteScenarioRepo(database),
		repository.NewSQLiteAlertRepo(database))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved")
}
