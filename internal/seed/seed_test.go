package seed

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planops/sopdash/internal/domain"
	"github.com/planops/sopdash/internal/repository"
	"github.com/planops/sopdash/internal/testutil"
)

func loadSeed(t *testing.T) (*repository.SQLiteScenarioRepo, *repository.SQLiteAlertRepo, *repository.SQLiteMaterialRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	materials := repository.NewSQLiteMaterialRepo(database)
	scenarios := repository.NewSQLiteScenarioRepo(database)
	alerts := repository.NewSQLiteAlertRepo(database)
	require.NoError(t, Load(context.Background(), materials, scenarios, alerts))
	return scenarios, alerts, materials
}

func TestLoadSeedsAllScenarios(t *testing.T) {
	scenarios, _, materials := loadSeed(t)
	ctx := context.Background()

	infos, err := scenarios.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, len(domain.SeedScenarios))
	for i, id := range domain.SeedScenarios {
		assert.Equal(t, id, infos[i].ID)
	}

	mats, err := materials.List(ctx)
	require.NoError(t, err)
	assert.Len(t, mats, 4)
}

func TestSeedDatasetShape(t *testing.T) {
	scenarios, _, _ := loadSeed(t)
	ctx := context.Background()

	for _, id := range domain.SeedScenarios {
		ds, err := scenarios.Get(ctx, id)
		require.NoError(t, err)

		require.Len(t, ds.TimeSeries, 11, "scenario %s", id)
		assert.Equal(t, "14", ds.TimeSeries[0].Week)
		assert.Equal(t, "24", ds.TimeSeries[10].Week)
		require.Len(t, ds.Production, 11)
		assert.Len(t, ds.KPIs, 11)
		assert.NotEmpty(t, ds.RawRows)

		for _, levels := range ds.Inventory {
			assert.Len(t, levels, 11)
		}
	}
}

func TestSeedInventoryTracksSumToTimeSeries(t *testing.T) {
	scenarios, _, _ := loadSeed(t)

	ds, err := scenarios.Get(context.Background(), domain.ScenarioBase)
	require.NoError(t, err)

	for i, wp := range ds.TimeSeries {
		sum := 0
		for _, levels := range ds.Inventory {
			sum += levels[i]
		}
		assert.Equal(t, wp.Inventory, sum, "week %s", wp.Week)
	}
}

func TestSeedBaseWeek14Shortfall(t *testing.T) {
	scenarios, alerts, _ := loadSeed(t)
	ctx := context.Background()

	ds, err := scenarios.Get(ctx, domain.ScenarioBase)
	require.NoError(t, err)
	assert.Less(t, ds.TimeSeries[0].Supply, ds.TimeSeries[0].Demand,
		"BASE week 14 must carry a supply shortfall")

	got, err := alerts.ListByScenario(ctx, domain.ScenarioBase)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, domain.RuleSupplyShortfall, got[0].Rule)
}

func TestSeedAlertsReferenceSeededData(t *testing.T) {
	scenarios, alerts, materials := loadSeed(t)
	ctx := context.Background()

	mats, err := materials.List(ctx)
	require.NoError(t, err)
	known := make(map[string]bool, len(mats))
	for _, m := range mats {
		known[m.ID] = true
	}

	sawUnmatched := false
	for _, id := range domain.SeedScenarios {
		ds, err := scenarios.Get(ctx, id)
		require.NoError(t, err)
		got, err := alerts.ListByScenario(ctx, id)
		require.NoError(t, err)

		for _, a := range got {
			assert.True(t, known[a.MaterialID], "alert %s/%d references unknown material %s", id, a.ID, a.MaterialID)
			_, ok := domain.WeekOffset(a.Week)
			assert.True(t, ok)
			assert.GreaterOrEqual(t, ds.WeekIndex(a.Week), 0,
				"alert %s/%d targets week %s outside the horizon", id, a.ID, a.Week)
			if a.Rule == domain.RuleNone {
				sawUnmatched = true
			}
		}
	}
	assert.True(t, sawUnmatched, "seed must include an alert with no matching rule")
}

func TestSeedRawRowsQuoteSensitiveValues(t *testing.T) {
	scenarios, _, _ := loadSeed(t)

	ds, err := scenarios.Get(context.Background(), domain.ScenarioBase)
	require.NoError(t, err)

	found := false
	for _, row := range ds.RawRows {
		if row["Plant"] == "Detroit, MI" {
			found = true
		}
		for _, col := range ds.RawColumns {
			_, ok := row[col]
			assert.True(t, ok, "row missing column %q", col)
		}
	}
	assert.True(t, found, "seed raw rows must include a comma-bearing plant value")
}

func TestSeedIsIdempotent(t *testing.T) {
	database := testutil.NewTestDB(t)
	materials := repository.NewSQLiteMaterialRepo(database)
	scenarios := repository.NewSQLiteScenarioRepo(database)
	alerts := repository.NewSQLiteAlertRepo(database)

	ctx := context.Background()
	require.NoError(t, Load(ctx, materials, scenarios, alerts))
	require.NoError(t, Load(ctx, materials, scenarios, alerts))

	infos, err := scenarios.List(ctx)
	require.NoError(t, err)
	assert.Len(t, infos, len(domain.SeedScenarios))

	for _, id := range domain.SeedScenarios {
		got, listErr := alerts.ListByScenario(ctx, id)
		require.NoError(t, listErr)
		seen := make(map[int]bool)
		for _, a := range got {
			require.False(t, seen[a.ID], fmt.Sprintf("duplicate alert %d in %s", a.ID, id))
			seen[a.ID] = true
		}
	}
}
