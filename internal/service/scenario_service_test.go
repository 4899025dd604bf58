package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planops/sopdash/internal/domain"
	"github.com/planops/sopdash/internal/repository"
	"github.com/planops/sopdash/internal/seed"
	"github.com/planops/sopdash/internal/testutil"
)

func newSeededServices(t *testing.T, latency time.Duration) (ScenarioService, AlertService, MaterialService) {
	t.Helper()
	database := testutil.NewTestDB(t)
	materials := repository.NewSQLiteMaterialRepo(database)
	scenarios := repository.NewSQLiteScenarioRepo(database)
	alerts := repository.NewSQLiteAlertRepo(database)
	require.NoError(t, seed.Load(context.Background(), materials, scenarios, alerts))
	return NewScenarioService(scenarios, latency), NewAlertService(alerts), NewMaterialService(materials)
}

func TestScenarioServiceLoad(t *testing.T) {
	scenarios, _, _ := newSeededServices(t, 0)

	ds, err := scenarios.Load(context.Background(), domain.ScenarioS2)
	require.NoError(t, err)
	assert.Equal(t, domain.ScenarioS2, ds.Scenario)
	assert.Len(t, ds.TimeSeries, 11)
}

func TestScenarioServiceLoadUnknown(t *testing.T) {
	scenarios, _, _ := newSeededServices(t, 0)

	_, err := scenarios.Load(context.Background(), domain.ScenarioID("NOPE"))
	assert.ErrorIs(t, err, domain.ErrUnknownScenario)
}

func TestScenarioServiceLoadHonorsCancellation(t *testing.T) {
	scenarios, _, _ := newSeededServices(t, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := scenarios.Load(ctx, domain.ScenarioBase)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second, "cancelled load must not wait out the latency")
}

func TestMaterialServiceIndex(t *testing.T) {
	_, _, materials := newSeededServices(t, 0)

	idx, err := materials.Index(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "LCO Cathode Sheet", idx["FG-90"].Name)
	assert.Len(t, idx, 4)
}

func TestAlertServiceListByScenario(t *testing.T) {
	_, alerts, _ := newSeededServices(t, 0)

	got, err := alerts.ListByScenario(context.Background(), domain.ScenarioBase)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, a := range got {
		assert.Equal(t, domain.ScenarioBase, a.Scenario)
		assert.NotEmpty(t, a.Rule)
	}
}
