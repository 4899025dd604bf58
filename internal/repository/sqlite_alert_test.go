package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planops/sopdash/internal/domain"
	"github.com/planops/sopdash/internal/testutil"
)

func TestAlertRepoResolvesRuleOnLoad(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteAlertRepo(database)
	materials := NewSQLiteMaterialRepo(database)
	scenarios := NewSQLiteScenarioRepo(database)

	ctx := context.Background()
	require.NoError(t, materials.Put(ctx, testutil.Materials()))
	require.NoError(t, scenarios.Put(ctx,
		domain.ScenarioInfo{ID: domain.ScenarioBase, Name: "Base Plan"},
		testutil.NewDataset(domain.ScenarioBase)))

	alerts := []domain.Alert{
		testutil.NewAlert(3, domain.ScenarioBase, domain.AlertSupporting,
			"Below Safety Stock threshold", "15", "RM-10"),
		testutil.NewAlert(1, domain.ScenarioBase, domain.AlertCritical,
			"Supply less than Total Demand in week 14", "14", "FG-90"),
		testutil.NewAlert(2, domain.ScenarioBase, domain.AlertCapacity,
			"Planned orders Exceed Allocated Capacity", "14", "IM-55"),
	}
	require.NoError(t, repo.Put(ctx, domain.ScenarioBase, alerts))

	got, err := repo.ListByScenario(ctx, domain.ScenarioBase)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Stored order is preserved, not ID order.
	assert.Equal(t, []int{3, 1, 2}, []int{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, domain.RuleBelowSafetyStock, got[0].Rule)
	assert.Equal(t, domain.RuleSupplyShortfall, got[1].Rule)
	assert.Equal(t, domain.RuleCapacityExceeded, got[2].Rule)
}

func TestAlertRepoPutReplaces(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteAlertRepo(database)
	materials := NewSQLiteMaterialRepo(database)
	scenarios := NewSQLiteScenarioRepo(database)

	ctx := context.Background()
	require.NoError(t, materials.Put(ctx, testutil.Materials()))
	require.NoError(t, scenarios.Put(ctx,
		domain.ScenarioInfo{ID: domain.ScenarioS1, Name: "Expedite PO"},
		testutil.NewDataset(domain.ScenarioS1)))

	first := []domain.Alert{
		testutil.NewAlert(1, domain.ScenarioS1, domain.AlertCritical,
			"Supply less than Total Demand", "14", "FG-90"),
		testutil.NewAlert(2, domain.ScenarioS1, domain.AlertCritical,
			"Inventory not available", "15", "FG-90"),
	}
	require.NoError(t, repo.Put(ctx, domain.ScenarioS1, first))

	second := []domain.Alert{
		testutil.NewAlert(7, domain.ScenarioS1, domain.AlertSupporting,
			"Order Exceeds Minimum Order Quantity", "16", "RM-20"),
	}
	require.NoError(t, repo.Put(ctx, domain.ScenarioS1, second))

	got, err := repo.ListByScenario(ctx, domain.ScenarioS1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 7, got[0].ID)
	assert.Equal(t, domain.RuleExcessOrderQty, got[0].Rule)
}

func TestAlertRepoEmptyScenario(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteAlertRepo(database)
	scenarios := NewSQLiteScenarioRepo(database)

	ctx := context.Background()
	require.NoError(t, scenarios.Put(ctx,
		domain.ScenarioInfo{ID: domain.ScenarioS4, Name: "Alt Supplier"},
		&domain.ScenarioDataset{Scenario: domain.ScenarioS4}))

	got, err := repo.ListByScenario(ctx, domain.ScenarioS4)
	require.NoError(t, err)
	assert.Empty(t, got)
}
