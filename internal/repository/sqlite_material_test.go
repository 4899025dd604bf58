package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planops/sopdash/internal/domain"
	"github.com/planops/sopdash/internal/testutil"
)

func TestMaterialRepoListSortedByID(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteMaterialRepo(database)

	ctx := context.Background()
	require.NoError(t, repo.Put(ctx, testutil.Materials()))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "FG-90", got[0].ID)
	assert.Equal(t, "IM-55", got[1].ID)
	assert.Equal(t, "RM-10", got[2].ID)
	assert.Equal(t, "RM-20", got[3].ID)
}

func TestMaterialRepoGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteMaterialRepo(database)

	ctx := context.Background()
	require.NoError(t, repo.Put(ctx, testutil.Materials()))

	m, err := repo.Get(ctx, "IM-55")
	require.NoError(t, err)
	assert.Equal(t, "Calcined LCO Powder", m.Name)
	assert.Equal(t, domain.MaterialIntermediate, m.Type)

	_, err = repo.Get(ctx, "XX-99")
	assert.Error(t, err)
}

func TestMaterialRepoPutUpserts(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteMaterialRepo(database)

	ctx := context.Background()
	require.NoError(t, repo.Put(ctx, testutil.Materials()))
	require.NoError(t, repo.Put(ctx, []domain.Material{
		{ID: "RM-10", Name: "Lithium Carbonate (Battery Grade)", Type: domain.MaterialRaw},
	}))

	m, err := repo.Get(ctx, "RM-10")
	require.NoError(t, err)
	assert.Equal(t, "Lithium Carbonate (Battery Grade)", m.Name)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
