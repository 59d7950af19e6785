package service

import (
	"api"
	"api/internal/api/models"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupConveyorTestDB(t *testing.T) {
	api.InitConfig("../../../.env.test")

	err := api.DB.AutoMigrate(
		&models.Asset{},
		&models.ConveyorSystem{},
		&models.FactoryLayout{},
		&models.LayoutNode{},
		&models.LayoutEdge{},
	)
	require.NoError(t, err, "Failed to migrate conveyor-related tables")
}

func cleanupConveyorSystem(t *testing.T, id string) {
	if id != "" {
		api.DB.Unscoped().Where("id = ?", id).Delete(&models.ConveyorSystem{})
	}
}

// ============ Conveyor System CRUD Tests ============

func TestConveyorSystem_Create(t *testing.T) {
	setupConveyorTestDB(t)

	service := NewConveyorSystemService()
	tenantID := uuid.NewString()

	system, err := service.Create(tenantID, "Main Belt", "#FF0000", "Primary conveyor line")
	require.NoError(t, err, "Failed to create conveyor system")
	require.NotNil(t, system)
	defer cleanupConveyorSystem(t, system.ID)

	assert.NotEmpty(t, system.ID)
	assert.Equal(t, tenantID, system.TenantID)
	assert.Equal(t, "Main Belt", system.Name)
	assert.Equal(t, "#FF0000", system.Color)
}

func TestConveyorSystem_Create_DefaultColor(t *testing.T) {
	setupConveyorTestDB(t)

	service := NewConveyorSystemService()

	system, err := service.Create(uuid.NewString(), "Uncolored Belt", "", "")
	require.NoError(t, err)
	defer cleanupConveyorSystem(t, system.ID)

	assert.Equal(t, models.DefaultConveyorColor, system.Color, "Missing color falls back to the default")
}

func TestConveyorSystem_FindByID_NotFound(t *testing.T) {
	setupConveyorTestDB(t)

	service := NewConveyorSystemService()

	_, _, err := service.FindByID(uuid.NewString(), uuid.NewString())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrConveyorSystemNotFound)
}

func TestConveyorSystem_Update(t *testing.T) {
	setupConveyorTestDB(t)

	service := NewConveyorSystemService()
	tenantID := uuid.NewString()

	system, err := service.Create(tenantID, "Old Belt", "#111111", "")
	require.NoError(t, err)
	defer cleanupConveyorSystem(t, system.ID)

	newName := "New Belt"
	newColor := "#222222"
	updated, err := service.Update(system.ID, tenantID, &newName, &newColor, nil)
	require.NoError(t, err, "Failed to update conveyor system")

	assert.Equal(t, "New Belt", updated.Name)
	assert.Equal(t, "#222222", updated.Color)
	assert.Equal(t, system.Description, updated.Description, "Nil fields stay untouched")
}

func TestConveyorSystem_FindAllForTenant(t *testing.T) {
	setupConveyorTestDB(t)

	service := NewConveyorSystemService()
	tenantID := uuid.NewString()

	s1, err := service.Create(tenantID, "Belt A", "", "")
	require.NoError(t, err)
	defer cleanupConveyorSystem(t, s1.ID)

	s2, err := service.Create(tenantID, "Belt B", "", "")
	require.NoError(t, err)
	defer cleanupConveyorSystem(t, s2.ID)

	systems, counts, err := service.FindAllForTenant(tenantID)
	require.NoError(t, err)

	assert.Len(t, systems, 2)
	assert.NotNil(t, counts)
	for _, s := range systems {
		assert.Equal(t, tenantID, s.TenantID)
	}
}

// ============ Deletion / Detach Tests ============

func TestConveyorSystem_Delete_DetachesEdges(t *testing.T) {
	setupConveyorTestDB(t)

	service := NewConveyorSystemService()
	layoutService := NewLayoutService()
	tenantID := uuid.NewString()

	press := createTestAsset(t, tenantID, "Press", nil)
	defer cleanupAsset(t, press.ID)
	oven := createTestAsset(t, tenantID, "Oven", nil)
	defer cleanupAsset(t, oven.ID)

	system, err := service.Create(tenantID, "Doomed Belt", "", "")
	require.NoError(t, err)

	layout, err := layoutService.Create(tenantID, "Detach Test", "")
	require.NoError(t, err)
	defer cleanupLayout(t, layout.ID)

	n1 := graphNode(press.ID)
	n2 := graphNode(oven.ID)
	edge := models.LayoutEdge{SourceNodeID: n1.ID, TargetNodeID: n2.ID, ConveyorSystemID: &system.ID}

	updated, err := layoutService.ReplaceGraph(layout.ID, tenantID, 1, []models.LayoutNode{n1, n2}, []models.LayoutEdge{edge})
	require.NoError(t, err)
	require.Len(t, updated.Edges, 1)
	require.NotNil(t, updated.Edges[0].ConveyorSystemID)

	err = service.Delete(system.ID, tenantID)
	require.NoError(t, err, "Failed to delete conveyor system")

	// The edge survives, but its system reference is cleared.
	current, err := layoutService.FindByID(layout.ID, tenantID)
	require.NoError(t, err)
	require.Len(t, current.Edges, 1)
	assert.Nil(t, current.Edges[0].ConveyorSystemID, "Edges detach instead of being deleted")

	_, _, err = service.FindByID(system.ID, tenantID)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrConveyorSystemNotFound)
}

func TestConveyorSystem_Delete_NotFound(t *testing.T) {
	setupConveyorTestDB(t)

	service := NewConveyorSystemService()

	err := service.Delete(uuid.NewString(), uuid.NewString())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrConveyorSystemNotFound)
}

func TestConveyorSystem_EdgeCounts(t *testing.T) {
	setupConveyorTestDB(t)

	service := NewConveyorSystemService()
	layoutService := NewLayoutService()
	tenantID := uuid.NewString()

	press := createTestAsset(t, tenantID, "Press", nil)
	defer cleanupAsset(t, press.ID)
	oven := createTestAsset(t, tenantID, "Oven", nil)
	defer cleanupAsset(t, oven.ID)

	system, err := service.Create(tenantID, "Counted Belt", "", "")
	require.NoError(t, err)
	defer cleanupConveyorSystem(t, system.ID)

	layout, err := layoutService.Create(tenantID, "Count Test", "")
	require.NoError(t, err)
	defer cleanupLayout(t, layout.ID)

	n1 := graphNode(press.ID)
	n2 := graphNode(oven.ID)
	edges := []models.LayoutEdge{
		{SourceNodeID: n1.ID, TargetNodeID: n2.ID, ConveyorSystemID: &system.ID},
		{SourceNodeID: n2.ID, TargetNodeID: n1.ID, ConveyorSystemID: &system.ID},
	}

	_, err = layoutService.ReplaceGraph(layout.ID, tenantID, 1, []models.LayoutNode{n1, n2}, edges)
	require.NoError(t, err)

	_, counts, err := service.FindAllForTenant(tenantID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[system.ID])
}
