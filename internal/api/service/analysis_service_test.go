package service

import (
	"api"
	"api/internal/api/models"
	"api/internal/flow"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAnalysisTestDB(t *testing.T) {
	api.InitConfig("../../../.env.test")

	err := api.DB.AutoMigrate(
		&models.Asset{},
		&models.FactoryLayout{},
		&models.LayoutNode{},
		&models.LayoutEdge{},
	)
	require.NoError(t, err, "Failed to migrate analysis-related tables")
}

func TestAnalysis_ConstrainedLayout(t *testing.T) {
	setupAnalysisTestDB(t)

	layoutService := NewLayoutService()
	service := NewAnalysisService()
	tenantID := uuid.NewString()

	pressCap := 100.0
	ovenCap := 40.0
	press := createTestAsset(t, tenantID, "Press", &pressCap)
	defer cleanupAsset(t, press.ID)
	oven := createTestAsset(t, tenantID, "Oven", &ovenCap)
	defer cleanupAsset(t, oven.ID)

	layout, err := layoutService.Create(tenantID, "Analysis Test", "")
	require.NoError(t, err)
	defer cleanupLayout(t, layout.ID)

	n1 := graphNode(press.ID)
	n2 := graphNode(oven.ID)
	edge := models.LayoutEdge{SourceNodeID: n1.ID, TargetNodeID: n2.ID}

	updated, err := layoutService.ReplaceGraph(layout.ID, tenantID, 1, []models.LayoutNode{n1, n2}, []models.LayoutEdge{edge})
	require.NoError(t, err)

	report, err := service.AnalyzeLayout(layout.ID, tenantID)
	require.NoError(t, err, "Failed to analyze layout")
	require.NotNil(t, report)

	assert.Equal(t, updated.Version, report.AnalyzedVersion, "Report is pinned to the analyzed version")
	assert.Equal(t, 40.0, report.SystemEfficiency)

	var edgeFindings int
	for _, f := range report.Bottlenecks {
		if f.Type == flow.FindingConveyorLimit {
			edgeFindings++
			assert.Equal(t, flow.SeverityHigh, f.Severity)
			assert.Equal(t, 40, f.Efficiency)
		}
	}
	assert.Equal(t, 1, edgeFindings)
}

func TestAnalysis_EmptyLayout(t *testing.T) {
	setupAnalysisTestDB(t)

	layoutService := NewLayoutService()
	service := NewAnalysisService()
	tenantID := uuid.NewString()

	layout, err := layoutService.Create(tenantID, "Empty Analysis", "")
	require.NoError(t, err)
	defer cleanupLayout(t, layout.ID)

	report, err := service.AnalyzeLayout(layout.ID, tenantID)
	require.NoError(t, err)

	assert.Empty(t, report.Bottlenecks)
	assert.Equal(t, 100.0, report.SystemEfficiency)
	assert.Equal(t, 1, report.AnalyzedVersion)
}

func TestAnalysis_LayoutNotFound(t *testing.T) {
	setupAnalysisTestDB(t)

	service := NewAnalysisService()

	_, err := service.AnalyzeLayout(uuid.NewString(), uuid.NewString())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrLayoutNotFound)
}

func TestAnalysis_RepeatedRunsMatch(t *testing.T) {
	setupAnalysisTestDB(t)

	layoutService := NewLayoutService()
	service := NewAnalysisService()
	tenantID := uuid.NewString()

	pressCap := 80.0
	ovenCap := 60.0
	press := createTestAsset(t, tenantID, "Press", &pressCap)
	defer cleanupAsset(t, press.ID)
	oven := createTestAsset(t, tenantID, "Oven", &ovenCap)
	defer cleanupAsset(t, oven.ID)

	layout, err := layoutService.Create(tenantID, "Repeat Analysis", "")
	require.NoError(t, err)
	defer cleanupLayout(t, layout.ID)

	n1 := graphNode(press.ID)
	n2 := graphNode(oven.ID)
	edge := models.LayoutEdge{SourceNodeID: n1.ID, TargetNodeID: n2.ID}

	_, err = layoutService.ReplaceGraph(layout.ID, tenantID, 1, []models.LayoutNode{n1, n2}, []models.LayoutEdge{edge})
	require.NoError(t, err)

	// Second call hits the version-keyed cache; both reports must agree.
	first, err := service.AnalyzeLayout(layout.ID, tenantID)
	require.NoError(t, err)
	second, err := service.AnalyzeLayout(layout.ID, tenantID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
