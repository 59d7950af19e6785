package flow

import (
	"testing"

	"api/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capacity(v float64) *float64 {
	return &v
}

func testAsset(id, name string, cap *float64) models.Asset {
	return models.Asset{
		ID:       id,
		Name:     name,
		Status:   models.AssetStatusOperational,
		Capacity: cap,
	}
}

func testNode(id, assetID string) models.LayoutNode {
	return models.LayoutNode{ID: id, AssetID: assetID}
}

func testEdge(id, source, target string) models.LayoutEdge {
	return models.LayoutEdge{ID: id, SourceNodeID: source, TargetNodeID: target, Type: models.EdgeTypeConveyor}
}

// ============ Edge Efficiency Tests ============

func TestAnalyze_ConstrainedEdge(t *testing.T) {
	nodes := []models.LayoutNode{testNode("n1", "a1"), testNode("n2", "a2")}
	edges := []models.LayoutEdge{testEdge("e1", "n1", "n2")}
	assets := map[string]models.Asset{
		"a1": testAsset("a1", "Press", capacity(100)),
		"a2": testAsset("a2", "Oven", capacity(40)),
	}

	report := Analyze(nodes, edges, assets, 3)

	assert.Equal(t, 3, report.AnalyzedVersion)
	assert.Equal(t, 40.0, report.SystemEfficiency)

	require.Len(t, report.Bottlenecks, 2)

	edgeFinding := report.Bottlenecks[0]
	assert.Equal(t, FindingConveyorLimit, edgeFinding.Type)
	assert.Equal(t, SeverityHigh, edgeFinding.Severity)
	assert.Equal(t, "e1", edgeFinding.ConnectionID)
	assert.Equal(t, 40, edgeFinding.Efficiency)
	assert.Contains(t, edgeFinding.Message, "Oven")
	assert.Contains(t, edgeFinding.Message, "Press")

	assetFinding := report.Bottlenecks[1]
	assert.Equal(t, FindingAssetLimit, assetFinding.Type)
	assert.Equal(t, SeverityHigh, assetFinding.Severity)
	assert.Equal(t, "a2", assetFinding.AssetID)
	assert.Equal(t, 40, assetFinding.Efficiency)
}

func TestAnalyze_BalancedEdge_NoFinding(t *testing.T) {
	nodes := []models.LayoutNode{testNode("n1", "a1"), testNode("n2", "a2")}
	edges := []models.LayoutEdge{testEdge("e1", "n1", "n2")}
	assets := map[string]models.Asset{
		"a1": testAsset("a1", "Press", capacity(100)),
		"a2": testAsset("a2", "Oven", capacity(100)),
	}

	report := Analyze(nodes, edges, assets, 1)

	assert.Empty(t, report.Bottlenecks)
	assert.Equal(t, 100.0, report.SystemEfficiency)
}

func TestAnalyze_EfficiencyClampedAt100(t *testing.T) {
	// Downstream capacity exceeds upstream: no bottleneck, clamped to 100.
	nodes := []models.LayoutNode{testNode("n1", "a1"), testNode("n2", "a2")}
	edges := []models.LayoutEdge{testEdge("e1", "n1", "n2")}
	assets := map[string]models.Asset{
		"a1": testAsset("a1", "Press", capacity(50)),
		"a2": testAsset("a2", "Oven", capacity(200)),
	}

	report := Analyze(nodes, edges, assets, 1)

	assert.Empty(t, report.Bottlenecks)
	assert.Equal(t, 100.0, report.SystemEfficiency)
}

func TestAnalyze_SeverityThreshold(t *testing.T) {
	// Exactly 50% is MEDIUM, below 50% is HIGH.
	nodes := []models.LayoutNode{
		testNode("n1", "a1"), testNode("n2", "a2"),
		testNode("n3", "a3"), testNode("n4", "a4"),
	}
	edges := []models.LayoutEdge{
		testEdge("e1", "n1", "n2"),
		testEdge("e2", "n3", "n4"),
	}
	assets := map[string]models.Asset{
		"a1": testAsset("a1", "A1", capacity(100)),
		"a2": testAsset("a2", "A2", capacity(50)),
		"a3": testAsset("a3", "A3", capacity(100)),
		"a4": testAsset("a4", "A4", capacity(49)),
	}

	report := Analyze(nodes, edges, assets, 1)

	require.NotEmpty(t, report.Bottlenecks)
	bySeverity := map[string]Severity{}
	for _, f := range report.Bottlenecks {
		if f.Type == FindingConveyorLimit {
			bySeverity[f.ConnectionID] = f.Severity
		}
	}
	assert.Equal(t, SeverityMedium, bySeverity["e1"])
	assert.Equal(t, SeverityHigh, bySeverity["e2"])
}

func TestAnalyze_SelfLoopExcluded(t *testing.T) {
	nodes := []models.LayoutNode{testNode("n1", "a1")}
	edges := []models.LayoutEdge{testEdge("e1", "n1", "n1")}
	assets := map[string]models.Asset{
		"a1": testAsset("a1", "Press", capacity(10)),
	}

	report := Analyze(nodes, edges, assets, 1)

	assert.Empty(t, report.Bottlenecks)
	assert.Equal(t, 100.0, report.SystemEfficiency)
}

func TestAnalyze_MissingCapacityExcluded(t *testing.T) {
	nodes := []models.LayoutNode{testNode("n1", "a1"), testNode("n2", "a2")}
	edges := []models.LayoutEdge{testEdge("e1", "n1", "n2")}
	assets := map[string]models.Asset{
		"a1": testAsset("a1", "Press", nil),
		"a2": testAsset("a2", "Oven", capacity(40)),
	}

	report := Analyze(nodes, edges, assets, 1)

	assert.Empty(t, report.Bottlenecks)
	assert.Equal(t, 100.0, report.SystemEfficiency, "No eligible edges means full efficiency")
}

func TestAnalyze_MissingAssetExcluded(t *testing.T) {
	// Asset removed from the directory after being placed on the layout.
	nodes := []models.LayoutNode{testNode("n1", "a1"), testNode("n2", "gone")}
	edges := []models.LayoutEdge{testEdge("e1", "n1", "n2")}
	assets := map[string]models.Asset{
		"a1": testAsset("a1", "Press", capacity(100)),
	}

	report := Analyze(nodes, edges, assets, 1)

	assert.Empty(t, report.Bottlenecks)
	assert.Equal(t, 100.0, report.SystemEfficiency)
}

func TestAnalyze_EmptyGraph(t *testing.T) {
	report := Analyze(nil, nil, map[string]models.Asset{}, 1)

	assert.Empty(t, report.Bottlenecks)
	assert.Equal(t, 100.0, report.SystemEfficiency)
}

// ============ Asset Finding Tests ============

func TestAnalyze_ChainConstrainingAsset(t *testing.T) {
	// A(100) -> B(60) -> C(60): only A->B is constrained. B is a local
	// capacity minimum (C ties, which still counts), so B gets flagged.
	nodes := []models.LayoutNode{testNode("n1", "a1"), testNode("n2", "a2"), testNode("n3", "a3")}
	edges := []models.LayoutEdge{
		testEdge("e1", "n1", "n2"),
		testEdge("e2", "n2", "n3"),
	}
	assets := map[string]models.Asset{
		"a1": testAsset("a1", "Press", capacity(100)),
		"a2": testAsset("a2", "Oven", capacity(60)),
		"a3": testAsset("a3", "Packer", capacity(60)),
	}

	report := Analyze(nodes, edges, assets, 1)

	var assetFindings []Finding
	for _, f := range report.Bottlenecks {
		if f.Type == FindingAssetLimit {
			assetFindings = append(assetFindings, f)
		}
	}
	require.Len(t, assetFindings, 1)
	assert.Equal(t, "a2", assetFindings[0].AssetID)
	assert.Equal(t, SeverityMedium, assetFindings[0].Severity)
	assert.Equal(t, 60, assetFindings[0].Efficiency)
}

func TestAnalyze_BystanderNotFlagged(t *testing.T) {
	// A(100) -> B(80) -> C(40): B is downstream of a constrained edge but
	// its neighbor C holds a smaller capacity, so only C is the cause.
	nodes := []models.LayoutNode{testNode("n1", "a1"), testNode("n2", "a2"), testNode("n3", "a3")}
	edges := []models.LayoutEdge{
		testEdge("e1", "n1", "n2"),
		testEdge("e2", "n2", "n3"),
	}
	assets := map[string]models.Asset{
		"a1": testAsset("a1", "Press", capacity(100)),
		"a2": testAsset("a2", "Oven", capacity(80)),
		"a3": testAsset("a3", "Packer", capacity(40)),
	}

	report := Analyze(nodes, edges, assets, 1)

	var flagged []string
	for _, f := range report.Bottlenecks {
		if f.Type == FindingAssetLimit {
			flagged = append(flagged, f.AssetID)
		}
	}
	assert.Equal(t, []string{"a3"}, flagged)
}

// ============ Machine Status Tests ============

func TestAnalyze_DownAssetFlagged(t *testing.T) {
	down := testAsset("a1", "Broken Press", nil)
	down.Status = models.AssetStatusDown

	nodes := []models.LayoutNode{testNode("n1", "a1")}

	report := Analyze(nodes, nil, map[string]models.Asset{"a1": down}, 1)

	require.Len(t, report.Bottlenecks, 1)
	finding := report.Bottlenecks[0]
	assert.Equal(t, FindingMachineStatus, finding.Type)
	assert.Equal(t, SeverityHigh, finding.Severity)
	assert.Equal(t, "a1", finding.AssetID)
	assert.Contains(t, finding.Message, "Broken Press")
}

func TestAnalyze_MaintenanceAssetFlagged(t *testing.T) {
	maint := testAsset("a1", "Oven", nil)
	maint.Status = models.AssetStatusMaintenance

	nodes := []models.LayoutNode{testNode("n1", "a1")}

	report := Analyze(nodes, nil, map[string]models.Asset{"a1": maint}, 1)

	require.Len(t, report.Bottlenecks, 1)
	assert.Equal(t, FindingMachineStatus, report.Bottlenecks[0].Type)
	assert.Equal(t, SeverityMedium, report.Bottlenecks[0].Severity)
}

func TestAnalyze_DownAssetFlaggedOnce(t *testing.T) {
	down := testAsset("a1", "Press", nil)
	down.Status = models.AssetStatusDown

	// Same asset placed twice on the layout.
	nodes := []models.LayoutNode{testNode("n1", "a1"), testNode("n2", "a1")}

	report := Analyze(nodes, nil, map[string]models.Asset{"a1": down}, 1)

	assert.Len(t, report.Bottlenecks, 1)
}

// ============ Determinism Tests ============

func TestAnalyze_Deterministic(t *testing.T) {
	nodes := []models.LayoutNode{
		testNode("n1", "a1"), testNode("n2", "a2"),
		testNode("n3", "a3"), testNode("n4", "a4"),
	}
	edges := []models.LayoutEdge{
		testEdge("e2", "n3", "n4"),
		testEdge("e1", "n1", "n2"),
	}
	assets := map[string]models.Asset{
		"a1": testAsset("a1", "A1", capacity(100)),
		"a2": testAsset("a2", "A2", capacity(30)),
		"a3": testAsset("a3", "A3", capacity(100)),
		"a4": testAsset("a4", "A4", capacity(70)),
	}

	first := Analyze(nodes, edges, assets, 5)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Analyze(nodes, edges, assets, 5))
	}

	// Edge findings come out ordered by connection ID regardless of input order.
	var connectionIDs []string
	for _, f := range first.Bottlenecks {
		if f.Type == FindingConveyorLimit {
			connectionIDs = append(connectionIDs, f.ConnectionID)
		}
	}
	assert.Equal(t, []string{"e1", "e2"}, connectionIDs)
}

func TestAnalyze_SystemEfficiencyIsMeanOfEligibleEdges(t *testing.T) {
	nodes := []models.LayoutNode{
		testNode("n1", "a1"), testNode("n2", "a2"),
		testNode("n3", "a3"), testNode("n4", "a4"),
	}
	edges := []models.LayoutEdge{
		testEdge("e1", "n1", "n2"), // 50%
		testEdge("e2", "n3", "n4"), // 100%
	}
	assets := map[string]models.Asset{
		"a1": testAsset("a1", "A1", capacity(100)),
		"a2": testAsset("a2", "A2", capacity(50)),
		"a3": testAsset("a3", "A3", capacity(100)),
		"a4": testAsset("a4", "A4", capacity(100)),
	}

	report := Analyze(nodes, edges, assets, 1)

	assert.Equal(t, 75.0, report.SystemEfficiency)
}
