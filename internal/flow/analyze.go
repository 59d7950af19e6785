package flow

import (
	"fmt"
	"math"
	"sort"

	"api/internal/api/models"
)

type FindingType string

const (
	FindingConveyorLimit FindingType = "CONVEYOR_LIMIT"
	FindingAssetLimit    FindingType = "ASSET_LIMIT"
	FindingMachineStatus FindingType = "MACHINE_STATUS"
)

type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
)

// Finding describes one constrained element of a layout graph. Either
// ConnectionID (edge findings) or AssetID (asset findings) is set.
type Finding struct {
	Type         FindingType `json:"type"`
	Severity     Severity    `json:"severity"`
	AssetID      string      `json:"assetId,omitempty"`
	ConnectionID string      `json:"connectionId,omitempty"`
	Efficiency   int         `json:"efficiency"`
	Message      string      `json:"message"`
}

// Report is the result of one analysis run. It is a pure view over a
// specific persisted graph version, never stored as source of truth.
type Report struct {
	Bottlenecks      []Finding `json:"bottlenecks"`
	SystemEfficiency float64   `json:"systemEfficiency"`
	AnalyzedVersion  int       `json:"analyzedVersion"`
}

// Analyze computes bottleneck findings and the aggregate efficiency for
// a layout graph. It is deterministic for a given (graph, assets) input
// and never mutates anything.
//
// Per edge: efficiency = min(100, round(100 * downstream / upstream)),
// where upstream/downstream are the declared capacities of the source
// and target assets. Edges whose endpoints lack a positive declared
// capacity are excluded, as are self-loops. Assets that have gone
// missing from the directory simply contribute nothing.
func Analyze(nodes []models.LayoutNode, edges []models.LayoutEdge, assets map[string]models.Asset, version int) Report {
	nodeByID := make(map[string]models.LayoutNode, len(nodes))
	for _, n := range nodes {
		nodeByID[n.ID] = n
	}

	capacityOf := func(nodeID string) (float64, bool) {
		n, ok := nodeByID[nodeID]
		if !ok {
			return 0, false
		}
		asset, ok := assets[n.AssetID]
		if !ok || asset.Capacity == nil || *asset.Capacity <= 0 {
			return 0, false
		}
		return *asset.Capacity, true
	}

	assetNameOf := func(nodeID string) string {
		if asset, ok := assets[nodeByID[nodeID].AssetID]; ok {
			return asset.Name
		}
		return nodeID
	}

	var edgeFindings []Finding
	var eligible int
	var efficiencySum float64

	// constrainedInbound tracks, per target node, the worst efficiency
	// of the constrained edges flowing into it.
	constrainedInbound := make(map[string]int)

	for _, e := range edges {
		if e.SourceNodeID == e.TargetNodeID {
			continue
		}
		upstream, okUp := capacityOf(e.SourceNodeID)
		downstream, okDown := capacityOf(e.TargetNodeID)
		if !okUp || !okDown {
			continue
		}

		efficiency := int(math.Min(100, math.Round(100*downstream/upstream)))
		eligible++
		efficiencySum += float64(efficiency)

		if efficiency >= 100 {
			continue
		}

		severity := SeverityMedium
		if efficiency < 50 {
			severity = SeverityHigh
		}
		edgeFindings = append(edgeFindings, Finding{
			Type:         FindingConveyorLimit,
			Severity:     severity,
			ConnectionID: e.ID,
			Efficiency:   efficiency,
			Message: fmt.Sprintf("%s (capacity %g) restricts %s's output to %d%% efficiency.",
				assetNameOf(e.TargetNodeID), downstream, assetNameOf(e.SourceNodeID), efficiency),
		})

		if worst, ok := constrainedInbound[e.TargetNodeID]; !ok || efficiency < worst {
			constrainedInbound[e.TargetNodeID] = efficiency
		}
	}

	assetFindings := findConstrainingAssets(nodes, edges, constrainedInbound, capacityOf, assetNameOf)
	statusFindings := findStatusFindings(nodes, assets)

	sort.Slice(edgeFindings, func(i, j int) bool {
		return edgeFindings[i].ConnectionID < edgeFindings[j].ConnectionID
	})
	sort.Slice(assetFindings, func(i, j int) bool {
		return assetFindings[i].AssetID < assetFindings[j].AssetID
	})
	sort.Slice(statusFindings, func(i, j int) bool {
		return statusFindings[i].AssetID < statusFindings[j].AssetID
	})

	findings := make([]Finding, 0, len(edgeFindings)+len(assetFindings)+len(statusFindings))
	findings = append(findings, edgeFindings...)
	findings = append(findings, assetFindings...)
	findings = append(findings, statusFindings...)

	systemEfficiency := 100.0
	if eligible > 0 {
		systemEfficiency = efficiencySum / float64(eligible)
	}

	return Report{
		Bottlenecks:      findings,
		SystemEfficiency: systemEfficiency,
		AnalyzedVersion:  version,
	}
}

// findConstrainingAssets flags a node's asset when the node sits
// downstream of at least one constrained edge and holds the locally
// minimal capacity among itself and its immediate neighbors, i.e. it is
// the cause of the restriction rather than a bystander.
func findConstrainingAssets(
	nodes []models.LayoutNode,
	edges []models.LayoutEdge,
	constrainedInbound map[string]int,
	capacityOf func(string) (float64, bool),
	assetNameOf func(string) string,
) []Finding {
	neighbors := make(map[string][]string)
	for _, e := range edges {
		if e.SourceNodeID == e.TargetNodeID {
			continue
		}
		neighbors[e.SourceNodeID] = append(neighbors[e.SourceNodeID], e.TargetNodeID)
		neighbors[e.TargetNodeID] = append(neighbors[e.TargetNodeID], e.SourceNodeID)
	}

	var findings []Finding
	seen := make(map[string]bool)
	for _, n := range nodes {
		worst, constrained := constrainedInbound[n.ID]
		if !constrained || seen[n.AssetID] {
			continue
		}
		capacity, ok := capacityOf(n.ID)
		if !ok {
			continue
		}

		localMin := true
		for _, neighborID := range neighbors[n.ID] {
			if neighborCap, ok := capacityOf(neighborID); ok && neighborCap < capacity {
				localMin = false
				break
			}
		}
		if !localMin {
			continue
		}

		seen[n.AssetID] = true
		severity := SeverityMedium
		if worst < 50 {
			severity = SeverityHigh
		}
		findings = append(findings, Finding{
			Type:       FindingAssetLimit,
			Severity:   severity,
			AssetID:    n.AssetID,
			Efficiency: worst,
			Message: fmt.Sprintf("%s (capacity %g) is the constraining asset of its section.",
				assetNameOf(n.ID), capacity),
		})
	}
	return findings
}

// findStatusFindings reports assets placed on the layout that are DOWN
// or in MAINTENANCE, independent of declared capacities.
func findStatusFindings(nodes []models.LayoutNode, assets map[string]models.Asset) []Finding {
	var findings []Finding
	seen := make(map[string]bool)
	for _, n := range nodes {
		asset, ok := assets[n.AssetID]
		if !ok || seen[asset.ID] {
			continue
		}
		if asset.Status != models.AssetStatusDown && asset.Status != models.AssetStatusMaintenance {
			continue
		}
		seen[asset.ID] = true
		severity := SeverityMedium
		if asset.Status == models.AssetStatusDown {
			severity = SeverityHigh
		}
		findings = append(findings, Finding{
			Type:     FindingMachineStatus,
			Severity: severity,
			AssetID:  asset.ID,
			Message:  fmt.Sprintf("System flow interrupted: %s is %s.", asset.Name, asset.Status),
		})
	}
	return findings
}
