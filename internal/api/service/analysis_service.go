package service

import (
	"api"
	"api/internal/api/models"
	"api/internal/api/repo"
	"api/internal/flow"
	"api/pkg"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const analysisCacheTTL = 10 * time.Minute

type AnalysisService struct {
	layoutRepo *repo.LayoutRepository
	assetRepo  *repo.AssetRepository
	logger     zerolog.Logger
}

func NewAnalysisService() *AnalysisService {
	return &AnalysisService{
		layoutRepo: repo.NewLayoutRepository(),
		assetRepo:  repo.NewAssetRepository(),
		logger:     api.Logger,
	}
}

// AnalyzeLayout runs flow analysis against the persisted graph. The
// report is tied to the exact version it was computed from, which also
// makes it safe to cache per (layout, version): the same version always
// produces the same report.
func (slf *AnalysisService) AnalyzeLayout(id string, tenantID string) (*flow.Report, error) {
	layout, err := slf.layoutRepo.FindByID(id, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrLayoutNotFound
		}
		slf.logger.Error().Err(err).Str("layoutId", id).Msg("Error loading layout for analysis")
		return nil, err
	}

	cacheKey := fmt.Sprintf("flow:analysis:%s:v%d", layout.ID, layout.Version)
	var cached flow.Report
	if err := pkg.RedisGet(cacheKey, &cached); err == nil {
		return &cached, nil
	} else if !pkg.IsRedisNil(err) {
		slf.logger.Warn().Err(err).Str("layoutId", id).Msg("Analysis cache read failed, recomputing")
	}

	assets, err := slf.resolveAssets(layout, tenantID)
	if err != nil {
		return nil, err
	}

	report := flow.Analyze(layout.Nodes, layout.Edges, assets, layout.Version)

	if err := pkg.RedisSet(cacheKey, report, analysisCacheTTL); err != nil {
		slf.logger.Warn().Err(err).Str("layoutId", id).Msg("Could not cache analysis report")
	}

	slf.logger.Info().
		Str("layoutId", id).
		Int("analyzedVersion", report.AnalyzedVersion).
		Int("bottlenecks", len(report.Bottlenecks)).
		Float64("systemEfficiency", report.SystemEfficiency).
		Msg("Flow analysis computed")
	return &report, nil
}

// resolveAssets loads the asset records the layout's nodes point at.
// Assets deleted elsewhere are simply absent from the map; analysis
// tolerates the dangling references instead of failing the run.
func (slf *AnalysisService) resolveAssets(layout models.FactoryLayout, tenantID string) (map[string]models.Asset, error) {
	idSet := make(map[string]bool, len(layout.Nodes))
	ids := make([]string, 0, len(layout.Nodes))
	for _, n := range layout.Nodes {
		if !idSet[n.AssetID] {
			idSet[n.AssetID] = true
			ids = append(ids, n.AssetID)
		}
	}

	assets, err := slf.assetRepo.FindByIDs(ids, tenantID)
	if err != nil {
		slf.logger.Error().Err(err).Str("layoutId", layout.ID).Msg("Error loading assets for analysis")
		return nil, err
	}

	byID := make(map[string]models.Asset, len(assets))
	for _, asset := range assets {
		byID[asset.ID] = asset
	}
	return byID, nil
}
