package api

import (
	"os"

	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/common"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/db"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/db/repositories"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/logging"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/metrics"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/services"
)

type Repositories struct {
	Datasets  *repositories.DatasetRepo
	Keys      *repositories.KeysRepo
	Templates *repositories.TemplateRepository
}

type Services struct {
	Cache      common.CacheInterface
	Datasets   *services.DatasetService
	Mappings   *services.MappingService
	Templates  *services.TemplateService
	ExportLink *common.ExportLinkService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
}

func InitDependencies(metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	repos := &Repositories{
		Datasets:  repositories.NewDatasetRepo(db.DB),
		Keys:      repositories.NewApiKeysRepo(db.DB),
		Templates: repositories.NewTemplateRepository(db.PgDB),
	}

	// Redis-backed cache when configured, in-memory otherwise
	var cacheSvc common.CacheInterface
	if os.Getenv("REDIS_HOST") != "" {
		redisCache, err := common.NewRedisCacheService()
		if err != nil {
			logging.Warn("Redis unavailable, falling back to in-memory cache", "error", err)
			cacheSvc = common.NewCacheService(600, 60)
		} else {
			cacheSvc = redisCache
		}
	} else {
		cacheSvc = common.NewCacheService(600, 60)
	}

	datasetSvc := services.NewDatasetService(repos.Datasets, cacheSvc, metricsReg)
	templateSvc := services.NewTemplateService(repos.Templates, cacheSvc, metricsReg)
	mappingSvc := services.NewMappingService(datasetSvc, templateSvc, cacheSvc, metricsReg)

	secret := os.Getenv("EXPORT_LINK_SECRET")
	if secret == "" {
		secret = "dev-export-secret"
	}
	exportLink := common.NewExportLinkService([]byte(secret), common.NewRedisClient())

	svcs := &Services{
		Cache:      cacheSvc,
		Datasets:   datasetSvc,
		Mappings:   mappingSvc,
		Templates:  templateSvc,
		ExportLink: exportLink,
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
	}, nil
}
