package jobs

import (
	"context"
	"log"
	"time"

	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/logging"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/services"
)

// StaleTemplateMaxAge is how long an unused auto-saved template survives.
const StaleTemplateMaxAge = 30 * 24 * time.Hour

// TemplateCleanupJob reclaims auto-saved mapping templates that nobody has
// used in a month. User-named templates are never touched.
type TemplateCleanupJob struct {
	templates *services.TemplateService
}

// NewTemplateCleanupJob creates a new template cleanup job instance
func NewTemplateCleanupJob(templates *services.TemplateService) *TemplateCleanupJob {
	return &TemplateCleanupJob{
		templates: templates,
	}
}

// Run executes one cleanup pass
func (j *TemplateCleanupJob) Run(ctx context.Context) error {
	start := time.Now()
	log.Printf("[TemplateCleanupJob] Starting cleanup at %s", start.Format(time.RFC3339))

	removed, err := j.templates.CleanupStaleAutoSaved(ctx, StaleTemplateMaxAge)
	if err != nil {
		logging.Error("Template cleanup failed", "error", err)
		return err
	}

	logging.Info("Template cleanup completed",
		"removed", removed,
		"duration", time.Since(start).String(),
	)
	return nil
}

// RunScheduled runs the cleanup on a fixed interval until the context ends
func (j *TemplateCleanupJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[TemplateCleanupJob] Stopping scheduled cleanup")
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				log.Printf("[TemplateCleanupJob] Cleanup pass failed: %v", err)
			}
		}
	}
}
