package jobs

import (
	"context"
	"time"

	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/services"
)

// InitializeJobs initializes and starts all background jobs
func InitializeJobs(
	ctx context.Context,
	templates *services.TemplateService,
) *TemplateCleanupJob {
	// Reclaim stale auto-saved templates once a day
	cleanupJob := NewTemplateCleanupJob(templates)

	go cleanupJob.RunScheduled(ctx, 24*time.Hour)

	return cleanupJob
}
