package factory

import (
	"github.com/DavideLicci/MindGarden/internal/config"
	"github.com/DavideLicci/MindGarden/internal/jobs"
)

// JobsConfig maps service configuration onto the worker's.
func JobsConfig(cfg *config.Config) jobs.Config {
	return jobs.Config{
		BatchSize: cfg.JobsBatchSize,
		Interval:  cfg.JobsInterval(),
		ExportDir: cfg.ExportDir,
	}
}
