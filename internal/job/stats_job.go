package job

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"issue-tracker-api/internal/database"
	"issue-tracker-api/internal/domain"
	"issue-tracker-api/internal/metrics"
)

// StatsJob refreshes the issue and comment totals exposed as gauges.
// It implements cron.Job.
type StatsJob struct {
	db      *gorm.DB
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewStatsJob creates a new StatsJob
func NewStatsJob(db *gorm.DB, m *metrics.Metrics, logger *zap.Logger) *StatsJob {
	return &StatsJob{
		db:      db,
		metrics: m,
		logger:  logger,
	}
}

// Run counts the issues and comments tables and updates the gauges
func (j *StatsJob) Run() {
	db := j.db
	if db == nil {
		// The database may have connected asynchronously after this job
		// was scheduled; pick up the global handle.
		db = database.GetDB()
	}
	if db == nil {
		j.logger.Debug("Skipping stats refresh, database not connected")
		return
	}

	var issueCount int64
	if err := db.Model(&domain.Issue{}).Count(&issueCount).Error; err != nil {
		j.logger.Warn("Failed to count issues", zap.Error(err))
	} else {
		j.metrics.SetIssuesTotal(issueCount)
	}

	var commentCount int64
	if err := db.Model(&domain.Comment{}).Count(&commentCount).Error; err != nil {
		j.logger.Warn("Failed to count comments", zap.Error(err))
	} else {
		j.metrics.SetCommentsTotal(commentCount)
	}

	if sqlDB, err := db.DB(); err == nil {
		j.metrics.UpdateDBStats(sqlDB.Stats())
	}

	j.logger.Debug("Stats refreshed",
		zap.Int64("issues", issueCount),
		zap.Int64("comments", commentCount),
	)
}
