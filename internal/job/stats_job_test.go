package job

import (
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"issue-tracker-api/internal/domain"
	"issue-tracker-api/internal/metrics"
)

func setupJobTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	db.Exec(`CREATE TABLE issues (
		id TEXT PRIMARY KEY,
		created_at DATETIME,
		updated_at DATETIME,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		body TEXT,
		labels TEXT
	)`)
	db.Exec(`CREATE TABLE comments (
		id TEXT PRIMARY KEY,
		created_at DATETIME,
		updated_at DATETIME,
		issue_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		body TEXT NOT NULL
	)`)

	return db
}

func gaugeValue(t *testing.T, registry *prometheus.Registry, name string) (float64, bool) {
	t.Helper()
	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, family := range families {
		if family.GetName() == name {
			for _, metric := range family.GetMetric() {
				if metric.GetGauge() != nil {
					return metric.GetGauge().GetValue(), true
				}
			}
		}
	}
	return 0, false
}

func TestStatsJob_Run(t *testing.T) {
	db := setupJobTestDB(t)
	registry := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(registry, zap.NewNop())

	issue := &domain.Issue{UserID: uuid.New(), Title: "counted"}
	db.Create(issue)
	db.Create(&domain.Comment{IssueID: issue.ID, UserID: uuid.New(), Body: "one"})
	db.Create(&domain.Comment{IssueID: issue.ID, UserID: uuid.New(), Body: "two"})

	job := NewStatsJob(db, m, zap.NewNop())
	job.Run()

	if got, ok := gaugeValue(t, registry, "issue_tracker_issues_total"); !ok || got != 1 {
		t.Errorf("issues_total = %v (found=%v), want 1", got, ok)
	}
	if got, ok := gaugeValue(t, registry, "issue_tracker_comments_total"); !ok || got != 2 {
		t.Errorf("comments_total = %v (found=%v), want 2", got, ok)
	}
}

func TestStatsJob_Run_NilDB(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(registry, zap.NewNop())

	// Must not panic before the database connects
	job := NewStatsJob(nil, m, zap.NewNop())
	job.Run()
}
