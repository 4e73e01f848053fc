package database

import (
	"time"

	"gorm.io/gorm"
)

// MetricsRecorder is an interface for recording database metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats interface{})
}

// RegisterMetricsCallbacks registers GORM callbacks that time every
// query, insert, update and delete
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) {
	recordAfter := func(kind string) func(*gorm.DB) {
		return func(db *gorm.DB) {
			startTime, ok := db.InstanceGet("query_start_time")
			if !ok {
				return
			}
			duration := time.Since(startTime.(time.Time))
			table := db.Statement.Table
			if table == "" {
				table = "unknown"
			}
			recorder.RecordDBQuery(kind, table, duration, db.Error)
		}
	}
	markStart := func(db *gorm.DB) {
		db.InstanceSet("query_start_time", time.Now())
	}

	db.Callback().Query().Before("gorm:query").Register("metrics:query_before", markStart)
	db.Callback().Query().After("gorm:query").Register("metrics:query_after", recordAfter("select"))

	db.Callback().Create().Before("gorm:create").Register("metrics:create_before", markStart)
	db.Callback().Create().After("gorm:create").Register("metrics:create_after", recordAfter("insert"))

	db.Callback().Update().Before("gorm:update").Register("metrics:update_before", markStart)
	db.Callback().Update().After("gorm:update").Register("metrics:update_after", recordAfter("update"))

	db.Callback().Delete().Before("gorm:delete").Register("metrics:delete_before", markStart)
	db.Callback().Delete().After("gorm:delete").Register("metrics:delete_after", recordAfter("delete"))
}
