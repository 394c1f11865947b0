package models

import (
	"time"

	"gorm.io/datatypes"
)

// ReconcileRun is the history entry written after every applied reconciliation pass.
type ReconcileRun struct {
	ID         int64             `gorm:"column:id;primaryKey" json:"id"`
	RunID      string            `gorm:"column:run_id;size:36;not null;index" json:"run_id"`
	StartedAt  time.Time         `gorm:"column:started_at" json:"started_at"`
	FinishedAt time.Time         `gorm:"column:finished_at" json:"finished_at"`
	Source     string            `gorm:"column:source" json:"source"`
	Records    int               `gorm:"column:records" json:"records"`
	ReportPath string            `gorm:"column:report_path" json:"report_path"`
	ReportKey  string            `gorm:"column:report_key" json:"report_key"`
	Summary    datatypes.JSONMap `gorm:"column:summary" json:"summary"`
}

func (ReconcileRun) TableName() string { return TableReconcileRun }
