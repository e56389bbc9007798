package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnalysisRun is one finished analysis kept for the audit log.
// Collection: analysis_runs
type AnalysisRun struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RunID        string             `bson:"run_id" json:"run_id"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	Organization string             `bson:"organization" json:"organization"`
	SourceURL    string             `bson:"source_url" json:"source_url"`
	FinalURL     string             `bson:"final_url" json:"final_url"`
	PageTitle    string             `bson:"page_title" json:"page_title"`
	Mode         string             `bson:"mode" json:"mode"`
	Probed       bool               `bson:"probed" json:"probed"`
	Outcome      string             `bson:"outcome" json:"outcome"`
	Reason       string             `bson:"reason,omitempty" json:"reason,omitempty"`
	Chinese      []string           `bson:"chinese" json:"chinese"`
	Other        []string           `bson:"other" json:"other"`
	ChineseCount int                `bson:"chinese_count" json:"chinese_count"`
	OtherCount   int                `bson:"other_count" json:"other_count"`
	DurationMs   int64              `bson:"duration_ms" json:"duration_ms"`
}
