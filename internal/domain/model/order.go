package model

import "time"

// Order is a single scannable order line loaded on a vehicle.
type Order struct {
	ID                 int64
	OrderNo            string
	LineNumber         string
	Vehicle            string
	CustomerName       string
	CustomerNumber     string
	ArticleDescription string
	Length             string
	// TargetQuantity keeps the raw colli value from the planning export.
	// Source data is dirty; parsing happens in the completion evaluator.
	TargetQuantity  string
	ScannedCount    int
	ReportedMissing int
	Completed       bool
	Sequence        int
	ImportedAt      time.Time
}
