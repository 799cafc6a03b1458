package model

import "time"

// MissingReport is an append-only audit record of a report-missing action.
type MissingReport struct {
	ID                 int64
	LineNumber         string
	ArticleDescription string
	Reason             string
	Amount             int
	Comments           string
	ReportedBy         string
	ReportedAt         time.Time
}
