package dto

import "time"

// OrderResponse describes one order line on a vehicle board.
type OrderResponse struct {
	OrderNo            string `json:"order_no"`
	LineNumber         string `json:"line_number"`
	CustomerName       string `json:"customer_name"`
	CustomerNumber     string `json:"customer_number"`
	ArticleDescription string `json:"article_description"`
	Length             string `json:"length"`
	TargetQuantity     string `json:"target_quantity"`
	ScannedCount       int    `json:"scanned_count"`
	ReportedMissing    int    `json:"reported_missing"`
	Completed          bool   `json:"completed"`
	Sequence           int    `json:"sequence"`
}

// VehicleBoardResponse is the per-vehicle view split into loading phases.
type VehicleBoardResponse struct {
	Vehicle      string          `json:"vehicle"`
	Heavy        []OrderResponse `json:"heavy"`
	Regular      []OrderResponse `json:"regular"`
	ScannedCount int             `json:"scanned_count"`
	TotalCount   int             `json:"total_count"`
	Complete     bool            `json:"complete"`
}

// MissingReportResponse describes one report-missing audit entry.
type MissingReportResponse struct {
	LineNumber         string    `json:"line_number"`
	ArticleDescription string    `json:"article_description"`
	Reason             string    `json:"reason"`
	Amount             int       `json:"amount"`
	Comments           string    `json:"comments,omitempty"`
	ReportedBy         string    `json:"reported_by"`
	ReportedAt         time.Time `json:"reported_at"`
}
