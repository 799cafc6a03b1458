package dto

// ScanRequest identifies the order line a barcode scan belongs to.
type ScanRequest struct {
	LineNumber string `json:"line_number"`
	Vehicle    string `json:"vehicle"`
}

// MissingRequest registers units that cannot be scanned.
type MissingRequest struct {
	LineNumber string `json:"line_number"`
	Amount     int    `json:"amount"`
	Reason     string `json:"reason"`
	Comments   string `json:"comments"`
}

// ScanResponse mirrors the post-mutation state of an order line and the
// derived completion flags of its groups.
type ScanResponse struct {
	LineNumber            string `json:"line_number"`
	Vehicle               string `json:"vehicle"`
	ScannedCount          int    `json:"scanned_count"`
	ReportedMissing       int    `json:"reported_missing"`
	TargetQuantity        int    `json:"target_quantity"`
	OrderComplete         bool   `json:"order_complete"`
	VehicleScannedCount   int    `json:"vehicle_scanned_count"`
	VehicleTotalCount     int    `json:"vehicle_total_count"`
	CustomerPhaseComplete bool   `json:"customer_phase_complete"`
	VehicleModeComplete   bool   `json:"vehicle_mode_complete"`
	VehicleComplete       bool   `json:"vehicle_complete"`
}
