package model

// ScanResult reports the state of an order line after a scan operation,
// together with the derived completion flags of its surrounding groups.
// The group flags are read-only views; they are never persisted.
type ScanResult struct {
	LineNumber            string
	Vehicle               string
	ScannedCount          int
	ReportedMissing       int
	TargetQuantity        int
	OrderComplete         bool
	VehicleScannedCount   int
	VehicleTotalCount     int
	CustomerPhaseComplete bool
	VehicleModeComplete   bool
	VehicleComplete       bool
}

// VehicleBoard is the per-vehicle scanning view, split into the heavy and
// regular phases.
type VehicleBoard struct {
	Vehicle      string
	Heavy        []Order
	Regular      []Order
	ScannedCount int
	TotalCount   int
	Complete     bool
}

// ImportSummary describes the outcome of one workbook import.
type ImportSummary struct {
	Vehicles []string
	Inserted int
	Warnings []string
}
