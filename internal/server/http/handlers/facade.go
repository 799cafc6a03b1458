package handlers

import (
	"context"

	"github.com/rvleeuwen/laadscan/internal/domain/model"
	"github.com/rvleeuwen/laadscan/internal/worker"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Authenticate(ctx context.Context, login, password string) (*model.User, string, error)
	ParseToken(token string) (int64, model.Role, error)
	RequestPasswordReset(ctx context.Context, login string) error
	ResetPassword(ctx context.Context, token, password string) error
	CreateUser(ctx context.Context, login, password string, role model.Role) (*model.User, error)
}

// ScanFacade encapsulates counter mutations exposed via HTTP.
type ScanFacade interface {
	ProcessScan(ctx context.Context, lineNumber, vehicle string) (*model.ScanResult, error)
	DecrementScan(ctx context.Context, lineNumber, vehicle string) (*model.ScanResult, error)
	ReportMissing(ctx context.Context, userID int64, lineNumber string, amount int, reason, comments string) (*model.ScanResult, error)
}

// BoardFacade provides read-only vehicle views.
type BoardFacade interface {
	Vehicles(ctx context.Context) ([]string, error)
	VehicleBoard(ctx context.Context, vehicle string) (*model.VehicleBoard, error)
	MissingReports(ctx context.Context, vehicle string) ([]model.MissingReport, error)
}

// HeavyFacade manages the heavy product name list.
type HeavyFacade interface {
	HeavyProducts(ctx context.Context) ([]model.HeavyProduct, error)
	AddHeavyProduct(ctx context.Context, name string) (*model.HeavyProduct, error)
	RemoveHeavyProduct(ctx context.Context, id int64) error
}

// ImportQueue accepts workbook uploads for background processing.
type ImportQueue interface {
	Submit(filename string, data []byte) (string, error)
	Status(id string) (*worker.JobStatus, bool)
}

// WarehouseFacade aggregates the full set of operations used across handlers.
type WarehouseFacade interface {
	AuthFacade
	ScanFacade
	BoardFacade
	HeavyFacade
}
