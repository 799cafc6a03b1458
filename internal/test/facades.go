package test

import (
	"context"
	"sync"

	"github.com/rvleeuwen/laadscan/internal/domain/model"
	"github.com/rvleeuwen/laadscan/internal/worker"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	AuthenticateFn func(context.Context, string, string) (*model.User, string, error)
	ParseFn        func(string) (int64, model.Role, error)
	ForgotFn       func(context.Context, string) error
	ResetFn        func(context.Context, string, string) error
	CreateUserFn   func(context.Context, string, string, model.Role) (*model.User, error)
}

// Authenticate returns a token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return &model.User{ID: 1, Login: login, Role: model.RoleLaadploeg}, "token", nil
}

// ParseToken returns stored identifier for authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (int64, model.Role, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, model.RoleAdmin, nil
}

// RequestPasswordReset delegates to override or succeeds.
func (s AuthFacadeStub) RequestPasswordReset(ctx context.Context, login string) error {
	if s.ForgotFn != nil {
		return s.ForgotFn(ctx, login)
	}
	return nil
}

// ResetPassword delegates to override or succeeds.
func (s AuthFacadeStub) ResetPassword(ctx context.Context, token, password string) error {
	if s.ResetFn != nil {
		return s.ResetFn(ctx, token, password)
	}
	return nil
}

// CreateUser returns the created user or delegates to override.
func (s AuthFacadeStub) CreateUser(ctx context.Context, login, password string, role model.Role) (*model.User, error) {
	if s.CreateUserFn != nil {
		return s.CreateUserFn(ctx, login, password, role)
	}
	return &model.User{ID: 2, Login: login, Role: role}, nil
}

// ScanFacadeStub provides controllable behaviour for scan endpoints.
type ScanFacadeStub struct {
	ProcessFn   func(context.Context, string, string) (*model.ScanResult, error)
	DecrementFn func(context.Context, string, string) (*model.ScanResult, error)
	MissingFn   func(context.Context, int64, string, int, string, string) (*model.ScanResult, error)
}

// ProcessScan delegates to provided function or returns a default result.
func (s ScanFacadeStub) ProcessScan(ctx context.Context, lineNumber, vehicle string) (*model.ScanResult, error) {
	if s.ProcessFn != nil {
		return s.ProcessFn(ctx, lineNumber, vehicle)
	}
	return &model.ScanResult{LineNumber: lineNumber, Vehicle: vehicle, ScannedCount: 1}, nil
}

// DecrementScan delegates to provided function or returns a default result.
func (s ScanFacadeStub) DecrementScan(ctx context.Context, lineNumber, vehicle string) (*model.ScanResult, error) {
	if s.DecrementFn != nil {
		return s.DecrementFn(ctx, lineNumber, vehicle)
	}
	return &model.ScanResult{LineNumber: lineNumber, Vehicle: vehicle}, nil
}

// ReportMissing delegates to provided function or returns a default result.
func (s ScanFacadeStub) ReportMissing(ctx context.Context, userID int64, lineNumber string, amount int, reason, comments string) (*model.ScanResult, error) {
	if s.MissingFn != nil {
		return s.MissingFn(ctx, userID, lineNumber, amount, reason, comments)
	}
	return &model.ScanResult{LineNumber: lineNumber, ReportedMissing: amount}, nil
}

// BoardFacadeStub simulates the read-only vehicle views.
type BoardFacadeStub struct {
	VehiclesFn func(context.Context) ([]string, error)
	BoardFn    func(context.Context, string) (*model.VehicleBoard, error)
	MissingFn  func(context.Context, string) ([]model.MissingReport, error)
}

// Vehicles returns predefined vehicle names.
func (s BoardFacadeStub) Vehicles(ctx context.Context) ([]string, error) {
	if s.VehiclesFn != nil {
		return s.VehiclesFn(ctx)
	}
	return []string{"V1"}, nil
}

// VehicleBoard returns a predefined board.
func (s BoardFacadeStub) VehicleBoard(ctx context.Context, vehicle string) (*model.VehicleBoard, error) {
	if s.BoardFn != nil {
		return s.BoardFn(ctx, vehicle)
	}
	return &model.VehicleBoard{Vehicle: vehicle}, nil
}

// MissingReports returns predefined audit entries.
func (s BoardFacadeStub) MissingReports(ctx context.Context, vehicle string) ([]model.MissingReport, error) {
	if s.MissingFn != nil {
		return s.MissingFn(ctx, vehicle)
	}
	return nil, nil
}

// HeavyFacadeStub simulates heavy product management.
type HeavyFacadeStub struct {
	ListFn   func(context.Context) ([]model.HeavyProduct, error)
	AddFn    func(context.Context, string) (*model.HeavyProduct, error)
	RemoveFn func(context.Context, int64) error
}

// HeavyProducts returns predefined products.
func (s HeavyFacadeStub) HeavyProducts(ctx context.Context) ([]model.HeavyProduct, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return []model.HeavyProduct{{ID: 1, Name: "beton"}}, nil
}

// AddHeavyProduct returns the created product or delegates to override.
func (s HeavyFacadeStub) AddHeavyProduct(ctx context.Context, name string) (*model.HeavyProduct, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, name)
	}
	return &model.HeavyProduct{ID: 1, Name: name}, nil
}

// RemoveHeavyProduct delegates to override or succeeds.
func (s HeavyFacadeStub) RemoveHeavyProduct(ctx context.Context, id int64) error {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, id)
	}
	return nil
}

// WarehouseFacadeStub aggregates facade dependencies for HTTP layer tests.
type WarehouseFacadeStub struct {
	AuthFacadeStub
	ScanFacadeStub
	BoardFacadeStub
	HeavyFacadeStub
}

// ImportQueueStub simulates the background import queue.
type ImportQueueStub struct {
	SubmitFn func(string, []byte) (string, error)
	StatusFn func(string) (*worker.JobStatus, bool)
}

// Submit delegates to override or returns a fixed id.
func (s ImportQueueStub) Submit(filename string, data []byte) (string, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(filename, data)
	}
	return "imp-1", nil
}

// Status delegates to override or reports the job as done.
func (s ImportQueueStub) Status(id string) (*worker.JobStatus, bool) {
	if s.StatusFn != nil {
		return s.StatusFn(id)
	}
	return &worker.JobStatus{ID: id, State: worker.JobStateDone}, true
}

// ImporterStub records workbook imports handed to the worker pool.
type ImporterStub struct {
	ImportFn func(context.Context, []byte, string) (*model.ImportSummary, error)

	mu    sync.Mutex
	Calls []string
}

// Import records the call and delegates to override when provided.
func (s *ImporterStub) Import(ctx context.Context, data []byte, source string) (*model.ImportSummary, error) {
	s.mu.Lock()
	s.Calls = append(s.Calls, source)
	s.mu.Unlock()
	if s.ImportFn != nil {
		return s.ImportFn(ctx, data, source)
	}
	return &model.ImportSummary{Inserted: 1}, nil
}
