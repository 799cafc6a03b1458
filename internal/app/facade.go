package app

import (
	"context"
	"errors"
	"strconv"

	domainErrors "github.com/rvleeuwen/laadscan/internal/domain/errors"
	"github.com/rvleeuwen/laadscan/internal/domain/model"
	"github.com/rvleeuwen/laadscan/internal/usecase"
)

// WarehouseFacade bundles the use cases behind the single surface the HTTP
// layer and the import worker talk to.
type WarehouseFacade struct {
	auth     *usecase.AuthUseCase
	scans    *usecase.ScanUseCase
	heavy    *usecase.HeavyProductUseCase
	importer *usecase.ImporterUseCase
}

func NewWarehouseFacade(auth *usecase.AuthUseCase, scans *usecase.ScanUseCase, heavy *usecase.HeavyProductUseCase, importer *usecase.ImporterUseCase) *WarehouseFacade {
	return &WarehouseFacade{auth: auth, scans: scans, heavy: heavy, importer: importer}
}

func (f *WarehouseFacade) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, login, password)
}

func (f *WarehouseFacade) ParseToken(token string) (int64, model.Role, error) {
	return f.auth.ParseToken(token)
}

func (f *WarehouseFacade) RequestPasswordReset(ctx context.Context, login string) error {
	return f.auth.RequestPasswordReset(ctx, login)
}

func (f *WarehouseFacade) ResetPassword(ctx context.Context, token, password string) error {
	return f.auth.ResetPassword(ctx, token, password)
}

func (f *WarehouseFacade) CreateUser(ctx context.Context, login, password string, role model.Role) (*model.User, error) {
	return f.auth.CreateUser(ctx, login, password, role)
}

func (f *WarehouseFacade) ProcessScan(ctx context.Context, lineNumber, vehicle string) (*model.ScanResult, error) {
	return f.scans.ProcessScan(ctx, lineNumber, vehicle)
}

func (f *WarehouseFacade) DecrementScan(ctx context.Context, lineNumber, vehicle string) (*model.ScanResult, error) {
	return f.scans.DecrementScan(ctx, lineNumber, vehicle)
}

// ReportMissing resolves the reporting user's login for the audit trail
// before delegating to the scan use case.
func (f *WarehouseFacade) ReportMissing(ctx context.Context, userID int64, lineNumber string, amount int, reason, comments string) (*model.ScanResult, error) {
	reportedBy := strconv.FormatInt(userID, 10)
	user, err := f.auth.GetByID(ctx, userID)
	if err == nil {
		reportedBy = user.Login
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}
	return f.scans.ReportMissing(ctx, lineNumber, amount, reason, comments, reportedBy)
}

func (f *WarehouseFacade) Vehicles(ctx context.Context) ([]string, error) {
	return f.scans.Vehicles(ctx)
}

func (f *WarehouseFacade) VehicleBoard(ctx context.Context, vehicle string) (*model.VehicleBoard, error) {
	return f.scans.VehicleBoard(ctx, vehicle)
}

func (f *WarehouseFacade) MissingReports(ctx context.Context, vehicle string) ([]model.MissingReport, error) {
	return f.scans.MissingReports(ctx, vehicle)
}

func (f *WarehouseFacade) HeavyProducts(ctx context.Context) ([]model.HeavyProduct, error) {
	return f.heavy.List(ctx)
}

func (f *WarehouseFacade) AddHeavyProduct(ctx context.Context, name string) (*model.HeavyProduct, error) {
	return f.heavy.Add(ctx, name)
}

func (f *WarehouseFacade) RemoveHeavyProduct(ctx context.Context, id int64) error {
	return f.heavy.Remove(ctx, id)
}

func (f *WarehouseFacade) Import(ctx context.Context, data []byte, source string) (*model.ImportSummary, error) {
	return f.importer.Import(ctx, data, source)
}
