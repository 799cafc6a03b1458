package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/rvleeuwen/laadscan/internal/domain/model"
	"github.com/rvleeuwen/laadscan/internal/server/http/handlers"
	testhelpers "github.com/rvleeuwen/laadscan/internal/test"
	"github.com/rvleeuwen/laadscan/internal/usecase"
	"github.com/rvleeuwen/laadscan/internal/worker"
)

var _ handlers.WarehouseFacade = (*WarehouseFacade)(nil)
var _ worker.Importer = (*WarehouseFacade)(nil)

func newFacade(orders *testhelpers.OrderRepositoryStub, users *testhelpers.UserRepositoryStub) *WarehouseFacade {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	heavy := &testhelpers.HeavyProductRepositoryStub{}
	return NewWarehouseFacade(
		usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, testhelpers.StrategyStub{}, &testhelpers.MailerStub{}, logger),
		usecase.NewScanUseCase(orders, &testhelpers.MissingReportRepositoryStub{}, heavy, logger),
		usecase.NewHeavyProductUseCase(heavy),
		usecase.NewImporterUseCase(orders, logger),
	)
}

func TestFacadeDelegatesScan(t *testing.T) {
	orders := testhelpers.NewOrderRepositoryStub(model.Order{
		LineNumber: "1001", Vehicle: "V1", TargetQuantity: "2",
	})
	facade := newFacade(orders, testhelpers.NewUserRepositoryStub())

	result, err := facade.ProcessScan(context.Background(), "1001", "V1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ScannedCount != 1 {
		t.Fatalf("expected scanned count 1, got %d", result.ScannedCount)
	}
}

func TestReportMissingUsesLoginForAudit(t *testing.T) {
	orders := testhelpers.NewOrderRepositoryStub(model.Order{
		LineNumber: "1001", Vehicle: "V1", TargetQuantity: "5",
	})
	users := testhelpers.NewUserRepositoryStub()
	if _, err := users.Create(context.Background(), "jan", "hash:geheim", model.RoleLaadploeg); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	facade := newFacade(orders, users)

	if _, err := facade.ReportMissing(context.Background(), 1, "1001", 2, "breuk", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders.Reports) != 1 {
		t.Fatalf("expected one report, got %d", len(orders.Reports))
	}
	if orders.Reports[0].ReportedBy != "jan" {
		t.Fatalf("expected report by jan, got %q", orders.Reports[0].ReportedBy)
	}
}

func TestReportMissingFallsBackToUserID(t *testing.T) {
	orders := testhelpers.NewOrderRepositoryStub(model.Order{
		LineNumber: "1001", Vehicle: "V1", TargetQuantity: "5",
	})
	facade := newFacade(orders, testhelpers.NewUserRepositoryStub())

	if _, err := facade.ReportMissing(context.Background(), 42, "1001", 1, "breuk", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orders.Reports[0].ReportedBy != "42" {
		t.Fatalf("expected numeric fallback, got %q", orders.Reports[0].ReportedBy)
	}
}

func TestReportMissingPropagatesLookupError(t *testing.T) {
	orders := testhelpers.NewOrderRepositoryStub(model.Order{
		LineNumber: "1001", Vehicle: "V1", TargetQuantity: "5",
	})
	users := testhelpers.NewUserRepositoryStub()
	lookupErr := errors.New("users unavailable")
	users.Err = lookupErr
	facade := newFacade(orders, users)

	if _, err := facade.ReportMissing(context.Background(), 1, "1001", 1, "breuk", ""); !errors.Is(err, lookupErr) {
		t.Fatalf("expected lookup error, got %v", err)
	}
	if len(orders.Reports) != 0 {
		t.Fatalf("expected no report, got %d", len(orders.Reports))
	}
}
