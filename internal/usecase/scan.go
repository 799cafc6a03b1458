package usecase

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	domainErrors "github.com/rvleeuwen/laadscan/internal/domain/errors"
	"github.com/rvleeuwen/laadscan/internal/domain/model"
	"github.com/rvleeuwen/laadscan/internal/domain/repository"
)

// ScanUseCase is the transactional entry point for every counter mutation.
// All writes to scanned/reported/completed go through it; other code paths
// treat those fields as read-only.
type ScanUseCase struct {
	orders  repository.OrderRepository
	reports repository.MissingReportRepository
	heavy   repository.HeavyProductRepository
	logger  *slog.Logger
}

// NewScanUseCase constructs ScanUseCase.
func NewScanUseCase(orders repository.OrderRepository, reports repository.MissingReportRepository, heavy repository.HeavyProductRepository, logger *slog.Logger) *ScanUseCase {
	return &ScanUseCase{orders: orders, reports: reports, heavy: heavy, logger: logger}
}

// ProcessScan records one successful barcode scan against an order line.
// Scanning an already complete line is an idempotent no-op, so retried or
// duplicated scans never over-count.
func (u *ScanUseCase) ProcessScan(ctx context.Context, lineNumber, vehicle string) (*model.ScanResult, error) {
	if !ValidateLineNumber(lineNumber) {
		return nil, domainErrors.ErrInvalidArgument
	}
	lineNumber = strings.TrimSpace(lineNumber)

	order, err := u.orders.Update(ctx, lineNumber, vehicle, func(o *model.Order) (*model.MissingReport, error) {
		if _, ok := ParseTarget(o); !ok {
			u.logger.Warn("unparsable target quantity",
				slog.String("line_number", o.LineNumber),
				slog.String("target", o.TargetQuantity))
		}
		if OrderComplete(o) {
			return nil, nil
		}
		if o.ScannedCount >= math.MaxInt32 {
			return nil, domainErrors.ErrOverflow
		}
		o.ScannedCount++
		o.Completed = OrderComplete(o)
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	return u.cascade(ctx, order)
}

// ReportMissing registers units as missing/short for an order line. The
// reported amount may never push scanned + reported past the target; the
// audit record and the counter update commit in the same transaction.
func (u *ScanUseCase) ReportMissing(ctx context.Context, lineNumber string, amount int, reason, comments, reportedBy string) (*model.ScanResult, error) {
	if !ValidateLineNumber(lineNumber) || amount <= 0 || strings.TrimSpace(reason) == "" {
		return nil, domainErrors.ErrInvalidArgument
	}
	lineNumber = strings.TrimSpace(lineNumber)

	order, err := u.orders.Update(ctx, lineNumber, "", func(o *model.Order) (*model.MissingReport, error) {
		target, ok := ParseTarget(o)
		if !ok {
			u.logger.Warn("unparsable target quantity",
				slog.String("line_number", o.LineNumber),
				slog.String("target", o.TargetQuantity))
			target = 0
		}
		remaining := target - o.ScannedCount - o.ReportedMissing
		if amount > remaining {
			return nil, domainErrors.ErrCapacityExceeded
		}
		o.ReportedMissing += amount
		o.Completed = OrderComplete(o)
		return &model.MissingReport{
			LineNumber:         o.LineNumber,
			ArticleDescription: o.ArticleDescription,
			Reason:             strings.TrimSpace(reason),
			Amount:             amount,
			Comments:           comments,
			ReportedBy:         reportedBy,
			ReportedAt:         time.Now(),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return u.cascade(ctx, order)
}

// DecrementScan corrects a mistaken scan by one unit. Decrementing at zero
// is a no-op; the count never goes negative. The result carries only the
// single order's state: a decrement must never announce group completion,
// so no cascading flags are computed.
func (u *ScanUseCase) DecrementScan(ctx context.Context, lineNumber, vehicle string) (*model.ScanResult, error) {
	if !ValidateLineNumber(lineNumber) {
		return nil, domainErrors.ErrInvalidArgument
	}
	lineNumber = strings.TrimSpace(lineNumber)

	order, err := u.orders.Update(ctx, lineNumber, vehicle, func(o *model.Order) (*model.MissingReport, error) {
		if o.ScannedCount <= 0 {
			return nil, nil
		}
		o.ScannedCount--
		o.Completed = OrderComplete(o)
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	return newScanResult(order), nil
}

// VehicleBoard returns the per-vehicle scanning view split into heavy and
// regular phases, ordered the way the floor works through a load.
func (u *ScanUseCase) VehicleBoard(ctx context.Context, vehicle string) (*model.VehicleBoard, error) {
	if strings.TrimSpace(vehicle) == "" {
		return nil, domainErrors.ErrInvalidArgument
	}

	orders, err := u.orders.ListByVehicle(ctx, vehicle)
	if err != nil {
		return nil, err
	}
	names, err := u.heavy.Names(ctx)
	if err != nil {
		return nil, err
	}

	heavy, regular := PartitionByWeight(orders, names)
	board := &model.VehicleBoard{
		Vehicle:    vehicle,
		Heavy:      heavy,
		Regular:    regular,
		TotalCount: len(orders),
		Complete:   VehicleComplete(orders),
	}
	for i := range orders {
		if OrderComplete(&orders[i]) {
			board.ScannedCount++
		}
	}
	return board, nil
}

// Vehicles lists the distinct vehicles that currently have orders.
func (u *ScanUseCase) Vehicles(ctx context.Context) ([]string, error) {
	return u.orders.ListVehicles(ctx)
}

// MissingReports returns the audit log entries for a vehicle.
func (u *ScanUseCase) MissingReports(ctx context.Context, vehicle string) ([]model.MissingReport, error) {
	if strings.TrimSpace(vehicle) == "" {
		return nil, domainErrors.ErrInvalidArgument
	}
	return u.reports.ListByVehicle(ctx, vehicle)
}

// cascade recomputes the derived group flags from a fresh sibling read.
// A stale-by-one view is acceptable here; the UI re-polls.
func (u *ScanUseCase) cascade(ctx context.Context, order *model.Order) (*model.ScanResult, error) {
	siblings, err := u.orders.ListByVehicle(ctx, order.Vehicle)
	if err != nil {
		return nil, err
	}
	names, err := u.heavy.Names(ctx)
	if err != nil {
		return nil, err
	}

	res := newScanResult(order)
	res.VehicleTotalCount = len(siblings)
	for i := range siblings {
		if OrderComplete(&siblings[i]) {
			res.VehicleScannedCount++
		}
	}
	res.CustomerPhaseComplete = CustomerPhaseComplete(siblings, order.CustomerName, names, order)
	res.VehicleModeComplete = VehicleModeComplete(siblings, names, order)
	res.VehicleComplete = VehicleComplete(siblings)
	return res, nil
}

func newScanResult(order *model.Order) *model.ScanResult {
	target, _ := ParseTarget(order)
	return &model.ScanResult{
		LineNumber:      order.LineNumber,
		Vehicle:         order.Vehicle,
		ScannedCount:    order.ScannedCount,
		ReportedMissing: order.ReportedMissing,
		TargetQuantity:  target,
		OrderComplete:   OrderComplete(order),
	}
}
