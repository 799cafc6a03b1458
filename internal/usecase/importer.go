package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	domainErrors "github.com/rvleeuwen/laadscan/internal/domain/errors"
	"github.com/rvleeuwen/laadscan/internal/domain/model"
	"github.com/rvleeuwen/laadscan/internal/domain/repository"
)

// Column layout of the planning export, zero-based. The first row is a header.
const (
	colOrderNo = iota
	colCustomerName
	colCustomerNumber
	colLineNumber
	colArticleDescription
	colLength
	colTargetQuantity
	colVehicle
	colSequence
	importColumns
)

// ImporterUseCase turns uploaded planning workbooks into order lines.
type ImporterUseCase struct {
	orders repository.OrderRepository
	logger *slog.Logger
}

// NewImporterUseCase constructs ImporterUseCase.
func NewImporterUseCase(orders repository.OrderRepository, logger *slog.Logger) *ImporterUseCase {
	return &ImporterUseCase{orders: orders, logger: logger}
}

// Import parses a workbook and replaces the order set of every vehicle it
// mentions. Vehicles with scan progress are refused (ErrInvalidState): once
// the floor started scanning, import must not clobber the counters.
func (u *ImporterUseCase) Import(ctx context.Context, data []byte, source string) (*model.ImportSummary, error) {
	orders, warnings, err := ParseWorkbook(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, domainErrors.ErrInvalidArgument
	}
	for _, w := range warnings {
		u.logger.Warn("import data quality",
			slog.String("source", source),
			slog.String("detail", w))
	}

	byVehicle := make(map[string][]model.Order)
	for _, o := range orders {
		byVehicle[o.Vehicle] = append(byVehicle[o.Vehicle], o)
	}

	summary := &model.ImportSummary{Warnings: warnings}
	for vehicle, group := range byVehicle {
		n, err := u.orders.ReplaceVehicle(ctx, vehicle, group)
		if err != nil {
			return nil, fmt.Errorf("replace vehicle %s: %w", vehicle, err)
		}
		summary.Inserted += n
		summary.Vehicles = append(summary.Vehicles, vehicle)
	}
	sort.Strings(summary.Vehicles)
	return summary, nil
}

// ParseWorkbook reads order lines from the first sheet of an xlsx workbook.
// Rows with dirty numeric fields produce warnings and defaults instead of
// failing the whole import; rows without a line number or vehicle are
// skipped with a warning.
func ParseWorkbook(r io.Reader) ([]model.Order, []string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	var (
		orders   []model.Order
		warnings []string
		now      = time.Now()
	)
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		lineNumber := strings.TrimSpace(cell(row, colLineNumber))
		vehicle := strings.TrimSpace(cell(row, colVehicle))
		if lineNumber == "" || vehicle == "" {
			warnings = append(warnings, fmt.Sprintf("row %d: missing line number or vehicle, skipped", i+1))
			continue
		}

		target := strings.TrimSpace(cell(row, colTargetQuantity))
		if _, err := strconv.Atoi(target); err != nil {
			warnings = append(warnings, fmt.Sprintf("row %d: unparsable target quantity %q", i+1, target))
		}

		sequence := 0
		if raw := strings.TrimSpace(cell(row, colSequence)); raw != "" {
			sequence, err = strconv.Atoi(raw)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("row %d: unparsable sequence %q, defaulted to 0", i+1, raw))
				sequence = 0
			}
		}

		orders = append(orders, model.Order{
			OrderNo:            strings.TrimSpace(cell(row, colOrderNo)),
			CustomerName:       strings.TrimSpace(cell(row, colCustomerName)),
			CustomerNumber:     strings.TrimSpace(cell(row, colCustomerNumber)),
			LineNumber:         lineNumber,
			ArticleDescription: strings.TrimSpace(cell(row, colArticleDescription)),
			Length:             strings.TrimSpace(cell(row, colLength)),
			TargetQuantity:     target,
			Vehicle:            vehicle,
			Sequence:           sequence,
			ImportedAt:         now,
		})
	}
	return orders, warnings, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}
