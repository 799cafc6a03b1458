package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/xuri/excelize/v2"

	domainErrors "github.com/rvleeuwen/laadscan/internal/domain/errors"
	"github.com/rvleeuwen/laadscan/internal/domain/model"
	testhelpers "github.com/rvleeuwen/laadscan/internal/test"
)

func buildWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	header := []string{"Order", "Klant", "Klantnr", "Orderregel", "Artikel", "Lengte", "Colli", "Voertuig", "Volgorde"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for i, row := range rows {
		cellRef := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			t.Fatalf("write row %d: %v", i+2, err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("serialize workbook: %v", err)
	}
	return buf.Bytes()
}

func TestParseWorkbook(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"A1", "Jansen", "K100", "1001", "Betonplaat", "200", "5", "V1", "2"},
		{"A1", "Jansen", "K100", "1002", "Houten lat", "", "3", "V2", "1"},
	})

	orders, warnings, err := ParseWorkbook(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	first := orders[0]
	if first.LineNumber != "1001" || first.Vehicle != "V1" || first.TargetQuantity != "5" || first.Sequence != 2 {
		t.Fatalf("unexpected first order: %+v", first)
	}
	if first.CustomerName != "Jansen" || first.ArticleDescription != "Betonplaat" || first.Length != "200" {
		t.Fatalf("unexpected first order fields: %+v", first)
	}
}

func TestParseWorkbookDirtyRows(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"A1", "Jansen", "K100", "", "Betonplaat", "", "5", "V1", "1"},      // no line number
		{"A1", "Jansen", "K100", "1002", "Houten lat", "", "veel", "V1", "x"}, // dirty numbers
	})

	orders, warnings, err := ParseWorkbook(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	if len(warnings) != 3 {
		t.Fatalf("expected 3 warnings, got %v", warnings)
	}
	if orders[0].TargetQuantity != "veel" {
		t.Fatal("dirty target values must be kept raw")
	}
	if orders[0].Sequence != 0 {
		t.Fatalf("dirty sequence must default to 0, got %d", orders[0].Sequence)
	}
}

func TestImportGroupsByVehicle(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"A1", "Jansen", "K100", "1001", "Betonplaat", "200", "5", "V1", "1"},
		{"A1", "Jansen", "K100", "1002", "Houten lat", "", "3", "V2", "1"},
		{"A2", "Pietersen", "K200", "1003", "Tegel", "", "2", "V1", "2"},
	})

	repo := testhelpers.NewOrderRepositoryStub()
	uc := NewImporterUseCase(repo, discardLogger())

	summary, err := uc.Import(context.Background(), data, "plan.xlsx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Inserted != 3 {
		t.Fatalf("expected 3 inserted, got %d", summary.Inserted)
	}
	if len(summary.Vehicles) != 2 || summary.Vehicles[0] != "V1" || summary.Vehicles[1] != "V2" {
		t.Fatalf("unexpected vehicles: %v", summary.Vehicles)
	}
	if len(repo.Orders) != 3 {
		t.Fatalf("expected 3 stored orders, got %d", len(repo.Orders))
	}
}

func TestImportRefusesVehicleWithProgress(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub(model.Order{LineNumber: "1001", Vehicle: "V1", TargetQuantity: "5", ScannedCount: 1})
	uc := NewImporterUseCase(repo, discardLogger())

	data := buildWorkbook(t, [][]string{
		{"A1", "Jansen", "K100", "1001", "Betonplaat", "200", "5", "V1", "1"},
	})
	if _, err := uc.Import(context.Background(), data, "plan.xlsx"); !errors.Is(err, domainErrors.ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
}

func TestImportEmptyWorkbook(t *testing.T) {
	uc := NewImporterUseCase(testhelpers.NewOrderRepositoryStub(), discardLogger())
	data := buildWorkbook(t, nil)
	if _, err := uc.Import(context.Background(), data, "plan.xlsx"); !errors.Is(err, domainErrors.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	uc := NewImporterUseCase(testhelpers.NewOrderRepositoryStub(), discardLogger())
	if _, err := uc.Import(context.Background(), []byte("not a workbook"), "plan.xlsx"); err == nil {
		t.Fatal("expected parse error")
	}
}
