package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"steelestim/internal/service/estimate"
	"steelestim/internal/storage"
)

type ReportStorage interface {
	GetWorksheet(ctx context.Context, worksheetID int64) (*storage.PackageWorksheet, error)
	GetProcessingItems(ctx context.Context, worksheetID int64) ([]storage.ProcessingItem, error)
	GetWeldingItems(ctx context.Context, worksheetID int64) ([]storage.WeldingItem, error)
	GetConnectionDefaults(ctx context.Context) (map[int64]storage.WeldingConnection, error)
	GetPackage(ctx context.Context, packageID int64) (*storage.Package, error)
}

// ReportService renders a worksheet estimation summary as an xlsx workbook:
// one section per item path, a totals row at the bottom.
type ReportService struct {
	storage ReportStorage
}

func NewReportService(storage ReportStorage) *ReportService {
	return &ReportService{storage: storage}
}

func (g *ReportService) GenerateWorksheetReport(ctx context.Context, worksheetID int64) ([]byte, error) {
	const op = "service.report.GenerateWorksheetReport"

	ws, err := g.storage.GetWorksheet(ctx, worksheetID)
	if err != nil {
		return nil, fmt.Errorf("%s: worksheet: %w", op, err)
	}

	var (
		items       []storage.ProcessingItem
		weldItems   []storage.WeldingItem
		connections map[int64]storage.WeldingConnection
		pkg         *storage.Package
	)

	grp, gCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		var err error
		items, err = g.storage.GetProcessingItems(gCtx, worksheetID)
		return err
	})
	grp.Go(func() error {
		var err error
		weldItems, err = g.storage.GetWeldingItems(gCtx, worksheetID)
		return err
	})
	grp.Go(func() error {
		var err error
		connections, err = g.storage.GetConnectionDefaults(gCtx)
		return err
	})
	grp.Go(func() error {
		var err error
		pkg, err = g.storage.GetPackage(gCtx, ws.PackageID)
		return err
	})
	if err := grp.Wait(); err != nil {
		return nil, fmt.Errorf("%s: fetch data: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Estimation"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	totalStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: []excelize.Border{{Type: "top", Color: "000000", Style: 1}},
	})

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Worksheet: %s (package %s)", ws.Name, pkg.PackageNumber))

	row := 3
	headers := []string{"Drawing", "Description", "Qty", "Weight", "Bundles", "Minutes", "Hours"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	row++

	var totalMinutes float64

	for _, item := range items {
		minutes := estimate.ProcessingItemMinutes(item)
		totalMinutes += minutes

		writeRow(f, sheet, row,
			item.DrawingNumber, item.Description, item.Quantity, item.TotalWeight(),
			estimate.DeliveryBundles(item), minutes, minutes/60)
		row++
	}

	for _, item := range weldItems {
		minutes := estimate.WeldingItemMinutes(item, connections)
		totalMinutes += minutes

		writeRow(f, sheet, row,
			item.DrawingNumber, item.Description, len(item.Connections), item.Weight,
			"", minutes, minutes/60)
		row++
	}

	labelCell, _ := excelize.CoordinatesToCellName(1, row)
	f.SetCellValue(sheet, labelCell, "Total")
	minCell, _ := excelize.CoordinatesToCellName(6, row)
	f.SetCellValue(sheet, minCell, totalMinutes)
	hrsCell, _ := excelize.CoordinatesToCellName(7, row)
	f.SetCellValue(sheet, hrsCell, totalMinutes/60)
	endCell, _ := excelize.CoordinatesToCellName(len(headers), row)
	f.SetCellStyle(sheet, labelCell, endCell, totalStyle)

	f.SetColWidth(sheet, "A", "B", 28)
	f.SetColWidth(sheet, "C", "G", 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: write workbook: %w", op, err)
	}

	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values ...any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, v)
	}
}
