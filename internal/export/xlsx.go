package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mlindemann/menucard-importer/internal/menu"
)

// RenderXLSX returns an XLSX workbook (as bytes) with one row per item.
// Unlike the POS CSV this is a plain tabular export for humans.
func RenderXLSX(items []menu.ItemRecord, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Menu"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Name",
		"Quantity",
		"Price (cents)",
		"Warengruppe",
		"Hauptgruppe",
		"Steuersatz",
		"Ordergruppe",
		"Ausser Haus",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, item := range items {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, item.Name)
		write(2, item.Quantity)
		write(3, item.Price)
		write(4, item.Warengruppe)
		write(5, item.Hauptgruppe)
		write(6, item.Steuersatz)
		write(7, item.Ordergruppe)
		write(8, item.AusserHaus)
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 24)
	_ = f.SetColWidth(sheet, "D", "G", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	logger.Info("export.xlsx.ok",
		"rows", len(items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
