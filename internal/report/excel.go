package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"ostrack/internal/domain"
)

// XLSXFilename is the download name suggested by the spreadsheet export.
const XLSXFilename = "relatorio_ordens_servico.xlsx"

var excelHeader = []string{
	"N° CHAMADO", "N° OS", "PAT", "CLIENTE", "UNIDADE", "DATA", "SITUAÇÃO",
}

var excelColumnWidths = []float64{15, 10, 12, 30, 20, 12, 15}

// WriteXLSX builds the summary spreadsheet: one row per order with the
// dashboard columns, green header band and bordered cells.
func WriteXLSX(orders []domain.ServiceOrder) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Relatório O.S."
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#92D050"}, Pattern: 1},
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("cell style: %w", err)
	}

	for i, h := range excelHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, excelColumnWidths[i]); err != nil {
			return nil, err
		}
	}

	for rowIdx, o := range orders {
		p, err := Project(o)
		if err != nil {
			return nil, err
		}
		values := []string{p.TicketNumber, p.OSNumber, p.PAT, p.ClientName, p.Unit, p.OpeningDate, p.Status}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
			if err := f.SetCellStyle(sheet, cell, cell, cellStyle); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
