package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/SoraGefroren/Concentrador-de-Calificaciones-para-Docentes-sub000/pkg/gradebook/models"
	"github.com/xuri/excelize/v2"
)

// ReadWorkbookFile decodes the workbook stored at path.
func ReadWorkbookFile(path string) (*models.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wb, err := readWorkbook(f)
	if err != nil {
		return nil, err
	}
	wb.BookName = filepath.Base(path)
	return wb, nil
}

// ReadWorkbook decodes workbook bytes into the data sheet and, when the
// workbook has more than one sheet, the configuration sheet (the last one).
func ReadWorkbook(r io.Reader) (*models.Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readWorkbook(f)
}

func readWorkbook(f *excelize.File) (*models.Workbook, error) {
	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	dataName := sheetList[0]
	dataRows, err := ExtractCells(f, dataName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", dataName, err)
	}
	wb := &models.Workbook{
		Data: models.Sheet{Name: dataName, Rows: dataRows},
	}

	firstDataRow := 2
	if len(sheetList) > 1 {
		configName := sheetList[len(sheetList)-1]
		configRows, err := ExtractCells(f, configName)
		if err != nil {
			// Unreadable configuration degrades to an empty schema.
			configRows = nil
		}
		wb.Config = &models.Sheet{Name: configName, Rows: configRows}
		firstDataRow = models.HeaderBlockRows + 1
	}

	if len(dataRows) > 0 {
		wb.Formulas = extractFormulas(f, dataName, len(dataRows[0]), firstDataRow)
	}

	return wb, nil
}

// ExtractCells reads every row of a sheet as cell values.
// Rows keep their sheet position; blank cells are models.Empty.
// String cells stay text even when they look numeric. Numeric cells
// become numbers unless their display format is not a number (a date,
// for instance), in which case the displayed text is kept.
func ExtractCells(f *excelize.File, sheetName string) ([][]models.Value, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	rawRows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	result := make([][]models.Value, len(rows))
	for rowIdx, row := range rows {
		values := make([]models.Value, len(row))
		for colIdx, cellValue := range row {
			raw := cellValue
			if rowIdx < len(rawRows) && colIdx < len(rawRows[rowIdx]) {
				raw = rawRows[rowIdx][colIdx]
			}
			values[colIdx] = cellToValue(f, sheetName, colIdx+1, rowIdx+1, cellValue, raw)
		}
		result[rowIdx] = values
	}

	return result, nil
}

// cellToValue converts one cell using its stored type.
func cellToValue(f *excelize.File, sheetName string, col, row int, formatted, raw string) models.Value {
	if strings.TrimSpace(formatted) == "" && strings.TrimSpace(raw) == "" {
		return models.Empty()
	}

	cellName, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return models.Text(formatted)
	}
	cellType, err := f.GetCellType(sheetName, cellName)
	if err != nil {
		return models.Text(formatted)
	}

	switch cellType {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if !models.ParseValue(formatted).IsNumber() {
			return models.Text(formatted)
		}
		if v := models.ParseValue(raw); v.IsNumber() {
			return v
		}
		return models.ParseValue(formatted)
	}
	return models.Text(formatted)
}

// extractFormulas collects the native formulas of one sheet row, keyed
// by column address.
func extractFormulas(f *excelize.File, sheetName string, width, rowNum int) map[string]string {
	formulas := make(map[string]string)
	for col := 1; col <= width; col++ {
		cellName, err := excelize.CoordinatesToCellName(col, rowNum)
		if err != nil {
			continue
		}
		formula, err := f.GetCellFormula(sheetName, cellName)
		if err == nil && formula != "" {
			formulas[ColumnAddress(col)] = formula
		}
	}
	if len(formulas) == 0 {
		return nil
	}
	return formulas
}
