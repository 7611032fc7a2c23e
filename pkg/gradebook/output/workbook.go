package output

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/SoraGefroren/Concentrador-de-Calificaciones-para-Docentes-sub000/pkg/gradebook/formula"
	"github.com/SoraGefroren/Concentrador-de-Calificaciones-para-Docentes-sub000/pkg/gradebook/models"
	"github.com/SoraGefroren/Concentrador-de-Calificaciones-para-Docentes-sub000/pkg/gradebook/parser"
	"github.com/xuri/excelize/v2"
)

// Default sheet names of an exported workbook.
const (
	DefaultDataSheet   = "Calificaciones"
	DefaultConfigSheet = "Configuracion"
)

// Options configures workbook export.
type Options struct {
	// DataSheet names the student data sheet.
	DataSheet string
	// ConfigSheet names the configuration sheet.
	ConfigSheet string
	// HeaderFill is the label row fill for groups without a usable color.
	HeaderFill string
	// NativeFormulas writes computed columns as native formulas.
	NativeFormulas bool
}

// DefaultOptions returns default export options.
func DefaultOptions() Options {
	return Options{
		DataSheet:      DefaultDataSheet,
		ConfigSheet:    DefaultConfigSheet,
		HeaderFill:     "#E2E8F0",
		NativeFormulas: true,
	}
}

var hexColorPattern = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// WriteWorkbook encodes schema and roster as a gradebook workbook: the
// data sheet with its three-row header block, then the configuration
// sheet. The schema is normalized before writing.
func WriteWorkbook(schema models.Schema, roster models.Roster, opts Options) ([]byte, error) {
	if opts.DataSheet == "" {
		opts.DataSheet = DefaultDataSheet
	}
	if opts.ConfigSheet == "" {
		opts.ConfigSheet = DefaultConfigSheet
	}
	schema = parser.NormalizeAddresses(schema)

	f := excelize.NewFile()
	defer f.Close()

	if err := addSheet(f, 0, opts.DataSheet); err != nil {
		return nil, err
	}
	if err := writeRows(f, opts.DataSheet, SerializeRoster(schema, roster)); err != nil {
		return nil, fmt.Errorf("write sheet %q: %w", opts.DataSheet, err)
	}
	if err := styleHeader(f, opts.DataSheet, schema, opts.HeaderFill); err != nil {
		return nil, fmt.Errorf("style sheet %q: %w", opts.DataSheet, err)
	}
	if opts.NativeFormulas {
		if err := writeFormulas(f, opts.DataSheet, schema, len(roster)); err != nil {
			return nil, fmt.Errorf("write formulas %q: %w", opts.DataSheet, err)
		}
	}

	if err := addSheet(f, 1, opts.ConfigSheet); err != nil {
		return nil, err
	}
	if err := writeRows(f, opts.ConfigSheet, SerializeSchema(schema)); err != nil {
		return nil, fmt.Errorf("write sheet %q: %w", opts.ConfigSheet, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// addSheet renames the default sheet for the first index and appends
// new sheets after it.
func addSheet(f *excelize.File, index int, name string) error {
	if index == 0 {
		if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
			return fmt.Errorf("rename sheet %q: %w", name, err)
		}
		return nil
	}
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %q: %w", name, err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]models.Value) error {
	for rowIdx, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for i, v := range row {
			values[i] = v.Interface()
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

// styleHeader bolds the header block and fills each group's label cells
// with the group color.
func styleHeader(f *excelize.File, sheet string, schema models.Schema, fallback string) error {
	width := len(schema.Columns())
	if width == 0 {
		return nil
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last := parser.ColumnAddress(width)
	if err := f.SetCellStyle(sheet, "A1", last+strconv.Itoa(models.HeaderBlockRows), bold); err != nil {
		return err
	}

	fills := make(map[string]int)
	for _, group := range schema {
		if len(group.Columns) == 0 {
			continue
		}
		color := group.Color
		if !hexColorPattern.MatchString(color) {
			color = fallback
		}
		if !hexColorPattern.MatchString(color) {
			continue
		}
		if !strings.HasPrefix(color, "#") {
			color = "#" + color
		}

		style, ok := fills[color]
		if !ok {
			style, err = f.NewStyle(&excelize.Style{
				Font:      &excelize.Font{Bold: true},
				Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
				Alignment: &excelize.Alignment{Horizontal: "center"},
			})
			if err != nil {
				return err
			}
			fills[color] = style
		}

		first := group.Columns[0].ID + strconv.Itoa(models.LabelRow)
		end := group.Columns[len(group.Columns)-1].ID + strconv.Itoa(models.LabelRow)
		if err := f.SetCellStyle(sheet, first, end, style); err != nil {
			return err
		}
	}
	return nil
}

// writeFormulas stores the native formula of every computed column on
// every student row. Cached values written by writeRows are kept.
func writeFormulas(f *excelize.File, sheet string, schema models.Schema, students int) error {
	for _, col := range schema.Columns() {
		if !col.IsComputed() {
			continue
		}
		for i := 0; i < students; i++ {
			rowNum := models.HeaderBlockRows + 1 + i
			native := formula.ToNative(col.Formula, rowNum, schema)
			if err := f.SetCellFormula(sheet, col.ID+strconv.Itoa(rowNum), strings.TrimPrefix(native, "=")); err != nil {
				return err
			}
		}
	}
	return nil
}
