package models

// Sheet is a worksheet as raw rows of cell values.
type Sheet struct {
	// Name is the worksheet name.
	Name string `json:"name"`
	// Rows holds the cells row by row; blank cells are Empty.
	Rows [][]Value `json:"rows"`
}

// Workbook is the pair of sheets the gradebook reads and writes.
type Workbook struct {
	// BookName is the workbook file name (no path), if known.
	BookName string `json:"book_name,omitempty"`
	// Data is the first sheet: headers and student records.
	Data Sheet `json:"data"`
	// Config is the last sheet, nil when the workbook has a single sheet.
	Config *Sheet `json:"config,omitempty"`
	// Formulas maps a column address to the native formula found in the
	// first student row of the data sheet.
	Formulas map[string]string `json:"formulas,omitempty"`
}

// Layout of the exported data sheet header block (1-based worksheet rows).
const (
	// LabelRow holds the column labels.
	LabelRow = 1
	// DateRow holds the column dates.
	DateRow = 2
	// PointsRow holds the column point maxima.
	PointsRow = 3
	// HeaderBlockRows is the number of header rows before student data.
	HeaderBlockRows = 3
)
