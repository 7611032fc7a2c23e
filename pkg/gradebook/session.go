package gradebook

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/SoraGefroren/Concentrador-de-Calificaciones-para-Docentes-sub000/pkg/gradebook/formula"
	"github.com/SoraGefroren/Concentrador-de-Calificaciones-para-Docentes-sub000/pkg/gradebook/models"
	"github.com/SoraGefroren/Concentrador-de-Calificaciones-para-Docentes-sub000/pkg/gradebook/output"
	"github.com/SoraGefroren/Concentrador-de-Calificaciones-para-Docentes-sub000/pkg/gradebook/parser"
	"github.com/google/uuid"
)

// Session holds the schema and roster of one imported workbook.
// All lookups go through Schema; nothing else keeps a copy of it.
// A Session is owned by a single caller and is not safe for concurrent use.
type Session struct {
	// ID identifies the current load; it changes on every Load and Reset.
	ID uuid.UUID
	// BookName is the loaded workbook file name, if known.
	BookName string
	// Schema is the normalized column schema.
	Schema models.Schema
	// Roster holds one row per student.
	Roster models.Roster

	opts Options
	log  *slog.Logger
	eval *formula.Evaluator
}

// NewSession creates an empty session.
func NewSession(opts Options) *Session {
	log := opts.logger()
	return &Session{
		ID:   uuid.New(),
		opts: opts,
		log:  log,
		eval: formula.NewEvaluator(log),
	}
}

// Reset empties the session.
func (s *Session) Reset() {
	s.ID = uuid.New()
	s.BookName = ""
	s.Schema = nil
	s.Roster = nil
}

// LoadFile loads the workbook stored at path.
func (s *Session) LoadFile(path string) error {
	bookName := filepath.Base(path)
	if _, err := os.Stat(path); err != nil {
		s.Reset()
		if os.IsNotExist(err) {
			return NewWorkbookError(bookName, "load", fmt.Errorf("%w: %s", ErrFileNotFound, path))
		}
		return NewWorkbookError(bookName, "load", err)
	}

	wb, err := parser.ReadWorkbookFile(path)
	if err != nil {
		s.Reset()
		return NewWorkbookError(bookName, "load", fmt.Errorf("%w: %w", ErrInvalidFormat, err))
	}
	s.LoadWorkbook(wb)
	return nil
}

// Load decodes workbook bytes and replaces the session state. On a
// decode failure the session is left empty and the error wraps
// ErrInvalidFormat.
func (s *Session) Load(r io.Reader) error {
	wb, err := parser.ReadWorkbook(r)
	if err != nil {
		s.Reset()
		return NewWorkbookError("", "load", fmt.Errorf("%w: %w", ErrInvalidFormat, err))
	}
	s.LoadWorkbook(wb)
	return nil
}

// LoadWorkbook replaces the session state with an already decoded workbook.
func (s *Session) LoadWorkbook(wb *models.Workbook) {
	s.Reset()
	s.BookName = wb.BookName

	var schema models.Schema
	if wb.Config != nil {
		schema = parser.ParseColumnSchema(wb.Config.Rows)
		if len(schema) == 0 && len(wb.Config.Rows) > 0 {
			s.log.Warn("configuration sheet has no recognizable column groups", "sheet", wb.Config.Name)
		}
		s.checkGroupRanges(schema)
	}
	schema = parser.NormalizeAddresses(schema)
	schema = recoverFormulas(schema, wb.Formulas)

	headerRows := 1
	if hasHeaderBlock(wb.Data.Rows, schema) {
		headerRows = models.HeaderBlockRows
	}

	s.Schema = schema
	s.Roster = parser.IngestRosterBlock(wb.Data.Rows, headerRows)
	if s.opts.RecalculateOnLoad {
		s.Recalculate()
	}

	s.log.Info("workbook loaded",
		"session", s.ID.String(),
		"book", s.BookName,
		"groups", len(s.Schema),
		"columns", len(s.Schema.Columns()),
		"students", len(s.Roster),
	)
}

// SetSchema replaces the schema, renumbering its addresses.
func (s *Session) SetSchema(schema models.Schema) {
	s.Schema = parser.NormalizeAddresses(schema)
}

// Recalculate refreshes every computed column of the roster.
func (s *Session) Recalculate() {
	s.Roster = s.eval.Recalculate(s.Roster, s.Schema)
}

// Student returns a copy of the row of the student at index (0-based).
func (s *Session) Student(index int) (models.RosterRow, bool) {
	if index < 0 || index >= len(s.Roster) {
		return nil, false
	}
	return s.Roster[index].Clone(), true
}

// Evaluate evaluates a bracket formula for the student at index.
func (s *Session) Evaluate(expr string, index int) (float64, bool) {
	row, ok := s.Student(index)
	if !ok {
		return 0, false
	}
	return s.eval.Evaluate(expr, row, s.Schema)
}

// EvaluateColumn evaluates the formula of one column for the student at index.
func (s *Session) EvaluateColumn(label string, index int) (float64, bool) {
	row, ok := s.Student(index)
	if !ok {
		return 0, false
	}
	return s.eval.EvaluateColumn(label, row, s.Schema)
}

// ToNative translates a bracket formula for the student at index
// (0-based) into a native formula on that student's exported row.
func (s *Session) ToNative(expr string, index int) string {
	return formula.ToNative(expr, models.HeaderBlockRows+1+index, s.Schema)
}

// FromNative translates a native formula back into bracket notation.
func (s *Session) FromNative(native string) string {
	return formula.FromNative(native, s.Schema)
}

// Validate runs the export-time schema checks.
func (s *Session) Validate() error {
	return ValidateSchema(s.Schema)
}

// Export validates the session and writes it as a workbook.
func (s *Session) Export(w io.Writer) error {
	if err := s.Validate(); err != nil {
		return NewWorkbookError(s.BookName, "export", err)
	}

	data, err := output.WriteWorkbook(s.Schema, s.Roster, s.opts.Export)
	if err != nil {
		return NewWorkbookError(s.BookName, "export", err)
	}
	if _, err := w.Write(data); err != nil {
		return NewWorkbookError(s.BookName, "export", err)
	}

	s.log.Info("workbook exported", "session", s.ID.String(), "bytes", len(data))
	return nil
}

// ExportFile writes the session as a workbook at path.
func (s *Session) ExportFile(path string) error {
	var buf bytes.Buffer
	if err := s.Export(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return NewWorkbookError(s.BookName, "export", err)
	}
	return nil
}

// checkGroupRanges reports groups whose stored id does not span their
// columns. Such ids are rewritten by NormalizeAddresses.
func (s *Session) checkGroupRanges(schema models.Schema) {
	pos := 0
	for _, group := range schema {
		n := len(group.Columns)
		first, last, ok := parser.ParseRange(group.ID)
		switch {
		case n == 0:
		case !ok:
			s.log.Warn("column group has an unreadable id", "group", group.Label, "id", group.ID)
		case first != pos+1 || last != pos+n:
			s.log.Warn("column group id does not match its columns",
				"group", group.Label, "id", group.ID,
				"expected", parser.ColumnAddress(pos+1)+":"+parser.ColumnAddress(pos+n))
		}
		pos += n
	}
}

// recoverFormulas fills in the bracket formula of columns whose
// configuration carries none but whose data cells hold a native formula.
func recoverFormulas(schema models.Schema, natives map[string]string) models.Schema {
	if len(natives) == 0 {
		return schema
	}
	for gi := range schema {
		for ci := range schema[gi].Columns {
			col := &schema[gi].Columns[ci]
			if col.Formula != "" {
				continue
			}
			if native, ok := natives[col.ID]; ok {
				col.Formula = formula.FromNative(native, schema)
			}
		}
	}
	return schema
}

// hasHeaderBlock reports whether the data sheet starts with the label,
// date and points rows of an exported workbook for schema.
func hasHeaderBlock(rows [][]models.Value, schema models.Schema) bool {
	cols := schema.Columns()
	if len(cols) == 0 || len(rows) < models.HeaderBlockRows {
		return false
	}
	cell := func(r, c int) models.Value {
		if c < len(rows[r]) {
			return rows[r][c]
		}
		return models.Empty()
	}

	for i, col := range cols {
		if cell(0, i).String() != col.Label {
			return false
		}
		if cell(1, i).String() != col.Date {
			return false
		}
		points := cell(2, i)
		if col.Points == nil {
			if !points.IsEmpty() {
				return false
			}
			continue
		}
		if f, ok := points.Float(); !ok || int(f) != *col.Points {
			return false
		}
	}
	return true
}
