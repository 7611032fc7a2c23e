package gradebook

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is not a readable xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrEmptyGroups indicates a schema with column groups that hold no columns.
var ErrEmptyGroups = errors.New("column groups without columns")

// ErrInvalidSchema indicates a schema that fails export validation.
var ErrInvalidSchema = errors.New("invalid schema")

// EmptyGroupsError lists the groups that block an export.
type EmptyGroupsError struct {
	Groups []string
}

func (e *EmptyGroupsError) Error() string {
	quoted := make([]string, len(e.Groups))
	for i, g := range e.Groups {
		quoted[i] = fmt.Sprintf("%q", g)
	}
	return fmt.Sprintf("%v: %s", ErrEmptyGroups, strings.Join(quoted, ", "))
}

func (e *EmptyGroupsError) Unwrap() error {
	return ErrEmptyGroups
}

// WorkbookError represents a failure while loading or exporting a workbook.
type WorkbookError struct {
	BookName string
	Op       string // "load", "export"
	Err      error
}

func (e *WorkbookError) Error() string {
	if e.BookName == "" {
		return fmt.Sprintf("%s workbook: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s workbook %q: %v", e.Op, e.BookName, e.Err)
}

func (e *WorkbookError) Unwrap() error {
	return e.Err
}

// NewWorkbookError creates a new WorkbookError.
func NewWorkbookError(bookName, op string, err error) *WorkbookError {
	return &WorkbookError{
		BookName: bookName,
		Op:       op,
		Err:      err,
	}
}
