package gradebook

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SoraGefroren/Concentrador-de-Calificaciones-para-Docentes-sub000/pkg/gradebook/models"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateSchema runs the export-time checks on a schema. Groups without
// columns are reported together as an *EmptyGroupsError; other problems
// wrap ErrInvalidSchema.
func ValidateSchema(schema models.Schema) error {
	if empty := schema.EmptyGroups(); len(empty) > 0 {
		return &EmptyGroupsError{Groups: empty}
	}
	if len(schema) == 0 {
		return fmt.Errorf("%w: no column groups", ErrInvalidSchema)
	}

	for i := range schema {
		if err := validate.Struct(schema[i]); err != nil {
			return fmt.Errorf("%w: group %q: %s", ErrInvalidSchema, schema[i].Label, describe(err))
		}
	}

	seen := make(map[string]bool)
	for _, col := range schema.Columns() {
		if seen[col.Label] {
			return fmt.Errorf("%w: duplicate column label %q", ErrInvalidSchema, col.Label)
		}
		seen[col.Label] = true
	}

	return nil
}

// describe flattens validator errors into one line.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s fails %q", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
