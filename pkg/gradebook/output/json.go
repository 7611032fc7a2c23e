package output

import (
	"encoding/json"

	"github.com/SoraGefroren/Concentrador-de-Calificaciones-para-Docentes-sub000/pkg/gradebook/models"
)

// SchemaView is the JSON document describing a schema.
type SchemaView struct {
	// BookName is the workbook the schema was read from.
	BookName string `json:"book_name,omitempty"`
	// Groups are the column groups in worksheet order.
	Groups models.Schema `json:"groups"`
	// Sections holds the positional section of each group.
	Sections []models.Section `json:"sections"`
}

// NewSchemaView builds the JSON view of a schema.
func NewSchemaView(bookName string, schema models.Schema) SchemaView {
	if schema == nil {
		schema = models.Schema{}
	}
	return SchemaView{
		BookName: bookName,
		Groups:   schema,
		Sections: schema.Sections(),
	}
}

// GroupView is the JSON document describing one column group.
type GroupView struct {
	BookName string             `json:"book_name,omitempty"`
	Section  models.Section     `json:"section"`
	Group    models.ColumnGroup `json:"group"`
}

// NewGroupViews builds one view per group, in schema order.
func NewGroupViews(bookName string, schema models.Schema) []GroupView {
	sections := schema.Sections()
	views := make([]GroupView, len(schema))
	for i, g := range schema {
		views[i] = GroupView{BookName: bookName, Section: sections[i], Group: g}
	}
	return views
}

// ToJSON serializes v, indented when pretty is set.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
