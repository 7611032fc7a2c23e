package parser

import (
	"fmt"

	"github.com/SoraGefroren/Concentrador-de-Calificaciones-para-Docentes-sub000/pkg/gradebook/models"
)

// IngestRoster turns sheet rows into roster rows. The first row holds the
// headers; every following row becomes one student keyed by the header
// in the same position.
func IngestRoster(rows [][]models.Value) models.Roster {
	return IngestRosterBlock(rows, 1)
}

// IngestRosterBlock is IngestRoster for sheets whose header block spans
// headerRows rows. Only the first header row names the columns; the
// remaining header rows (dates, points) are skipped. Headers missing a
// label are named "Column <n>" (1-based). Trailing blank rows are dropped.
func IngestRosterBlock(rows [][]models.Value, headerRows int) models.Roster {
	if headerRows < 1 {
		headerRows = 1
	}

	var headers []string
	if len(rows) > 0 {
		headers = make([]string, len(rows[0]))
		for i, v := range rows[0] {
			headers[i] = v.String()
		}
	}
	if len(rows) <= headerRows {
		return models.Roster{}
	}

	data := trimTrailingBlank(rows[headerRows:])
	roster := make(models.Roster, 0, len(data))
	for _, row := range data {
		record := make(models.RosterRow, len(row))
		for colIdx, value := range row {
			record[headerName(headers, colIdx)] = value
		}
		roster = append(roster, record)
	}

	return roster
}

// headerName returns the header label of a column, or a synthesized one.
func headerName(headers []string, colIdx int) string {
	if colIdx < len(headers) && headers[colIdx] != "" {
		return headers[colIdx]
	}
	return fmt.Sprintf("Column %d", colIdx+1)
}

// trimTrailingBlank drops the fully blank rows at the end of rows.
func trimTrailingBlank(rows [][]models.Value) [][]models.Value {
	end := len(rows)
	for end > 0 && isBlankRow(rows[end-1]) {
		end--
	}
	return rows[:end]
}

func isBlankRow(row []models.Value) bool {
	for _, v := range row {
		if !v.IsEmpty() {
			return false
		}
	}
	return true
}
