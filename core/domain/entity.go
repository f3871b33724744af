// ABOUTME: Entity and table domain models for the enrichment pipeline
// ABOUTME: Defines the parsed upload table and the ordered, capped entity list drawn from it

package domain

// Table is a parsed tabular upload.
// Rows may be ragged; a missing cell is treated as null.
type Table struct {
	// Columns holds the header names in source order
	Columns []string

	// Rows holds the data rows, header excluded
	Rows [][]string
}

// ColumnIndex returns the position of the named column or -1
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at row/col and whether the cell exists
func (t *Table) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(t.Rows) {
		return "", false
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return "", false
	}
	return r[col], true
}

// Entity is a single distinct value from the selected column.
// Identity is the trimmed value.
type Entity struct {
	// Value is the trimmed cell value
	Value string

	// Row is the 1-based data row where the value was first seen
	Row int
}

// CapEntities returns the first max entities.
// Indices 0..max-1 are kept; a non-positive max keeps nothing.
func CapEntities(entities []Entity, max int) []Entity {
	if max <= 0 {
		return []Entity{}
	}
	if len(entities) <= max {
		return entities
	}
	return entities[:max]
}
