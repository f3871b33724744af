// ABOUTME: Entity extraction from a selected table column
// ABOUTME: Returns distinct, non-empty, trimmed values in first-seen order

package entities

import (
	"strings"

	"enrichment-app-api/core/domain"
	apperrors "enrichment-app-api/core/errors"
)

// Extract returns the distinct entities of column in first-seen order.
// Fails with ColumnNotFoundError when the column is not in the header.
func Extract(table *domain.Table, column string) ([]domain.Entity, error) {
	if table == nil {
		return nil, &apperrors.ValidationError{Field: "file", Message: "no table to read"}
	}

	col := resolveColumn(table, column)
	if col < 0 {
		return nil, &apperrors.ColumnNotFoundError{
			Column:    column,
			Available: append([]string(nil), table.Columns...),
		}
	}

	seen := make(map[string]struct{})
	entities := make([]domain.Entity, 0)

	for i := range table.Rows {
		value, ok := table.Cell(i, col)
		if !ok {
			continue
		}

		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, dup := seen[value]; dup {
			continue
		}

		seen[value] = struct{}{}
		entities = append(entities, domain.Entity{Value: value, Row: i + 1})
	}

	return entities, nil
}

// resolveColumn matches the trimmed name exactly, then falls back
// to a case-insensitive match when exactly one column qualifies
func resolveColumn(table *domain.Table, column string) int {
	name := strings.TrimSpace(column)
	if name == "" {
		return -1
	}
	if idx := table.ColumnIndex(name); idx >= 0 {
		return idx
	}

	match := -1
	for i, c := range table.Columns {
		if strings.EqualFold(c, name) {
			if match >= 0 {
				return -1
			}
			match = i
		}
	}
	return match
}
