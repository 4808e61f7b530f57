package store

import (
	"fmt"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Tables resolve through the connection's search_path.
const (
	equipmentTypeTableName  = "equipment_types"
	equipmentItemTableName  = "equipment_items"
	firefighterTableName    = "firefighters"
	equipmentCheckTableName = "equipment_checks"
)

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// buildUpdateClause creates the SET clause for ON CONFLICT DO UPDATE
// e.g., "name = EXCLUDED.name, slug = EXCLUDED.slug, ..."
func buildUpdateClause(fields map[string]any, exclude ...string) string {
	columns := make([]string, 0, len(fields))

fieldloop:
	for field := range fields {
		for _, ex := range exclude {
			if field == ex {
				continue fieldloop
			}
		}
		columns = append(columns, field)
	}
	sort.Strings(columns)

	parts := make([]string, 0, len(columns))
	for _, c := range columns {
		parts = append(parts, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}

	return strings.Join(parts, ", ")
}

// containsFold builds a case-insensitive substring match over columns.
func containsFold(term string, columns ...string) sq.Or {
	pattern := "%" + escapeLike(strings.TrimSpace(term)) + "%"

	or := make(sq.Or, 0, len(columns))
	for _, c := range columns {
		or = append(or, sq.ILike{c: pattern})
	}
	return or
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
