package duckdbsql

import (
	"database/sql"
	"strings"

	"github.com/pingcap/errors"
	"github.com/syncpointhq/src2dw/pkg/utils"
	"gitlab.com/tymonx/go-formatter/formatter"
)

// BuildIncrementalQuery renders the key-based extraction query: all rows
// whose time column moved past the cursor, oldest first so the cursor can
// advance monotonically while scanning.
func BuildIncrementalQuery(table string, columns []string, timeColumn, cursor string) (string, error) {
	quoted := make([]string, 0, len(columns))
	for _, col := range columns {
		quoted = append(quoted, utils.EscapeIdentifier(col))
	}
	query, err := formatter.Format(
		`SELECT {columns} FROM {table} WHERE {timeColumn} > '{cursor}' ORDER BY {timeColumn}`,
		formatter.Named{
			"columns":    strings.Join(quoted, ", "),
			"table":      utils.EscapeIdentifier(table),
			"timeColumn": utils.EscapeIdentifier(timeColumn),
			"cursor":     utils.EscapeString(cursor),
		})
	if err != nil {
		return "", errors.Trace(err)
	}
	return query, nil
}

// QueryRows runs a query and scans every row into a column→value map.
func QueryRows(db *sql.DB, query string) ([]map[string]interface{}, error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, errors.Annotatef(err, "Failed to run query %s", query)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Trace(err)
	}

	var result []map[string]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Trace(err)
		}
		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		result = append(result, row)
	}
	return result, errors.Trace(rows.Err())
}
