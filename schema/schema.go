package schema

import (
	"github.com/pingcap/errors"
)

// DataType is the semantic type tag of a destination column.
type DataType string

const (
	TypeBoolean       DataType = "BOOLEAN"
	TypeShort         DataType = "SHORT"
	TypeInt           DataType = "INT"
	TypeLong          DataType = "LONG"
	TypeFloat         DataType = "FLOAT"
	TypeDouble        DataType = "DOUBLE"
	TypeString        DataType = "STRING"
	TypeUTCDatetime   DataType = "UTC_DATETIME"
	TypeNaiveDate     DataType = "NAIVE_DATE"
	TypeNaiveDatetime DataType = "NAIVE_DATETIME"
	TypeJSON          DataType = "JSON"
)

var knownTypes = map[DataType]struct{}{
	TypeBoolean:       {},
	TypeShort:         {},
	TypeInt:           {},
	TypeLong:          {},
	TypeFloat:         {},
	TypeDouble:        {},
	TypeString:        {},
	TypeUTCDatetime:   {},
	TypeNaiveDate:     {},
	TypeNaiveDatetime: {},
	TypeJSON:          {},
}

// Row is one flat record destined for a table, column name to scalar value.
type Row map[string]interface{}

// Table declares one destination table: its name, the ordered primary key
// columns, and optionally the column types. Columns left undeclared are
// inferred by the destination, so a Row may carry columns that do not
// appear here.
type Table struct {
	Table      string              `json:"table"`
	PrimaryKey []string            `json:"primary_key,omitempty"`
	Columns    map[string]DataType `json:"columns,omitempty"`
}

// Validate checks that the table declaration is self-consistent.
func (t *Table) Validate() error {
	if t.Table == "" {
		return errors.New("table name must not be empty")
	}
	for _, col := range t.PrimaryKey {
		if col == "" {
			return errors.Errorf("table %s: primary key contains an empty column name", t.Table)
		}
	}
	for col, tp := range t.Columns {
		if col == "" {
			return errors.Errorf("table %s: column with empty name", t.Table)
		}
		if _, ok := knownTypes[tp]; !ok {
			return errors.Errorf("table %s: column %s has unknown type %q", t.Table, col, tp)
		}
	}
	return nil
}

// ValidateRow checks that the row carries every primary key column of the
// table. Non-key columns are not required: the destination reconciles
// missing and extra columns on its own.
func (t *Table) ValidateRow(row Row) error {
	for _, col := range t.PrimaryKey {
		if _, ok := row[col]; !ok {
			return errors.Errorf("table %s: row is missing primary key column %s", t.Table, col)
		}
	}
	return nil
}

// ValidateAll validates a full schema declaration and rejects duplicate
// table names.
func ValidateAll(tables []Table) error {
	seen := make(map[string]struct{}, len(tables))
	for i := range tables {
		if err := tables[i].Validate(); err != nil {
			return errors.Trace(err)
		}
		if _, ok := seen[tables[i].Table]; ok {
			return errors.Errorf("table %s declared twice", tables[i].Table)
		}
		seen[tables[i].Table] = struct{}{}
	}
	return nil
}
