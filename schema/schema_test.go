package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/syncpointhq/src2dw/schema"
)

func TestTableValidate(t *testing.T) {
	tbl := schema.Table{
		Table:      "customers",
		PrimaryKey: []string{"customer_id"},
		Columns: map[string]schema.DataType{
			"customer_id": schema.TypeInt,
			"first_name":  schema.TypeString,
			"updated_at":  schema.TypeUTCDatetime,
		},
	}
	require.NoError(t, tbl.Validate())
}

func TestTableValidateRejectsEmptyName(t *testing.T) {
	tbl := schema.Table{PrimaryKey: []string{"id"}}
	require.Error(t, tbl.Validate())
}

func TestTableValidateRejectsUnknownType(t *testing.T) {
	tbl := schema.Table{
		Table:   "event",
		Columns: map[string]schema.DataType{"name": "VARCHAR"},
	}
	err := tbl.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown type")
}

func TestTableValidateRejectsEmptyKeyColumn(t *testing.T) {
	tbl := schema.Table{Table: "event", PrimaryKey: []string{"id", ""}}
	require.Error(t, tbl.Validate())
}

func TestValidateRowRequiresPrimaryKey(t *testing.T) {
	tbl := schema.Table{
		Table:      "user",
		PrimaryKey: []string{"id", "updated_at"},
	}
	require.NoError(t, tbl.ValidateRow(schema.Row{
		"id":         123,
		"updated_at": "2007-12-03T10:15:30Z",
		// not declared in the schema, still allowed
		"designation": "Manager",
	}))

	err := tbl.ValidateRow(schema.Row{"id": 123})
	require.Error(t, err)
	require.Contains(t, err.Error(), "updated_at")
}

func TestValidateAllRejectsDuplicateTables(t *testing.T) {
	tables := []schema.Table{
		{Table: "accounts", PrimaryKey: []string{"account_id"}},
		{Table: "accounts", PrimaryKey: []string{"account_id"}},
	}
	err := schema.ValidateAll(tables)
	require.Error(t, err)
	require.Contains(t, err.Error(), "declared twice")
}
