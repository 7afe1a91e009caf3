package replicate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/syncpointhq/src2dw/replicate"
	"github.com/syncpointhq/src2dw/schema"
)

func userTable() *schema.Table {
	return &schema.Table{
		Table:      "user",
		PrimaryKey: []string{"id", "updated_at"},
		Columns: map[string]schema.DataType{
			"id":         schema.TypeInt,
			"first_name": schema.TypeString,
			"updated_at": schema.TypeUTCDatetime,
		},
	}
}

func TestDebugSinkUpsertOverwritesByPrimaryKey(t *testing.T) {
	sink := replicate.NewDebugSink()
	tbl := &schema.Table{Table: "hello_world", PrimaryKey: []string{"id"}}

	require.NoError(t, sink.Upsert(tbl, schema.Row{"id": 10, "message": "Hello world"}))
	require.NoError(t, sink.Upsert(tbl, schema.Row{"id": 10, "message": "Hello again"}))
	require.NoError(t, sink.Upsert(tbl, schema.Row{"id": 30, "message": "Good bye"}))

	rows := sink.Rows("hello_world")
	require.Len(t, rows, 2)
	require.Equal(t, "Hello again", rows[0]["message"])
}

func TestDebugSinkCompositeKeyAppends(t *testing.T) {
	sink := replicate.NewDebugSink()
	tbl := userTable()

	// same id, different updated_at: history mode keeps both versions
	require.NoError(t, sink.Upsert(tbl, schema.Row{"id": 123, "first_name": "John", "updated_at": "2007-12-03T10:15:30Z"}))
	require.NoError(t, sink.Upsert(tbl, schema.Row{"id": 123, "first_name": "John", "updated_at": "2008-01-04T23:44:21Z"}))

	require.Len(t, sink.Rows("user"), 2)
}

func TestDebugSinkDelete(t *testing.T) {
	sink := replicate.NewDebugSink()
	tbl := &schema.Table{Table: "hello_world", PrimaryKey: []string{"id"}}

	require.NoError(t, sink.Upsert(tbl, schema.Row{"id": 10, "message": "Hello world"}))
	require.NoError(t, sink.Delete(tbl, schema.Row{"id": 10}))
	require.Empty(t, sink.Rows("hello_world"))

	// deleting a missing row is a no-op
	require.NoError(t, sink.Delete(tbl, schema.Row{"id": 999}))
}

func TestDebugSinkRender(t *testing.T) {
	sink := replicate.NewDebugSink()
	tbl := userTable()
	require.NoError(t, sink.Upsert(tbl, schema.Row{
		"id": 123, "first_name": "John", "updated_at": "2007-12-03T10:15:30Z",
		// undeclared column still rendered
		"designation": "Manager",
	}))

	var sb strings.Builder
	sink.Render(&sb)
	out := sb.String()
	require.Contains(t, out, "Resulting table: user")
	require.Contains(t, out, "John")
	require.Contains(t, out, "Manager")
	require.Contains(t, out, "2007-12-03T10:15:30Z")
}
