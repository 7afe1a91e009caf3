package replicate

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/syncpointhq/src2dw/schema"
	"golang.org/x/exp/slices"
)

// DebugSink keeps the destination tables in memory so a local run can show
// what a sync would have produced. Rows are keyed by the table's primary
// key, so repeated upserts of the same key overwrite in place just like the
// real destination.
type DebugSink struct {
	tables map[string]*debugTable
	order  []string
}

type debugTable struct {
	def     *schema.Table
	keys    []string
	rows    map[string]schema.Row
	columns []string
}

// NewDebugSink creates an empty in-memory destination.
func NewDebugSink() *DebugSink {
	return &DebugSink{tables: make(map[string]*debugTable)}
}

// Upsert implements Sink.
func (d *DebugSink) Upsert(table *schema.Table, row schema.Row) error {
	t := d.table(table)
	key := rowKey(table, row)
	if _, ok := t.rows[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.rows[key] = row
	t.observeColumns(row)
	return nil
}

// Delete implements Sink.
func (d *DebugSink) Delete(table *schema.Table, keys schema.Row) error {
	t := d.table(table)
	key := rowKey(table, keys)
	if _, ok := t.rows[key]; ok {
		delete(t.rows, key)
		idx := slices.Index(t.keys, key)
		t.keys = slices.Delete(t.keys, idx, idx+1)
	}
	return nil
}

// Rows returns the current rows of one table in insertion order.
func (d *DebugSink) Rows(table string) []schema.Row {
	t, ok := d.tables[table]
	if !ok {
		return nil
	}
	out := make([]schema.Row, 0, len(t.keys))
	for _, key := range t.keys {
		out = append(out, t.rows[key])
	}
	return out
}

// Render writes every resulting table to w.
func (d *DebugSink) Render(w io.Writer) {
	for _, name := range d.order {
		t := d.tables[name]
		fmt.Fprintf(w, "Resulting table: %s\n", name)

		tw := tablewriter.NewWriter(w)
		tw.SetHeader(t.columns)
		for _, key := range t.keys {
			row := t.rows[key]
			cells := make([]string, 0, len(t.columns))
			for _, col := range t.columns {
				if v, ok := row[col]; ok && v != nil {
					cells = append(cells, fmt.Sprintf("%v", v))
				} else {
					cells = append(cells, "")
				}
			}
			tw.Append(cells)
		}
		tw.Render()
		fmt.Fprintln(w)
	}
}

func (d *DebugSink) table(def *schema.Table) *debugTable {
	t, ok := d.tables[def.Table]
	if !ok {
		t = &debugTable{
			def:  def,
			rows: make(map[string]schema.Row),
		}
		// primary key columns lead, declared columns follow
		t.columns = append(t.columns, def.PrimaryKey...)
		declared := make([]string, 0, len(def.Columns))
		for col := range def.Columns {
			if !slices.Contains(t.columns, col) {
				declared = append(declared, col)
			}
		}
		slices.Sort(declared)
		t.columns = append(t.columns, declared...)
		d.tables[def.Table] = t
		d.order = append(d.order, def.Table)
	}
	return t
}

// observeColumns appends undeclared columns as they first appear, so rows
// carrying extra columns still render fully.
func (t *debugTable) observeColumns(row schema.Row) {
	extra := make([]string, 0)
	for col := range row {
		if !slices.Contains(t.columns, col) {
			extra = append(extra, col)
		}
	}
	slices.Sort(extra)
	t.columns = append(t.columns, extra...)
}

func rowKey(table *schema.Table, row schema.Row) string {
	if len(table.PrimaryKey) == 0 {
		// no declared key: every row is distinct
		return fmt.Sprintf("%d:%v", len(row), row)
	}
	parts := make([]string, 0, len(table.PrimaryKey))
	for _, col := range table.PrimaryKey {
		parts = append(parts, fmt.Sprintf("%v", row[col]))
	}
	return strings.Join(parts, "\x1f")
}
