package ops

import (
	"github.com/syncpointhq/src2dw/schema"
	"github.com/syncpointhq/src2dw/state"
)

// Type tags the operation variants a connector can emit.
type Type string

const (
	TypeUpsert     Type = "upsert"
	TypeDelete     Type = "delete"
	TypeCheckpoint Type = "checkpoint"
)

// Operation is one tagged operation. Upsert and Delete carry a table and a
// row; Checkpoint carries a state mapping.
type Operation struct {
	Type  Type
	Table string
	Row   schema.Row
	State state.State
}

// Upsert builds an upsert operation for one row.
func Upsert(table string, row schema.Row) Operation {
	return Operation{Type: TypeUpsert, Table: table, Row: row}
}

// Delete builds a delete operation for the given primary key columns.
func Delete(table string, keys schema.Row) Operation {
	return Operation{Type: TypeDelete, Table: table, Row: keys}
}

// Checkpoint builds a checkpoint operation carrying the new state.
func Checkpoint(st state.State) Operation {
	return Operation{Type: TypeCheckpoint, State: st}
}
