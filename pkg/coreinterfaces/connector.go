package coreinterfaces

import (
	"context"

	"github.com/syncpointhq/src2dw/config"
	"github.com/syncpointhq/src2dw/schema"
	"github.com/syncpointhq/src2dw/state"
)

/// Connector is the interface for a source connector.
/// One Connector is responsible for one source.
/// Any source should implement this interface.
/// All extraction related operations are done through this.

type Connector interface {
	// Schema declares the destination tables this connector delivers.
	Schema(conf config.Configuration) ([]schema.Table, error)
	// Update performs one extraction pass, pushing operations to the
	// router in order. The state holds whatever the connector chose to
	// checkpoint during the prior sync, empty on the first sync.
	Update(ctx context.Context, conf config.Configuration, st state.State, ops OperationRouter) error
}

// OperationRouter consumes the operations a connector produces during one
// update pass. Operations are consumed synchronously and in order; there is
// no buffering between producer and consumer.
type OperationRouter interface {
	// Upsert inserts or updates the row matching the table's primary key.
	Upsert(table string, row schema.Row) error
	// Delete removes the row matching the given primary key columns.
	Delete(table string, keys schema.Row) error
	// Checkpoint persists the state so the next sync resumes from it.
	Checkpoint(st state.State) error
}
