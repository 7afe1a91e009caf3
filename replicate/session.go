package replicate

import (
	"context"

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"github.com/syncpointhq/src2dw/config"
	"github.com/syncpointhq/src2dw/pkg/coreinterfaces"
	"github.com/syncpointhq/src2dw/pkg/metrics"
	"github.com/syncpointhq/src2dw/pkg/ops"
	"github.com/syncpointhq/src2dw/schema"
	"github.com/syncpointhq/src2dw/state"
	"go.uber.org/zap"
)

// StateStore persists checkpointed state between syncs. The host platform
// owns this in production; locally a file-backed store stands in.
type StateStore interface {
	Load() (state.State, error)
	Save(st state.State) error
}

// Sink receives the validated row operations of one sync pass.
type Sink interface {
	Upsert(table *schema.Table, row schema.Row) error
	Delete(table *schema.Table, keys schema.Row) error
}

// Session drives one update pass of a connector: it resolves and validates
// the declared schema, forwards row operations to the sink, and persists
// every checkpoint before acknowledging it. Operations are consumed in the
// order the connector produces them.
type Session struct {
	name      string
	connector coreinterfaces.Connector
	conf      config.Configuration
	store     StateStore
	sink      Sink
	tables    map[string]*schema.Table
	logger    *zap.Logger

	rowsUpserted int64
	checkpoints  int64
}

// NewSession wires a named connector to a sink and a state store.
func NewSession(name string, connector coreinterfaces.Connector, conf config.Configuration, store StateStore, sink Sink) *Session {
	return &Session{
		name:      name,
		connector: connector,
		conf:      conf,
		store:     store,
		sink:      sink,
		logger:    log.L().With(zap.String("connector", name)),
	}
}

// Tables exposes the resolved schema after Run.
func (sess *Session) Tables() map[string]*schema.Table {
	return sess.tables
}

// RowsUpserted reports how many rows the pass upserted.
func (sess *Session) RowsUpserted() int64 {
	return sess.rowsUpserted
}

// Checkpoints reports how many checkpoints the pass persisted.
func (sess *Session) Checkpoints() int64 {
	return sess.checkpoints
}

// ResolveSchema asks the connector for its schema and validates it.
func (sess *Session) ResolveSchema() ([]schema.Table, error) {
	tables, err := sess.connector.Schema(sess.conf)
	if err != nil {
		return nil, errors.Annotate(err, "Failed to resolve connector schema")
	}
	if err := schema.ValidateAll(tables); err != nil {
		return nil, errors.Trace(err)
	}
	sess.tables = make(map[string]*schema.Table, len(tables))
	for i := range tables {
		sess.tables[tables[i].Table] = &tables[i]
	}
	metrics.TableNumGauge.Set(float64(len(tables)))
	return tables, nil
}

// Run performs one full pass: schema resolution, state load, update.
// Schema resolution is skipped when ResolveSchema already ran, so dynamic
// schema discovery (which may hit the source) happens once per pass.
func (sess *Session) Run(ctx context.Context) error {
	if sess.tables == nil {
		if _, err := sess.ResolveSchema(); err != nil {
			return errors.Trace(err)
		}
	}

	st, err := sess.store.Load()
	if err != nil {
		return errors.Trace(err)
	}
	sess.logger.Info("Starting update pass",
		zap.Int("tables", len(sess.tables)),
		zap.Any("state", st))

	if err := sess.connector.Update(ctx, sess.conf, st, sess); err != nil {
		return errors.Annotate(err, "Update pass failed")
	}

	sess.logger.Info("Update pass finished",
		zap.Int64("rowsUpserted", sess.rowsUpserted),
		zap.Int64("checkpoints", sess.checkpoints))
	return nil
}

// Upsert implements coreinterfaces.OperationRouter.
func (sess *Session) Upsert(table string, row schema.Row) error {
	return sess.apply(ops.Upsert(table, row))
}

// Delete implements coreinterfaces.OperationRouter.
func (sess *Session) Delete(table string, keys schema.Row) error {
	return sess.apply(ops.Delete(table, keys))
}

// Checkpoint implements coreinterfaces.OperationRouter. The state is
// persisted before the operation is acknowledged, so the next sync can
// never observe a checkpoint that was not durable.
func (sess *Session) Checkpoint(st state.State) error {
	return sess.apply(ops.Checkpoint(st))
}

// apply routes one tagged operation, in the order the connector emitted it.
func (sess *Session) apply(op ops.Operation) error {
	if op.Type == ops.TypeCheckpoint {
		if err := sess.store.Save(op.State.Clone()); err != nil {
			return errors.Annotate(err, "Failed to persist checkpoint")
		}
		sess.checkpoints++
		metrics.AddCounter(metrics.CheckpointCounter, 1, sess.name)
		sess.logger.Debug("Checkpoint persisted", zap.Any("state", op.State))
		return nil
	}

	tbl, ok := sess.tables[op.Table]
	if !ok {
		metrics.AddCounter(metrics.ErrorCounter, 1, op.Table)
		return errors.Errorf("%s against undeclared table %s", op.Type, op.Table)
	}
	if err := tbl.ValidateRow(op.Row); err != nil {
		metrics.AddCounter(metrics.ErrorCounter, 1, op.Table)
		return errors.Trace(err)
	}

	switch op.Type {
	case ops.TypeUpsert:
		if err := sess.sink.Upsert(tbl, op.Row); err != nil {
			metrics.AddCounter(metrics.ErrorCounter, 1, op.Table)
			return errors.Trace(err)
		}
		sess.rowsUpserted++
		metrics.AddCounter(metrics.RowsUpsertedCounter, 1, op.Table)
	case ops.TypeDelete:
		if err := sess.sink.Delete(tbl, op.Row); err != nil {
			metrics.AddCounter(metrics.ErrorCounter, 1, op.Table)
			return errors.Trace(err)
		}
		metrics.AddCounter(metrics.RowsDeletedCounter, 1, op.Table)
	default:
		return errors.Errorf("unknown operation type %s", op.Type)
	}
	return nil
}
