// Package local is the smallest possible connector: it replicates a fixed
// in-memory data set one row per sync, resuming from a cursor kept in state.
package local

import (
	"context"

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"github.com/syncpointhq/src2dw/config"
	"github.com/syncpointhq/src2dw/pkg/coreinterfaces"
	"github.com/syncpointhq/src2dw/schema"
	"github.com/syncpointhq/src2dw/state"
	"go.uber.org/zap"
)

// sourceData simulates the source. Initialized once, never mutated.
var sourceData = []schema.Row{
	{"id": 10, "message": "Hello world"},
	{"id": 20, "message": "Hello again"},
	{"id": 30, "message": "Good bye"},
}

type Connector struct{}

func New() *Connector {
	return &Connector{}
}

// Schema declares the hello_world table.
func (c *Connector) Schema(conf config.Configuration) ([]schema.Table, error) {
	return []schema.Table{
		{
			Table:      "hello_world",
			PrimaryKey: []string{"id"},
			Columns: map[string]schema.DataType{
				"message": schema.TypeString,
			},
		},
	}, nil
}

// Update upserts the row at the cursor position and advances the cursor by
// one. Once the data set is exhausted the pass upserts nothing and
// re-checkpoints the same cursor, so further syncs are no-ops.
func (c *Connector) Update(ctx context.Context, conf config.Configuration, st state.State, ops coreinterfaces.OperationRouter) error {
	cursor := st.GetInt("cursor", 0)
	log.Debug("current cursor", zap.Int("cursor", cursor))

	if cursor >= len(sourceData) {
		log.Info("source data exhausted, nothing to sync", zap.Int("cursor", cursor))
		return errors.Trace(ops.Checkpoint(state.State{"cursor": cursor}))
	}

	if err := ops.Upsert("hello_world", sourceData[cursor]); err != nil {
		return errors.Trace(err)
	}

	newState := state.State{"cursor": cursor + 1}
	log.Debug("state updated", zap.Any("newState", newState))
	return errors.Trace(ops.Checkpoint(newState))
}
