// Package users shows how to keep history for a source without a
// created_at field: updated_at joins the primary key, so each new version
// of a record lands as a new destination row instead of rewriting the old
// one.
package users

import (
	"context"

	"github.com/pingcap/errors"
	"github.com/syncpointhq/src2dw/config"
	"github.com/syncpointhq/src2dw/pkg/coreinterfaces"
	"github.com/syncpointhq/src2dw/schema"
	"github.com/syncpointhq/src2dw/state"
)

var sourceRecords = []schema.Row{
	{
		"id":          123,
		"first_name":  "John",
		"last_name":   "Doe",
		"designation": "Manager",
		"updated_at":  "2007-12-03T10:15:30Z",
	},
	{
		"id":          456,
		"first_name":  "Jane",
		"last_name":   "Dalton",
		"designation": "VP",
		"updated_at":  "2008-11-12T00:00:20Z",
	},
}

type Connector struct{}

func New() *Connector {
	return &Connector{}
}

func (c *Connector) Schema(conf config.Configuration) ([]schema.Table, error) {
	return []schema.Table{
		{
			Table:      "user",
			PrimaryKey: []string{"id", "updated_at"},
			Columns: map[string]schema.DataType{
				"id":         schema.TypeInt,
				"first_name": schema.TypeString,
				"last_name":  schema.TypeString,
				"updated_at": schema.TypeUTCDatetime,
			},
		},
	}, nil
}

func (c *Connector) Update(ctx context.Context, conf config.Configuration, st state.State, ops coreinterfaces.OperationRouter) error {
	for _, record := range sourceRecords {
		if err := ops.Upsert("user", record); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}
