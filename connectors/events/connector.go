// Package events replicates inline JSON event documents, normalizing their
// timestamps into ISO 8601 before upserting.
package events

import (
	"context"

	"github.com/pingcap/errors"
	"github.com/syncpointhq/src2dw/config"
	"github.com/syncpointhq/src2dw/pkg/coreinterfaces"
	"github.com/syncpointhq/src2dw/pkg/utils"
	"github.com/syncpointhq/src2dw/schema"
	"github.com/syncpointhq/src2dw/state"
	"github.com/tidwall/gjson"
)

// One document per accepted source timestamp layout.
var eventDocuments = []string{
	`{
		"name": "Event1",
		"timestamp": "2024/09/24 14:30:45"
	}`,
	`{
		"name": "Event2",
		"timestamp": "2024-09-24 10:30:45"
	}`,
}

type Connector struct{}

func New() *Connector {
	return &Connector{}
}

func (c *Connector) Schema(conf config.Configuration) ([]schema.Table, error) {
	return []schema.Table{
		{
			Table:      "event",
			PrimaryKey: []string{"name"},
			Columns: map[string]schema.DataType{
				"name":      schema.TypeString,
				"timestamp": schema.TypeUTCDatetime,
			},
		},
	}, nil
}

// Update parses each document, normalizes its timestamp and upserts it. A
// timestamp matching neither accepted layout aborts the pass.
func (c *Connector) Update(ctx context.Context, conf config.Configuration, st state.State, ops coreinterfaces.OperationRouter) error {
	for _, doc := range eventDocuments {
		if !gjson.Valid(doc) {
			return errors.Errorf("event document is not valid JSON: %s", doc)
		}
		timestamp, err := utils.SerializeTimestamp(gjson.Get(doc, "timestamp").String())
		if err != nil {
			return errors.Trace(err)
		}
		row := schema.Row{
			"name":      gjson.Get(doc, "name").String(),
			"timestamp": timestamp,
		}
		if err := ops.Upsert("event", row); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}
