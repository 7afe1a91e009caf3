package events_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/syncpointhq/src2dw/connectors/events"
	"github.com/syncpointhq/src2dw/schema"
	"github.com/syncpointhq/src2dw/state"
)

type recorder struct {
	upserts []schema.Row
}

func (r *recorder) Upsert(table string, row schema.Row) error {
	r.upserts = append(r.upserts, row)
	return nil
}

func (r *recorder) Delete(table string, keys schema.Row) error { return nil }
func (r *recorder) Checkpoint(st state.State) error            { return nil }

func TestSchema(t *testing.T) {
	tables, err := events.New().Schema(nil)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	require.Equal(t, "event", tables[0].Table)
	require.Equal(t, []string{"name"}, tables[0].PrimaryKey)
	require.Equal(t, schema.TypeUTCDatetime, tables[0].Columns["timestamp"])
}

func TestUpdateNormalizesTimestamps(t *testing.T) {
	rec := &recorder{}
	require.NoError(t, events.New().Update(context.Background(), nil, state.State{}, rec))

	require.Len(t, rec.upserts, 2)
	require.Equal(t, "Event1", rec.upserts[0]["name"])
	require.Equal(t, "2024-09-24T14:30:45", rec.upserts[0]["timestamp"])
	require.Equal(t, "Event2", rec.upserts[1]["name"])
	require.Equal(t, "2024-09-24T10:30:45", rec.upserts[1]["timestamp"])
}
