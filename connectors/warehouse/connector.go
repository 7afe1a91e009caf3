// Package warehouse replicates the customers table out of an embedded
// DuckDB file using key-based incremental extraction: only rows whose
// updated_at moved past the checkpointed cursor are synced.
package warehouse

import (
	"context"
	"time"

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"github.com/syncpointhq/src2dw/config"
	"github.com/syncpointhq/src2dw/pkg/coreinterfaces"
	"github.com/syncpointhq/src2dw/pkg/duckdbsql"
	"github.com/syncpointhq/src2dw/schema"
	"github.com/syncpointhq/src2dw/state"
	"go.uber.org/zap"
)

const (
	// DefaultDatabasePath is used when the configuration carries no path.
	DefaultDatabasePath = "source_warehouse.db"
	// defaultLastSynced is the cursor of a first sync.
	defaultLastSynced = "2024-01-01T00:00:00Z"

	timestampLayout = "2006-01-02T15:04:05Z"
	timeBasedColumn = "updated_at"
)

var customerColumns = []string{"customer_id", "first_name", "last_name", "email", "updated_at"}

type Connector struct{}

func New() *Connector {
	return &Connector{}
}

func (c *Connector) Schema(conf config.Configuration) ([]schema.Table, error) {
	return []schema.Table{
		{
			Table:      "customers",
			PrimaryKey: []string{"customer_id"},
			Columns: map[string]schema.DataType{
				"customer_id": schema.TypeInt,
				"first_name":  schema.TypeString,
				"last_name":   schema.TypeString,
				"email":       schema.TypeString,
				"updated_at":  schema.TypeUTCDatetime,
			},
		},
	}, nil
}

// Update scans customers modified after the cursor, oldest first, upserts
// each and checkpoints the cursor once after the scan. The database file is
// opened read-only for the duration of the pass.
func (c *Connector) Update(ctx context.Context, conf config.Configuration, st state.State, ops coreinterfaces.OperationRouter) error {
	lastSynced := st.GetString("last_synced", defaultLastSynced)

	dbConfig := duckdbsql.DuckDBConfig{
		Path:     conf.Get("database_path", DefaultDatabasePath),
		ReadOnly: true,
	}
	db, err := dbConfig.OpenDB()
	if err != nil {
		return errors.Trace(err)
	}
	defer db.Close()

	log.Debug("fetching customers modified after cursor", zap.String("lastSynced", lastSynced))

	query, err := duckdbsql.BuildIncrementalQuery("customers", customerColumns, timeBasedColumn, lastSynced)
	if err != nil {
		return errors.Trace(err)
	}
	rows, err := duckdbsql.QueryRows(db, query)
	if err != nil {
		return errors.Trace(err)
	}

	for _, row := range rows {
		updatedAt, err := formatUpdatedAt(row[timeBasedColumn])
		if err != nil {
			return errors.Trace(err)
		}
		if err := ops.Upsert("customers", schema.Row{
			"customer_id": row["customer_id"],
			"first_name":  row["first_name"],
			"last_name":   row["last_name"],
			"email":       row["email"],
			"updated_at":  updatedAt,
		}); err != nil {
			return errors.Trace(err)
		}
		lastSynced = updatedAt
	}

	return errors.Trace(ops.Checkpoint(state.State{"last_synced": lastSynced}))
}

// formatUpdatedAt renders the scanned time column in the cursor layout.
// The driver delivers TIMESTAMP columns as time.Time.
func formatUpdatedAt(v interface{}) (string, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(timestampLayout), nil
	case string:
		return t, nil
	default:
		return "", errors.Errorf("unexpected %s value of type %T", timeBasedColumn, v)
	}
}
