package duckdbsql

import (
	"database/sql"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
)

// DuckDBConfig locates the embedded analytical database file a connector
// extracts from.
type DuckDBConfig struct {
	Path     string
	ReadOnly bool
}

// OpenDB opens the database file. Extraction passes open read-only so a
// sync can never mutate the source.
func (config *DuckDBConfig) OpenDB() (*sql.DB, error) {
	dsn := config.Path
	if config.ReadOnly {
		dsn += "?access_mode=read_only"
	}
	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, errors.Annotate(err, "Failed to open DuckDB database")
	}
	// make sure the database file is readable
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, errors.Annotate(err, "Failed to ping DuckDB database")
	}
	log.Info("DuckDB connection established", zap.String("path", config.Path), zap.Bool("readOnly", config.ReadOnly))
	return db, nil
}
