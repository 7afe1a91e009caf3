package cmd

import (
	"github.com/spf13/cobra"
	"github.com/syncpointhq/src2dw/connectors/warehouse"
)

func NewWarehouseCmd() *cobra.Command {
	return newConnectorCmd("warehouse",
		"Replicate customers from an embedded DuckDB file, key-based incremental",
		warehouse.New())
}
