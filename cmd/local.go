package cmd

import (
	"github.com/spf13/cobra"
	"github.com/syncpointhq/src2dw/connectors/local"
)

func NewLocalCmd() *cobra.Command {
	return newConnectorCmd("local",
		"Replicate a fixed in-memory data set, one row per sync",
		local.New())
}
