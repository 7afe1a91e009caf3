package cmd

import (
	"github.com/spf13/cobra"
	"github.com/syncpointhq/src2dw/connectors/plaid"
)

func NewPlaidCmd() *cobra.Command {
	return newConnectorCmd("plaid",
		"Replicate accounts from the Plaid API",
		plaid.New())
}
