package cmd

import (
	"github.com/spf13/cobra"
	"github.com/syncpointhq/src2dw/connectors/vault"
)

func NewVaultCmd() *cobra.Command {
	return newConnectorCmd("vault",
		"Replicate all object types from a Veeva Vault tenant via VQL",
		vault.New())
}
