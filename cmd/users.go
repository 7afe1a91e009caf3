package cmd

import (
	"github.com/spf13/cobra"
	"github.com/syncpointhq/src2dw/connectors/users"
)

func NewUsersCmd() *cobra.Command {
	return newConnectorCmd("users",
		"Replicate user records keeping history via a composite primary key",
		users.New())
}
