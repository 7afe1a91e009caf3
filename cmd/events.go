package cmd

import (
	"github.com/spf13/cobra"
	"github.com/syncpointhq/src2dw/connectors/events"
)

func NewEventsCmd() *cobra.Command {
	return newConnectorCmd("events",
		"Replicate inline JSON events with timestamp normalization",
		events.New())
}
