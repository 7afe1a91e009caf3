package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/syncpointhq/src2dw/cmd"
	"github.com/syncpointhq/src2dw/version"
)

var rootCmd *cobra.Command

func init() {
	rootCmd = &cobra.Command{
		Use:                "src2dw",
		Short:              "A toolkit of source connectors replicating data into a host sync engine",
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			switch args[0] {
			case "--help", "-h":
				return cmd.Help()
			case "--version", "-v":
				fmt.Println(version.NewSrc2DWVersion().String())
				return nil
			default:
				return fmt.Errorf("unknown flag: %s\nRun `src2dw --help` for usage.", args[0])
			}
		},
	}

	rootCmd.Flags().BoolP("version", "v", false, "Print the version of src2dw")

	rootCmd.AddCommand(
		// fixture connectors
		cmd.NewLocalCmd(),
		cmd.NewEventsCmd(),
		cmd.NewUsersCmd(),

		// source connectors
		cmd.NewWarehouseCmd(),
		cmd.NewPlaidCmd(),
		cmd.NewVaultCmd(),
	)
}

func main() {
	rootCmd.Execute()
}
