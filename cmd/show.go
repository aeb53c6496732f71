package cmd

import (
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore(cmd.Context(), daemonCfg, nil)
		if err != nil {
			return err
		}
		defer closeStore()
		return printConfig(cmd.OutOrStdout(), store.Snapshot())
	},
}
