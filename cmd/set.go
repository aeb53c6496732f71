package cmd

import (
	"github.com/spf13/cobra"

	"github.com/moyoez/configd/settings"
	"github.com/moyoez/configd/types"
)

var setCmd = &cobra.Command{
	Use:   "set key=value [key=value...]",
	Short: "Change config keys",
	Long: `Merges the given keys into the stored config. Values are parsed as JSON
when they are valid JSON and taken as plain strings otherwise.

Examples:
  configd set theme=dark textSize=14
  configd set 'fonts=["Fira Code","monospace"]'
  configd set devSettings.mockDevices=3`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := ParsePatchArgs(args)
		if err != nil {
			return err
		}
		store, closeStore, err := openStore(cmd.Context(), daemonCfg, nil)
		if err != nil {
			return err
		}
		defer closeStore()
		store.Update(patch)
		return printConfig(cmd.OutOrStdout(), store.Snapshot())
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore(cmd.Context(), daemonCfg, nil)
		if err != nil {
			return err
		}
		defer closeStore()
		store.Update(types.FullPatch(settings.DefaultConfig()))
		return printConfig(cmd.OutOrStdout(), store.Snapshot())
	},
}
