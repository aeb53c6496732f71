package cmd

import (
	"github.com/spf13/cobra"

	"github.com/moyoez/configd/tool"
	"github.com/moyoez/configd/types"
)

var (
	flags     tool.Flags
	daemonCfg types.DaemonConfig

	rootCmd = &cobra.Command{
		Use:   "configd",
		Short: "configd - GUI configuration store",
		Long: `configd keeps the GUI configuration (theme, fonts, language, sounds...)
in a persistent key-value store, migrates the legacy config.json once,
and serves the live config and presentation state over a local API.

Usage:
  configd <command> [flags]

Available Commands:
  serve    Run the local config API
  show     Print the current config
  set      Change config keys (key=value)
  reset    Restore the default config`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			tool.InitLogger()
			cfg, err := tool.LoadConfig(flags.ConfigPath)
			if err != nil {
				return err
			}
			flags.Apply(&cfg)
			tool.SetLogMode(cfg.Log)
			daemonCfg = cfg
			return nil
		},
	}
)

func init() {
	tool.BindFlags(rootCmd.PersistentFlags(), &flags)
	rootCmd.AddCommand(serveCmd, showCmd, setCmd, resetCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
