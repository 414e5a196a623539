// Package cmd contains the lingobridge CLI commands.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type rootOptions struct {
	v       *viper.Viper
	cfgFile string
	cfg     Config
}

func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{v: newViper()}

	rootCmd := &cobra.Command{
		Use:   "lingobridge",
		Short: "LingoBridge Quick Fix - check one English sentence at a time",
		Long: `LingoBridge Quick Fix sends one English sentence to the grammar backend
and shows the minimal correction, a more natural version, per-issue
explanations and scores.

Run 'lingobridge serve' for the web form or 'lingobridge check' from a terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.v, opts.cfgFile)
			if err != nil {
				return err
			}
			opts.cfg = cfg

			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			return nil
		},
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "path to a YAML config file")
	flags.String("backend-url", defaultBackendUrl, "base URL of the grammar backend")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")

	_ = opts.v.BindPFlag("backend_url", flags.Lookup("backend-url"))
	_ = opts.v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = opts.v.BindPFlag("log_format", flags.Lookup("log-format"))

	rootCmd.AddCommand(
		newServeCmd(opts),
		newCheckCmd(opts),
		newHealthCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(version),
	)

	return rootCmd
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lingobridge version %s\n", version)
		},
	}
}
