package main

import (
	"github.com/spf13/cobra"

	"github.com/ryotapoi/wikimv/internal/logging"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	wiki     string
	logLevel string
	logJSON  bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "wikimv",
		Short: "Rewrite wiki links when a file is renamed or moved",
		Long: `wikimv keeps the cross-references of a tree of wiki text files valid
when a file is renamed. It understands markdown links [text](path),
wiki links [[path|text]] and transclusions {{path|text}}, with the
diary:, file: and local: prefixes.`,
		Version:       resolveVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lg := logging.New(logging.Config{
				Out:     cmd.ErrOrStderr(),
				Level:   logging.ParseLevel(opts.logLevel),
				JSON:    opts.logJSON,
				Version: resolveVersion(),
			})
			cmd.SetContext(logging.WithLogger(cmd.Context(), lg))
			return nil
		},
	}
	cmd.SetVersionTemplate("wikimv version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&opts.wiki, "wiki", ".", "wiki root directory")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "minimum log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "output logs as JSON")

	cmd.AddCommand(
		newRenameCmd(opts),
		newIndexCmd(opts),
		newBacklinksCmd(opts),
		newResolveCmd(opts),
		newStatsCmd(opts),
	)
	return cmd
}
