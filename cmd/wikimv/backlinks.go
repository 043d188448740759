package main

import (
	"github.com/spf13/cobra"

	"github.com/ryotapoi/wikimv/internal/core"
)

func newBacklinksCmd(root *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "backlinks TARGET",
		Short: "List indexed links that refer to TARGET",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			links, err := core.Backlinks(root.wiki, args[0])
			if err != nil {
				return err
			}
			switch format {
			case "json":
				return printBacklinksJSON(cmd.OutOrStdout(), links)
			default:
				printBacklinksText(cmd.OutOrStdout(), links)
				return nil
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format (json or text)")
	return cmd
}
