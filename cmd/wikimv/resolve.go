package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ryotapoi/wikimv/internal/core"
)

func newResolveCmd(root *rootOptions) *cobra.Command {
	var format, from string

	cmd := &cobra.Command{
		Use:   "resolve LINK",
		Short: "Show where the links in LINK point when written in a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" {
				return fmt.Errorf("--from is required")
			}
			if err := validateFormat(format); err != nil {
				return err
			}
			links, err := core.ResolveLinks(root.wiki, from, args[0])
			if err != nil {
				return err
			}
			switch format {
			case "json":
				return printResolveJSON(cmd.OutOrStdout(), links)
			default:
				printResolveText(cmd.OutOrStdout(), links)
				return nil
			}
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "document the link is written in (wiki-relative)")
	cmd.Flags().StringVar(&format, "format", "text", "output format (json or text)")
	return cmd
}
