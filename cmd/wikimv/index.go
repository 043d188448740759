package main

import (
	"github.com/spf13/cobra"

	"github.com/ryotapoi/wikimv/internal/core"
)

func newIndexCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Build the link index of the wiki",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return core.Build(cmd.Context(), root.wiki)
		},
	}
}
