package main

import (
	"github.com/spf13/cobra"

	"github.com/ryotapoi/wikimv/internal/core"
)

func newStatsCmd(root *rootOptions) *cobra.Command {
	var format, fields string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show link statistics from the index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			fieldList := parseFields(fields)
			if err := validateFields(fieldList, core.ValidStatsFields, "stats"); err != nil {
				return err
			}
			result, err := core.Stats(root.wiki, core.StatsOptions{Fields: fieldList})
			if err != nil {
				return err
			}
			switch format {
			case "json":
				return printStatsJSON(cmd.OutOrStdout(), result, fieldList)
			default:
				printStatsText(cmd.OutOrStdout(), result, fieldList)
				return nil
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format (json or text)")
	cmd.Flags().StringVar(&fields, "fields", "", "comma-separated fields to output")
	return cmd
}
