package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ryotapoi/wikimv/internal/core"
)

func newRenameCmd(root *rootOptions) *cobra.Command {
	var opts core.RenameOptions
	var format, colorMode string

	cmd := &cobra.Command{
		Use:   "rename FROM TO",
		Short: "Rewrite links to FROM so they point at TO",
		Long: `Rewrite every link in the wiki that refers to FROM so it refers to TO.
Relative FROM and TO are taken from the wiki root. With --move the file
itself is moved as well.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			colored, err := colorEnabled(colorMode, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			opts.From, opts.To = args[0], args[1]
			opts.Color = colored && format == "text"

			result, err := core.Rename(cmd.Context(), root.wiki, opts)
			if result == nil {
				return err
			}
			var printErr error
			switch format {
			case "json":
				printErr = printRenameJSON(cmd.OutOrStdout(), result, opts.DryRun)
			default:
				printRenameText(cmd.OutOrStdout(), result, opts.DryRun)
			}
			if err != nil {
				return err
			}
			return printErr
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.DryRun, "dry-run", false, "show what would change without writing")
	f.BoolVar(&opts.MoveFile, "move", false, "also move FROM to TO on disk")
	f.IntVar(&opts.Workers, "workers", 0, "files processed in parallel (default from config, then CPU count)")
	f.BoolVar(&opts.ContinueOnError, "continue-on-error", false, "report per-file failures at the end instead of aborting")
	f.StringArrayVar(&opts.Exclude, "exclude", nil, "glob of wiki-relative paths to skip (repeatable)")
	f.StringVar(&format, "format", "text", "output format (json or text)")
	f.StringVar(&colorMode, "color", "auto", "colour diffs (auto, always or never)")
	return cmd
}

// colorEnabled decides whether output to w is coloured.
func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	}
	return false, fmt.Errorf("invalid color mode: %q (must be auto, always or never)", mode)
}
