package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/plsel/internal/ir"
	"github.com/roach88/plsel/internal/selector"
)

// ExpandResult is the JSON payload of the expand command.
type ExpandResult struct {
	Selector    string          `json:"selector"`
	Count       int             `json:"count"`
	Identifiers []ir.Identifier `json:"identifiers"`
}

// NewExpandCommand creates the expand command.
func NewExpandCommand(rootOpts *RootOptions) *cobra.Command {
	var pad int

	cmd := &cobra.Command{
		Use:   "expand <selector>",
		Short: "List the identifiers a selector denotes",
		Long: `List every identifier an unambiguous selector denotes, one per line,
in expansion order. With --pad, shorter identifiers are right-padded with
blank levels.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(rootOpts, cmd, args[0], pad)
		},
	}

	cmd.Flags().IntVar(&pad, "pad", 0, "pad identifiers to this many levels")
	return cmd
}

func runExpand(opts *RootOptions, cmd *cobra.Command, sel string, pad int) error {
	formatter := newFormatter(opts, cmd)

	ids, err := selector.Expand(selector.Text(sel), pad)
	if err != nil {
		return formatter.fail(ExitCommandError, err)
	}
	if len(ids) == 1 && len(ids[0]) == 0 {
		ids = []ir.Identifier{}
	}

	var b strings.Builder
	for _, id := range ids {
		b.WriteString(formatIdentifier(id))
		b.WriteByte('\n')
	}
	return formatter.Success(ExpandResult{Selector: sel, Count: len(ids), Identifiers: ids}, b.String())
}

// formatIdentifier renders an identifier as a tuple, quoting strings so
// blank padding stays visible: ("foo", 0, "").
func formatIdentifier(id ir.Identifier) string {
	parts := make([]string, len(id))
	for i, a := range id {
		switch v := a.(type) {
		case ir.Str:
			parts[i] = fmt.Sprintf("%q", string(v))
		case ir.Int:
			parts[i] = fmt.Sprintf("%d", int64(v))
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// CollapseResult is the JSON payload of the collapse command.
type CollapseResult struct {
	Selector  string `json:"selector"`
	Collapsed string `json:"collapsed"`
}

// NewCollapseCommand creates the collapse command.
func NewCollapseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "collapse <selector>",
		Short: "Rewrite a selector in compact form",
		Long: `Expand an unambiguous selector and collapse its identifiers back into a
compact selector denoting the same set. Identifiers must share one length;
use a padded selector for mixed depths.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			ids, err := selector.Expand(selector.Text(args[0]), 0)
			if err != nil {
				return formatter.fail(ExitCommandError, err)
			}
			collapsed, err := selector.Collapse(ids)
			if err != nil {
				return formatter.fail(ExitCommandError, err)
			}
			return formatter.Success(CollapseResult{Selector: args[0], Collapsed: collapsed}, collapsed+"\n")
		},
	}
}

// CountResult is the JSON payload of the count command.
type CountResult struct {
	Selector string `json:"selector"`
	Count    int    `json:"count"`
}

// NewCountCommand creates the count command.
func NewCountCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "count <selector>",
		Short:         "Count the identifiers a selector denotes",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			n, err := selector.Count(selector.Text(args[0]))
			if err != nil {
				return formatter.fail(ExitCommandError, err)
			}
			return formatter.Success(CountResult{Selector: args[0], Count: n}, fmt.Sprintf("%d\n", n))
		},
	}
}
