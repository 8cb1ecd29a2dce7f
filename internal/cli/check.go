package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/plsel/internal/selector"
)

// CheckResult is the JSON payload of the check command. Expandable and
// Count are omitted for ambiguous selectors.
type CheckResult struct {
	Selector   string `json:"selector"`
	Ambiguous  bool   `json:"ambiguous"`
	Expandable *bool  `json:"expandable,omitempty"`
	Identifier bool   `json:"identifier"`
	MaxLevels  int    `json:"max_levels"`
	Count      *int   `json:"count,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <selector>",
		Short: "Report the properties of a selector",
		Long: `Parse a selector and report whether it is ambiguous, expandable or a
single identifier, its maximum level count and, when unambiguous, how many
identifiers it denotes.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, cmd, args[0])
		},
	}
}

func runCheck(opts *RootOptions, cmd *cobra.Command, sel string) error {
	formatter := newFormatter(opts, cmd)
	text := selector.Text(sel)

	ambiguous, err := selector.IsAmbiguous(text)
	if err != nil {
		return formatter.fail(ExitCommandError, err)
	}
	maxLevels, err := selector.MaxLevels(text)
	if err != nil {
		return formatter.fail(ExitCommandError, err)
	}

	result := CheckResult{
		Selector:   sel,
		Ambiguous:  ambiguous,
		Identifier: selector.IsIdentifier(text),
		MaxLevels:  maxLevels,
	}
	if !ambiguous {
		expandable, err := selector.IsExpandable(text)
		if err != nil {
			return formatter.fail(ExitCommandError, err)
		}
		n, err := selector.Count(text)
		if err != nil {
			return formatter.fail(ExitCommandError, err)
		}
		result.Expandable = &expandable
		result.Count = &n
	}

	var b strings.Builder
	fmt.Fprintf(&b, "selector:   %s\n", sel)
	fmt.Fprintf(&b, "ambiguous:  %t\n", result.Ambiguous)
	fmt.Fprintf(&b, "expandable: %s\n", optional(result.Expandable))
	fmt.Fprintf(&b, "identifier: %t\n", result.Identifier)
	fmt.Fprintf(&b, "max levels: %d\n", result.MaxLevels)
	fmt.Fprintf(&b, "count:      %s\n", optional(result.Count))
	return formatter.Success(result, b.String())
}

func optional[T any](v *T) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprint(*v)
}

// DisjointResult is the JSON payload of the disjoint command.
type DisjointResult struct {
	Selectors []string `json:"selectors"`
	Disjoint  bool     `json:"disjoint"`
}

// NewDisjointCommand creates the disjoint command.
func NewDisjointCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "disjoint <selector>...",
		Short: "Check that selectors share no identifiers",
		Long: `Check that no identifier is denoted by more than one of the given
unambiguous selectors. Exits with status 1 when they overlap.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			sels := make([]selector.Like, len(args))
			for i, a := range args {
				sels[i] = selector.Text(a)
			}
			disjoint, err := selector.AreDisjoint(sels...)
			if err != nil {
				return formatter.fail(ExitCommandError, err)
			}

			text := "disjoint\n"
			if !disjoint {
				text = "overlapping\n"
			}
			if err := formatter.Success(DisjointResult{Selectors: args, Disjoint: disjoint}, text); err != nil {
				return err
			}
			if !disjoint {
				return NewExitError(ExitFailure, "selectors overlap")
			}
			return nil
		},
	}
}
