package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/plsel/internal/catalog"
	"github.com/roach88/plsel/internal/selector"
)

// CatalogEntry describes one catalog selector.
type CatalogEntry struct {
	Name      string `json:"name"`
	Selector  string `json:"selector"`
	Ambiguous bool   `json:"ambiguous"`
	Count     *int   `json:"count,omitempty"`
}

// CatalogResult is the JSON payload of the catalog command.
type CatalogResult struct {
	Valid     bool                      `json:"valid"`
	Selectors []CatalogEntry            `json:"selectors"`
	Groups    map[string][]string       `json:"groups,omitempty"`
	Errors    []catalog.ValidationError `json:"errors,omitempty"`
}

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog <file>",
		Short: "Load and validate a selector catalog",
		Long: `Load a selector catalog from a .cue, .yaml or .yml file, or a directory
holding a CUE package, and validate it: every selector must parse and every
group must list known, unambiguous, pairwise disjoint selectors.
Exits with status 1 when validation fails.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(rootOpts, cmd, args[0])
		},
	}
}

func runCatalog(opts *RootOptions, cmd *cobra.Command, path string) error {
	formatter := newFormatter(opts, cmd)

	c, err := catalog.LoadFile(path)
	if err != nil {
		return formatter.fail(ExitCommandError, err)
	}
	errs := catalog.Validate(c)

	result := CatalogResult{
		Valid:     len(errs) == 0,
		Selectors: []CatalogEntry{},
		Groups:    c.Groups,
		Errors:    errs,
	}
	var b strings.Builder
	for _, name := range c.Names() {
		entry := CatalogEntry{Name: name, Selector: c.Selectors[name]}
		text := selector.Text(entry.Selector)

		status := "invalid"
		if ambiguous, err := selector.IsAmbiguous(text); err == nil {
			entry.Ambiguous = ambiguous
			status = "ambiguous"
			if !ambiguous {
				n, _ := selector.Count(text)
				entry.Count = &n
				status = fmt.Sprintf("%d identifiers", n)
			}
		}
		result.Selectors = append(result.Selectors, entry)
		fmt.Fprintf(&b, "selector %s %q: %s\n", name, entry.Selector, status)
	}
	for _, group := range c.GroupNames() {
		fmt.Fprintf(&b, "group %s: %s\n", group, strings.Join(c.Groups[group], ", "))
	}

	if len(errs) == 0 {
		b.WriteString("✓ catalog valid\n")
		return formatter.Success(result, b.String())
	}

	b.WriteString("✗ catalog invalid\n")
	for _, e := range errs {
		fmt.Fprintf(&b, "  %s %s: %s\n", e.Code, e.Field, e.Message)
	}
	if formatter.JSON() {
		if err := formatter.encode(CLIResponse{
			Status: "error",
			Data:   result,
			Error:  &CLIError{Code: errs[0].Code, Message: errs[0].Message},
		}); err != nil {
			return err
		}
	} else if err := formatter.Success(nil, b.String()); err != nil {
		return err
	}
	return NewExitError(ExitFailure, fmt.Sprintf("catalog invalid with %d error(s)", len(errs)))
}
