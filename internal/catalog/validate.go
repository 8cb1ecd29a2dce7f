package catalog

import (
	"fmt"
	"strings"

	"github.com/roach88/plsel/internal/selector"
)

// Validation error codes (E201-E209)
const (
	ErrEmptyName        = "E201" // selector name is empty
	ErrUnparsable       = "E202" // selector text does not parse
	ErrUnknownMember    = "E203" // group references an unknown selector
	ErrAmbiguousMember  = "E204" // group member is ambiguous
	ErrNotDisjoint      = "E205" // group members share identifiers
	ErrEmptyGroup       = "E206" // group has no members
	ErrDuplicateMember  = "E207" // member listed twice in a group
	ErrEmptyGroupName   = "E208" // group name is empty
	ErrUnsupportedValue = "E209" // unsupported catalog value type
)

// ValidationError represents a catalog validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a catalog. Returns all errors found (does not fail-fast),
// ordered by selector name, then group name.
func Validate(c *Catalog) []ValidationError {
	var errs []ValidationError

	for _, name := range c.Names() {
		field := fmt.Sprintf("selectors.%s", name)

		// E201: name is required
		if strings.TrimSpace(name) == "" {
			errs = append(errs, ValidationError{
				Field:   "selectors",
				Message: "selector name must be non-empty",
				Code:    ErrEmptyName,
			})
		}

		// E202: selector must parse
		if _, err := selector.Parse(c.Selectors[name]); err != nil {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: err.Error(),
				Code:    ErrUnparsable,
			})
		}
	}

	for _, group := range c.GroupNames() {
		errs = append(errs, validateGroup(c, group)...)
	}
	return errs
}

func validateGroup(c *Catalog, group string) []ValidationError {
	var errs []ValidationError
	field := fmt.Sprintf("groups.%s", group)
	members := c.Groups[group]

	// E208: group name is required
	if strings.TrimSpace(group) == "" {
		errs = append(errs, ValidationError{
			Field:   "groups",
			Message: "group name must be non-empty",
			Code:    ErrEmptyGroupName,
		})
	}

	// E206: group must have members
	if len(members) == 0 {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: "group must list at least one selector",
			Code:    ErrEmptyGroup,
		})
		return errs
	}

	seen := make(map[string]bool)
	var usable []string
	for i, member := range members {
		memberField := fmt.Sprintf("%s[%d]", field, i)

		// E207: duplicate member
		if seen[member] {
			errs = append(errs, ValidationError{
				Field:   memberField,
				Message: fmt.Sprintf("duplicate member %q", member),
				Code:    ErrDuplicateMember,
			})
			continue
		}
		seen[member] = true

		// E203: member must exist
		text, ok := c.Selectors[member]
		if !ok {
			errs = append(errs, ValidationError{
				Field:   memberField,
				Message: fmt.Sprintf("unknown selector %q", member),
				Code:    ErrUnknownMember,
			})
			continue
		}

		// Unparsable members are reported once under selectors (E202)
		ambiguous, err := selector.IsAmbiguous(selector.Text(text))
		if err != nil {
			continue
		}

		// E204: disjointness needs expansion
		if ambiguous {
			errs = append(errs, ValidationError{
				Field:   memberField,
				Message: fmt.Sprintf("selector %q is ambiguous (%s)", member, text),
				Code:    ErrAmbiguousMember,
			})
			continue
		}
		usable = append(usable, member)
	}

	// E205: members must be pairwise disjoint
	for i := 0; i < len(usable); i++ {
		for j := i + 1; j < len(usable); j++ {
			a, b := usable[i], usable[j]
			disjoint, err := selector.AreDisjoint(
				selector.Text(c.Selectors[a]),
				selector.Text(c.Selectors[b]),
			)
			if err != nil || disjoint {
				continue
			}
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("selectors %q and %q overlap", a, b),
				Code:    ErrNotDisjoint,
			})
		}
	}
	return errs
}
