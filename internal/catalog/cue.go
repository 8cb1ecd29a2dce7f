package catalog

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// CompileError reports a malformed catalog value with its CUE position.
type CompileError struct {
	Field   string
	Message string
	Code    string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ErrorCode returns the catalog error code.
func (e *CompileError) ErrorCode() string { return e.Code }

// CompileCUE reads a catalog from a CUE value shaped like:
//
//	selectors: [name=string]: string
//	groups:    [name=string]: [...string]
//
// Both fields are optional. Validation is separate; see Validate.
func CompileCUE(v cue.Value) (*Catalog, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	selectors := make(map[string]string)
	selVal := v.LookupPath(cue.ParsePath("selectors"))
	if selVal.Exists() {
		iter, err := selVal.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			name := iter.Selector().Unquoted()
			text, err := iter.Value().String()
			if err != nil {
				return nil, &CompileError{
					Field:   "selectors." + name,
					Message: "selector must be a string",
					Code:    ErrUnsupportedValue,
					Pos:     iter.Value().Pos(),
				}
			}
			selectors[name] = text
		}
	}

	var groups map[string][]string
	groupVal := v.LookupPath(cue.ParsePath("groups"))
	if groupVal.Exists() {
		groups = make(map[string][]string)
		iter, err := groupVal.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			name := iter.Selector().Unquoted()
			members, err := parseMembers(iter.Value(), "groups."+name)
			if err != nil {
				return nil, err
			}
			groups[name] = members
		}
	}

	return New(selectors, groups), nil
}

// parseMembers reads a list of selector names.
func parseMembers(v cue.Value, field string) ([]string, error) {
	list, err := v.List()
	if err != nil {
		return nil, &CompileError{
			Field:   field,
			Message: "group must be a list of selector names",
			Code:    ErrUnsupportedValue,
			Pos:     v.Pos(),
		}
	}

	members := []string{}
	for list.Next() {
		name, err := list.Value().String()
		if err != nil {
			return nil, &CompileError{
				Field:   field,
				Message: "group member must be a string",
				Code:    ErrUnsupportedValue,
				Pos:     list.Value().Pos(),
			}
		}
		members = append(members, name)
	}
	return members, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Code:    ErrCodeDecodeFailed,
			Pos:     positions[0],
		}
	}
	return err
}
