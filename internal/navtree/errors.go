package navtree

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedInput = errors.New("malformed navigation tree")
	ErrDepthExceeded  = errors.New("navigation tree too deep")
)

// MalformedInputError reports a structural violation of the entry grammar.
// Path locates the offending value, e.g. "hierarchy[1].children[0]".
type MalformedInputError struct {
	Path   string
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed input: %s", e.Reason)
	}
	return fmt.Sprintf("malformed input at %s: %s", e.Path, e.Reason)
}

func (e *MalformedInputError) Unwrap() error { return ErrMalformedInput }

// DepthExceededError reports nesting beyond ParseConfig.MaxDepth.
type DepthExceededError struct {
	Limit int
	Path  string
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("nesting deeper than %d levels at %s", e.Limit, e.Path)
}

func (e *DepthExceededError) Unwrap() error { return ErrDepthExceeded }

func malformed(path, format string, args ...any) error {
	return &MalformedInputError{Path: path, Reason: fmt.Sprintf(format, args...)}
}
