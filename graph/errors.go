package graph

import (
	"errors"
	"fmt"
)

// ErrLayoutMismatch is reported when a dispatch row hands node storage a
// layout that differs from the payload variant's real size or alignment.
// This is a programming error in the row, caught at decode time instead of
// becoming silent storage corruption.
var ErrLayoutMismatch = errors.New("payload layout does not match reported layout")

// NameResolutionError means a type, property or function name read from the
// stream has no match in the registry. The offending node's payload is left
// unconstructed; the caller decides whether the whole graph is invalid.
type NameResolutionError struct {
	// Symbol is the name that failed to resolve.
	Symbol string

	// Want is "type", "property" or "function".
	Want string

	// OwnerType is set when a member lookup failed on a resolved type.
	OwnerType string
}

func (e *NameResolutionError) Error() string {
	if e.OwnerType != "" {
		return fmt.Sprintf("%s %q not found on type %q", e.Want, e.Symbol, e.OwnerType)
	}
	return fmt.Sprintf("unknown %s %q", e.Want, e.Symbol)
}

// LayoutError carries the mismatching layouts for diagnostics. It matches
// ErrLayoutMismatch under errors.Is.
type LayoutError struct {
	Kind     NodeKind
	Reported Layout
	Actual   Layout
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("node kind %s: reported layout %d/%d does not match payload layout %d/%d",
		e.Kind, e.Reported.Size, e.Reported.Align, e.Actual.Size, e.Actual.Align)
}

func (e *LayoutError) Is(target error) bool { return target == ErrLayoutMismatch }

// NodeDecodeError wraps a per-node decode failure with the node's index and
// kind. Decode joins these; sibling nodes are unaffected.
type NodeDecodeError struct {
	Index int
	Kind  NodeKind
	Err   error
}

func (e *NodeDecodeError) Error() string {
	return fmt.Sprintf("node %d (%s): %v", e.Index, e.Kind, e.Err)
}

func (e *NodeDecodeError) Unwrap() error { return e.Err }
