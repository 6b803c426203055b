package graph

import (
	"unsafe"

	"github.com/vizscript/vizscript/registry"
)

// Layout is the size and alignment a payload occupies in node storage.
// Serialize reports it, the node storage pre-allocates exactly that much, and
// deserialize fills it; the two sides are coupled through the payload struct
// itself rather than a shared schema object.
type Layout struct {
	Size  uintptr
	Align uintptr
}

func layoutOf[P Payload]() Layout {
	var p P
	return Layout{Size: unsafe.Sizeof(p), Align: unsafe.Alignof(p)}
}

// Payload is the type-specific auxiliary data attached to a node beyond its
// generic fields. The concrete variants form a closed set; dispatch is by
// node kind through the dispatch table, never through the payload value.
type Payload interface {
	layout() Layout
}

// TypePayload is carried by nodes that reference a single resolved type
// (TryGetComponent). The handle is a back-reference into registry-owned,
// process-lifetime metadata; the node does not own it.
type TypePayload struct {
	Type *registry.Type
}

func (TypePayload) layout() Layout { return layoutOf[TypePayload]() }

// TypeAndPropertyPayload extends TypePayload with a resolved member handle.
// Function-call kinds resolve the member against the type's function list,
// property-access kinds against the property list.
type TypeAndPropertyPayload struct {
	TypePayload
	Member *registry.Member
}

func (TypeAndPropertyPayload) layout() Layout { return layoutOf[TypeAndPropertyPayload]() }

// ComparisonPayload is carried by Compare nodes.
type ComparisonPayload struct {
	Operator ComparisonOperator
}

func (ComparisonPayload) layout() Layout { return layoutOf[ComparisonPayload]() }

// StartCoroutinePayload extends TypePayload with the coroutine creation mode.
type StartCoroutinePayload struct {
	TypePayload
	Mode CoroutineCreationMode
}

func (StartCoroutinePayload) layout() Layout { return layoutOf[StartCoroutinePayload]() }

// The loader allocates exactly what Serialize reports, so the payload shapes
// are pinned to their reference sizes (64-bit platform). A new field must
// change the matching assert in the same commit.
var (
	_ [8]byte  = [unsafe.Sizeof(TypePayload{})]byte{}
	_ [16]byte = [unsafe.Sizeof(TypeAndPropertyPayload{})]byte{}
	_ [16]byte = [unsafe.Sizeof(StartCoroutinePayload{})]byte{}
)
