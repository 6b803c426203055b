package graph

import (
	"fmt"
	"strings"

	"github.com/vizscript/vizscript/registry"
	"github.com/vizscript/vizscript/wire"
)

// SerializeFunc writes a description's payload fields to the stream in fixed
// field order and reports the payload's storage layout. It never resolves
// names; a well-formed description cannot fail here except on sink errors.
type SerializeFunc func(desc *NodeDescription, w *wire.Writer) (Layout, error)

// DeserializeFunc reads the fields SerializeFunc wrote, resolves names
// against the registry, and stores the reconstructed payload on the node,
// overflowing into the arena when it exceeds the inline slot.
//
// Implementations consume every wire field before resolving anything, so a
// failed lookup leaves the stream positioned at the next node.
type DeserializeFunc func(node *Node, r *wire.Reader, reg *registry.Registry, arena *Arena) error

// ToTextFunc appends a short human-readable fragment for the description.
// It operates on the authoring-time description, not a decoded payload, so
// it is available pre-compile. Pure formatting, no failure mode.
type ToTextFunc func(desc *NodeDescription, sb *strings.Builder)

// DispatchRow is the triple of operations governing one node kind. Kinds
// without a payload get no-op entries rather than nils, so callers never
// nil-check.
type DispatchRow struct {
	Serialize   SerializeFunc
	Deserialize DeserializeFunc
	ToText      ToTextFunc
}

// dispatchTable has exactly one row per NodeKind; the array length pins it
// to the enum, so a new kind cannot be added without the table compiling
// against it. Unlisted kinds carry no payload and are filled with no-ops at
// init.
var dispatchTable = [KindCount]DispatchRow{
	KindReflectedFunction: {serializeTypeAndProperty, deserializeTypeAndMember(registry.MemberFunction), typeAndPropertyText},
	KindInplaceCoroutine:  {serializeTypeAndProperty, deserializeTypeAndMember(registry.MemberFunction), typeAndPropertyText},
	KindGetProperty:       {serializeTypeAndProperty, deserializeTypeAndMember(registry.MemberProperty), typeAndPropertyText},
	KindSetProperty:       {serializeTypeAndProperty, deserializeTypeAndMember(registry.MemberProperty), typeAndPropertyText},
	KindCompare:           {serializeComparison, deserializeComparison, comparisonText},
	KindTryGetComponent:   {serializeType, deserializeType, typeText},
	KindStartCoroutine:    {serializeStartCoroutine, deserializeStartCoroutine, startCoroutineText},
}

func init() {
	for i := range dispatchTable {
		row := &dispatchTable[i]
		if row.Serialize == nil {
			row.Serialize = serializeNone
		}
		if row.Deserialize == nil {
			row.Deserialize = deserializeNone
		}
		if row.ToText == nil {
			row.ToText = noText
		}
	}
}

// Dispatch returns the row for kind. A kind outside the table is a
// programming error, not a recoverable condition.
func Dispatch(kind NodeKind) DispatchRow {
	if kind >= KindCount {
		panic(fmt.Sprintf("graph: node kind %d out of range", uint8(kind)))
	}
	return dispatchTable[kind]
}

// no-payload row

func serializeNone(*NodeDescription, *wire.Writer) (Layout, error) { return Layout{}, nil }

func deserializeNone(*Node, *wire.Reader, *registry.Registry, *Arena) error { return nil }

func noText(*NodeDescription, *strings.Builder) {}

// Type

func serializeType(desc *NodeDescription, w *wire.Writer) (Layout, error) {
	if err := w.WriteString(desc.TargetTypeName); err != nil {
		return Layout{}, err
	}
	return layoutOf[TypePayload](), nil
}

func resolveType(name string, reg *registry.Registry) (*registry.Type, error) {
	typ, ok := reg.Resolve(name)
	if !ok {
		return nil, &NameResolutionError{Symbol: name, Want: "type"}
	}
	return typ, nil
}

func deserializeType(node *Node, r *wire.Reader, reg *registry.Registry, arena *Arena) error {
	name, err := r.ReadString()
	if err != nil {
		return err
	}
	typ, err := resolveType(name, reg)
	if err != nil {
		return err
	}
	return node.SetPayload(TypePayload{Type: typ}, layoutOf[TypePayload](), arena)
}

func typeText(desc *NodeDescription, sb *strings.Builder) {
	if desc.TargetTypeName != "" {
		sb.WriteString(desc.TargetTypeName)
	}
}

// TypeAndProperty

func serializeTypeAndProperty(desc *NodeDescription, w *wire.Writer) (Layout, error) {
	// Base fields first, then our own; the base layout report is superseded.
	if _, err := serializeType(desc, w); err != nil {
		return Layout{}, err
	}
	if err := w.WriteString(desc.TargetPropertyName); err != nil {
		return Layout{}, err
	}
	return layoutOf[TypeAndPropertyPayload](), nil
}

func findMember(members []*registry.Member, name string) *registry.Member {
	for _, m := range members {
		if m.Name() == name {
			return m
		}
	}
	return nil
}

func deserializeTypeAndMember(kind registry.MemberKind) DeserializeFunc {
	return func(node *Node, r *wire.Reader, reg *registry.Registry, arena *Arena) error {
		typeName, err := r.ReadString()
		if err != nil {
			return err
		}
		memberName, err := r.ReadString()
		if err != nil {
			return err
		}

		typ, err := resolveType(typeName, reg)
		if err != nil {
			return err
		}

		members := typ.Properties()
		if kind == registry.MemberFunction {
			members = typ.Functions()
		}
		member := findMember(members, memberName)
		if member == nil {
			return &NameResolutionError{Symbol: memberName, Want: kind.String(), OwnerType: typ.Name()}
		}

		payload := TypeAndPropertyPayload{TypePayload: TypePayload{Type: typ}, Member: member}
		return node.SetPayload(payload, layoutOf[TypeAndPropertyPayload](), arena)
	}
}

func typeAndPropertyText(desc *NodeDescription, sb *strings.Builder) {
	typeText(desc, sb)
	if desc.TargetPropertyName != "" {
		sb.WriteByte('.')
		sb.WriteString(desc.TargetPropertyName)
	}
}

// Comparison

func serializeComparison(desc *NodeDescription, w *wire.Writer) (Layout, error) {
	if err := w.WriteByte(byte(desc.Comparison)); err != nil {
		return Layout{}, err
	}
	return layoutOf[ComparisonPayload](), nil
}

func deserializeComparison(node *Node, r *wire.Reader, _ *registry.Registry, arena *Arena) error {
	b, err := r.ReadByte()
	if err != nil {
		return err
	}
	if ComparisonOperator(b) >= comparisonOperatorCount {
		return fmt.Errorf("invalid comparison operator ordinal %d", b)
	}
	return node.SetPayload(ComparisonPayload{Operator: ComparisonOperator(b)}, layoutOf[ComparisonPayload](), arena)
}

func comparisonText(desc *NodeDescription, sb *strings.Builder) {
	sb.WriteByte(' ')
	sb.WriteString(desc.Comparison.String())
}

// StartCoroutine

func serializeStartCoroutine(desc *NodeDescription, w *wire.Writer) (Layout, error) {
	if _, err := serializeType(desc, w); err != nil {
		return Layout{}, err
	}
	if err := w.WriteByte(byte(desc.CoroutineMode)); err != nil {
		return Layout{}, err
	}
	return layoutOf[StartCoroutinePayload](), nil
}

func deserializeStartCoroutine(node *Node, r *wire.Reader, reg *registry.Registry, arena *Arena) error {
	typeName, err := r.ReadString()
	if err != nil {
		return err
	}
	mode, err := r.ReadByte()
	if err != nil {
		return err
	}
	if CoroutineCreationMode(mode) >= coroutineCreationModeCount {
		return fmt.Errorf("invalid coroutine creation mode ordinal %d", mode)
	}

	typ, err := resolveType(typeName, reg)
	if err != nil {
		return err
	}

	payload := StartCoroutinePayload{TypePayload: TypePayload{Type: typ}, Mode: CoroutineCreationMode(mode)}
	return node.SetPayload(payload, layoutOf[StartCoroutinePayload](), arena)
}

func startCoroutineText(desc *NodeDescription, sb *strings.Builder) {
	typeText(desc, sb)
	sb.WriteByte(' ')
	sb.WriteString(desc.CoroutineMode.String())
}
