package graph

// InlineCapacity is the byte capacity of a node's inline payload slot, sized
// for the common case (a single type handle, or a comparison operator).
// Larger payloads go to the graph-owned arena so that the common path stays
// allocation-free without every node paying for the largest variant.
const InlineCapacity = 8

// Arena holds the overflow payloads of one graph. It is owned by the graph
// and torn down with it, which keeps overflow storage single-ownership: a
// node refers into the arena by index and never frees anything itself.
//
// The arena also keeps byte-level accounting of what the reported layouts
// reserved, so storage consumption stays checkable against the serialize
// reports.
type Arena struct {
	slots []Payload
	used  uintptr
}

func (a *Arena) alloc(p Payload, l Layout) int32 {
	if l.Align > 1 {
		a.used = (a.used + l.Align - 1) &^ (l.Align - 1)
	}
	a.used += l.Size
	a.slots = append(a.slots, p)
	return int32(len(a.slots))
}

func (a *Arena) payload(ref int32) Payload {
	return a.slots[ref-1]
}

// Len returns the number of overflow payloads held.
func (a *Arena) Len() int { return len(a.slots) }

// BytesReserved returns the aligned byte total the reported layouts claimed.
func (a *Arena) BytesReserved() uintptr { return a.used }

// Reset drops all overflow payloads. Any node still referring into the arena
// must be discarded together with it.
func (a *Arena) Reset() {
	a.slots = a.slots[:0]
	a.used = 0
}

// Node is one compiled graph node: its kind plus payload storage. Payloads
// at most InlineCapacity bytes live in the inline slot; larger ones live in
// the graph's arena, referenced by index.
type Node struct {
	Kind NodeKind

	inline   Payload
	overflow int32 // 1-based arena ref; 0 means no overflow payload
}

// SetPayload stores p using the layout the serialize side reported. The
// layout is cross-checked against the variant's real layout; a mismatch
// means the dispatch row's two halves have drifted apart and nothing is
// stored.
func (n *Node) SetPayload(p Payload, l Layout, arena *Arena) error {
	if actual := p.layout(); l != actual {
		return &LayoutError{Kind: n.Kind, Reported: l, Actual: actual}
	}
	if l.Size <= InlineCapacity {
		n.inline = p
		n.overflow = 0
		return nil
	}
	n.overflow = arena.alloc(p, l)
	n.inline = nil
	return nil
}

// HasPayload reports whether a payload was constructed for this node.
// A node whose deserialize failed has none and must not be executed.
func (n *Node) HasPayload() bool {
	return n.inline != nil || n.overflow != 0
}

// StoredInline reports whether the payload sits in the inline slot.
func (n *Node) StoredInline() bool { return n.inline != nil }

// Payload returns the stored payload, or nil. The arena must be the one the
// payload was stored with, i.e. the owning graph's.
func (n *Node) Payload(arena *Arena) Payload {
	if n.inline != nil {
		return n.inline
	}
	if n.overflow != 0 {
		return arena.payload(n.overflow)
	}
	return nil
}
