package graph

import (
	"errors"
	"fmt"
	"io"

	"github.com/vizscript/vizscript/log"
	"github.com/vizscript/vizscript/registry"
	"github.com/vizscript/vizscript/wire"
)

// Encode writes the compiled binary form of the graph description: a node
// count, then per node its kind ordinal followed by the payload fields that
// kind's dispatch row produces. Name resolution is not attempted here.
//
// Encoding and decoding of a single graph are sequential, single-threaded
// walks; independent graphs may be processed concurrently.
func (g *GraphDescription) Encode(w io.Writer) error {
	ww := wire.NewWriter(w)
	if err := ww.WriteUint32(uint32(len(g.Nodes))); err != nil {
		return err
	}
	for i := range g.Nodes {
		desc := &g.Nodes[i]
		if err := ww.WriteByte(byte(desc.Kind)); err != nil {
			return err
		}
		if _, err := Dispatch(desc.Kind).Serialize(desc, ww); err != nil {
			return fmt.Errorf("graph %q: encode node %d (%s): %w", g.Name, i, desc.Kind, err)
		}
	}
	return nil
}

// PayloadLayouts runs the serialize pass against a discarding sink and
// returns the storage layout each node's payload will need. Kinds without a
// payload report a zero layout.
func (g *GraphDescription) PayloadLayouts() ([]Layout, error) {
	ww := wire.NewWriter(io.Discard)
	layouts := make([]Layout, len(g.Nodes))
	for i := range g.Nodes {
		desc := &g.Nodes[i]
		l, err := Dispatch(desc.Kind).Serialize(desc, ww)
		if err != nil {
			return nil, fmt.Errorf("graph %q: measure node %d (%s): %w", g.Name, i, desc.Kind, err)
		}
		layouts[i] = l
	}
	return layouts, nil
}

// Graph is the loaded, executable form: nodes with constructed payloads plus
// the arena owning their overflow storage. The arena's lifetime equals the
// graph's; dropping the graph releases all payload storage at once.
type Graph struct {
	Nodes []Node

	arena Arena
}

// NodePayload returns the payload of node i, or nil if the node carries none
// or its decode failed.
func (g *Graph) NodePayload(i int) Payload {
	return g.Nodes[i].Payload(&g.arena)
}

// ArenaBytes returns the overflow bytes the reported layouts reserved.
func (g *Graph) ArenaBytes() uintptr { return g.arena.BytesReserved() }

// ArenaLen returns the number of payloads in overflow storage.
func (g *Graph) ArenaLen() int { return g.arena.Len() }

// Decode reads a compiled graph and reconstructs each node's payload,
// resolving names against reg.
//
// A name that fails to resolve aborts only that node: its payload stays
// unconstructed (HasPayload reports false), the failure is recorded, and the
// remaining nodes still load because deserializers drain their wire fields
// before resolving. The joined per-node errors are returned alongside the
// graph; the caller decides whether one bad node invalidates the whole
// graph. Stream-level failures are fatal and return a nil graph.
func Decode(r io.Reader, reg *registry.Registry) (*Graph, error) {
	rr := wire.NewReader(r)
	count, err := rr.ReadUint32()
	if err != nil {
		return nil, err
	}

	g := &Graph{Nodes: make([]Node, count)}
	var nodeErrs []error
	for i := range g.Nodes {
		kindByte, err := rr.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("decode node %d: %w", i, err)
		}
		kind := NodeKind(kindByte)
		if kind >= KindCount {
			return nil, fmt.Errorf("decode node %d: invalid node kind ordinal %d", i, kindByte)
		}

		node := &g.Nodes[i]
		node.Kind = kind
		if err := Dispatch(kind).Deserialize(node, rr, reg, &g.arena); err != nil {
			var resErr *NameResolutionError
			if errors.As(err, &resErr) {
				log.Error("graph: node %d (%s): %v", i, kind, err)
				nodeErrs = append(nodeErrs, &NodeDecodeError{Index: i, Kind: kind, Err: err})
				continue
			}
			return nil, fmt.Errorf("decode node %d (%s): %w", i, kind, err)
		}
	}

	return g, errors.Join(nodeErrs...)
}
