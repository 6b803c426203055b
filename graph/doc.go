// Package graph implements the node-payload dispatch system of the
// vizscript graph compiler and loader.
//
// A script compiler produces a GraphDescription: an ordered list of symbolic
// node descriptions (target type name, property or function name, comparison
// operator, coroutine mode). Encode turns it into a compact binary stream.
// Decode reads the stream back, resolves every name against a
// registry.Registry, and constructs each node's typed payload in either the
// node's inline slot or the graph-owned arena.
//
// Dispatch is table-driven: one DispatchRow (serialize, deserialize,
// to-text) per NodeKind, selected by indexing a fixed array with the kind.
// There is no per-payload dynamic dispatch and no payload lookup through an
// object header; kinds without a payload get no-op rows.
//
// The size and alignment a serialize operation reports are, by construction,
// the payload struct's own size and alignment, and node storage re-checks
// the two at decode time. A name that fails to resolve aborts only the
// owning node; sibling nodes still load and the caller decides whether the
// graph survives.
//
// Within one graph, encode and decode are strictly sequential. Independent
// graphs may be processed concurrently as long as they share a registry only
// for reading, which is all the loader ever does.
package graph
