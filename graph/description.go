package graph

// NodeDescription is the compiler-facing, symbolic form of a node. The
// authoring tools produce it, the encoder consumes it, and it is discarded
// after compilation. Names are not resolved at this stage; resolution happens
// against the type registry when the compiled graph is decoded.
//
// A description must not be mutated once handed to Encode.
type NodeDescription struct {
	Kind NodeKind

	// TargetTypeName names the type a Type-carrying node refers to.
	TargetTypeName string

	// TargetPropertyName names the property or function on the target type.
	// Whether it is matched against the property or the function list is
	// decided by the node kind, not by the description.
	TargetPropertyName string

	// Comparison is used by Compare nodes.
	Comparison ComparisonOperator

	// CoroutineMode is used by StartCoroutine nodes.
	CoroutineMode CoroutineCreationMode
}

// GraphDescription is the ordered node list a script compiler emits for one
// graph. Encode walks it sequentially; node indices are stable across the
// encode/decode round trip.
type GraphDescription struct {
	// Name identifies the graph in diagnostics. Not part of the payload
	// stream.
	Name string

	Nodes []NodeDescription
}

// AddNode appends a node description and returns its index.
func (g *GraphDescription) AddNode(desc NodeDescription) int {
	g.Nodes = append(g.Nodes, desc)
	return len(g.Nodes) - 1
}
