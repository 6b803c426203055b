// Package registry implements the runtime type registry that compiled script
// graphs resolve their symbolic references against.
//
// Types are registered once at startup and live for the whole process; graph
// nodes keep back-references into the registry without owning them. Lookups
// are safe for concurrent readers, so independent graphs may be loaded in
// parallel against the same registry.
package registry

import (
	"fmt"
	"sync"
)

// MemberKind distinguishes properties from functions on a type.
type MemberKind uint8

const (
	// MemberProperty is a data member exposed by a type.
	MemberProperty MemberKind = iota
	// MemberFunction is a callable member exposed by a type.
	MemberFunction
)

// String returns the lower-case kind name used in diagnostics.
func (k MemberKind) String() string {
	if k == MemberFunction {
		return "function"
	}
	return "property"
}

// Member is a property or function handle on a registered type. Members are
// owned by their Type and live as long as the registry does.
type Member struct {
	name string
	kind MemberKind
}

// NewProperty creates a property member handle.
func NewProperty(name string) *Member {
	return &Member{name: name, kind: MemberProperty}
}

// NewFunction creates a function member handle.
func NewFunction(name string) *Member {
	return &Member{name: name, kind: MemberFunction}
}

// Name returns the member name used for matching.
func (m *Member) Name() string { return m.name }

// Kind returns whether the member is a property or a function.
func (m *Member) Kind() MemberKind { return m.kind }

// Type is a registered type handle. The property and function lists keep
// their registration order; payload deserialization matches against them by
// name with a linear scan.
type Type struct {
	name       string
	properties []*Member
	functions  []*Member
}

// NewType creates a type handle with the given members. Members with
// MemberProperty kind land in the property list, the rest in the function
// list, preserving relative order.
func NewType(name string, members ...*Member) *Type {
	t := &Type{name: name}
	for _, m := range members {
		if m.kind == MemberFunction {
			t.functions = append(t.functions, m)
		} else {
			t.properties = append(t.properties, m)
		}
	}
	return t
}

// Name returns the registered type name.
func (t *Type) Name() string { return t.name }

// Properties returns the ordered property list.
func (t *Type) Properties() []*Member { return t.properties }

// Functions returns the ordered function list.
func (t *Type) Functions() []*Member { return t.functions }

// Registry maps type names to type handles. The zero value is not usable;
// call New.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*Type
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{types: make(map[string]*Type)}
}

// Register adds a type to the registry. Registering the same name twice is
// an error; types are immutable once registered.
func (r *Registry) Register(t *Type) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.types[t.name]; ok {
		return fmt.Errorf("registry: type %q already registered", t.name)
	}
	r.types[t.name] = t
	return nil
}

// MustRegister is Register for startup code where a duplicate is a bug.
func (r *Registry) MustRegister(t *Type) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Resolve looks up a type by name.
func (r *Registry) Resolve(name string) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// globalRegistry backs the package-level convenience accessors.
var globalRegistry = New()

// Global returns the process-wide registry instance.
func Global() *Registry {
	return globalRegistry
}
