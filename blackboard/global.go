package blackboard

import "sync"

var (
	globalMu     sync.Mutex
	globalBoards = make(map[string]*Blackboard)
)

// GetOrCreateGlobal returns the globally registered board with the given
// name, creating it if necessary. Global boards live for the duration of
// the process; there is no way to unregister them.
func GetOrCreateGlobal(name string) *Blackboard {
	globalMu.Lock()
	defer globalMu.Unlock()

	if b, ok := globalBoards[name]; ok {
		return b
	}
	b := New(name)
	globalBoards[name] = b
	return b
}

// FindGlobal returns the globally registered board with the given name,
// or false if none was created.
func FindGlobal(name string) (*Blackboard, bool) {
	globalMu.Lock()
	defer globalMu.Unlock()

	b, ok := globalBoards[name]
	return b, ok
}
