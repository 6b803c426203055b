// Package blackboard implements the key/value store scripts and game
// systems use to exchange small pieces of state.
//
// Some systems write values, others read them; change events let readers
// react without polling. Entries carry flags controlling persistence and
// event broadcast. Boards can be private or registered globally by name.
package blackboard

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"sync"

	"github.com/vizscript/vizscript/wire"
)

// EntryFlags control per-entry behavior.
type EntryFlags uint16

const (
	FlagNone EntryFlags = 0

	// FlagSave includes the entry in Save/Restore.
	FlagSave EntryFlags = 1 << 0

	// FlagOnChangeEvent broadcasts an EntryEvent when the value changes.
	FlagOnChangeEvent EntryFlags = 1 << 1

	FlagUser0 EntryFlags = 1 << 7
	FlagUser1 EntryFlags = 1 << 8
	FlagUser2 EntryFlags = 1 << 9
	FlagUser3 EntryFlags = 1 << 10
	FlagUser4 EntryFlags = 1 << 11
	FlagUser5 EntryFlags = 1 << 12
	FlagUser6 EntryFlags = 1 << 13
	FlagUser7 EntryFlags = 1 << 14

	// FlagInvalid is returned by Flags for entries that don't exist.
	FlagInvalid EntryFlags = 1 << 15
)

// ErrEntryNotRegistered is returned by Set for unknown entry names; values
// must be registered before they can be written.
var ErrEntryNotRegistered = errors.New("blackboard: entry not registered")

// Entry is a single named value with its flags. ChangeCounter increases on
// every value change, so readers can detect modifications cheaply.
type Entry struct {
	Value         any
	Flags         EntryFlags
	ChangeCounter uint32
}

// EntryEvent describes a value change on an entry flagged with
// FlagOnChangeEvent.
type EntryEvent struct {
	Board    string
	Name     string
	OldValue any
	NewValue any
}

// Blackboard is a mutex-guarded key/value store. Safe for concurrent use;
// change subscribers are invoked outside the lock.
type Blackboard struct {
	mu      sync.Mutex
	name    string
	entries map[string]*Entry

	// boardCounter increases when entries are added or removed,
	// entryCounter when any value changes.
	boardCounter uint32
	entryCounter uint32

	subscribers []func(EntryEvent)
}

// New creates an empty blackboard with the given name.
func New(name string) *Blackboard {
	return &Blackboard{name: name, entries: make(map[string]*Entry)}
}

// Name returns the board name.
func (b *Blackboard) Name() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.name
}

// SetName renames the board. For globally registered boards this does not
// change the name they were registered under.
func (b *Blackboard) SetName(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.name = name
}

// Register adds an entry with an initial value and flags. If the entry
// already exists its flags are extended but the value is left unchanged, so
// Register can be used to guarantee an entry exists without clobbering it.
func (b *Blackboard) Register(name string, initial any, flags EntryFlags) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if e, ok := b.entries[name]; ok {
		e.Flags |= flags
		return
	}
	b.entries[name] = &Entry{Value: initial, Flags: flags}
	b.boardCounter++
}

// Unregister removes the named entry. Unknown names are ignored.
func (b *Blackboard) Unregister(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.entries[name]; ok {
		delete(b.entries, name)
		b.boardCounter++
	}
}

// UnregisterAll removes every entry.
func (b *Blackboard) UnregisterAll() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.entries) > 0 {
		b.entries = make(map[string]*Entry)
		b.boardCounter++
	}
}

// Set writes the value of a registered entry. If the entry carries
// FlagOnChangeEvent and the value actually differs, subscribers are
// notified; an unchanged value broadcasts nothing.
func (b *Blackboard) Set(name string, value any) error {
	return b.set(name, value, false)
}

// SetForce is Set but broadcasts even when the new value equals the old.
func (b *Blackboard) SetForce(name string, value any) error {
	return b.set(name, value, true)
}

func (b *Blackboard) set(name string, value any, force bool) error {
	b.mu.Lock()

	e, ok := b.entries[name]
	if !ok {
		b.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrEntryNotRegistered, name)
	}

	old := e.Value
	changed := !valuesEqual(old, value)
	if changed {
		e.Value = value
		e.ChangeCounter++
		b.entryCounter++
	}

	notify := e.Flags&FlagOnChangeEvent != 0 && (changed || force)
	var subs []func(EntryEvent)
	if notify {
		subs = append(subs, b.subscribers...)
	}
	boardName := b.name
	b.mu.Unlock()

	for _, fn := range subs {
		fn(EntryEvent{Board: boardName, Name: name, OldValue: old, NewValue: value})
	}
	return nil
}

// valuesEqual compares entry values without panicking on uncomparable
// types; a map or slice value always counts as changed.
func valuesEqual(a, b any) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta != nil && !ta.Comparable() {
		return false
	}
	return a == b
}

// Get returns the entry value, or false if no such entry exists.
func (b *Blackboard) Get(name string) (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[name]
	if !ok {
		return nil, false
	}
	return e.Value, true
}

// GetOr returns the entry value, or fallback if no such entry exists.
func (b *Blackboard) GetOr(name string, fallback any) any {
	if v, ok := b.Get(name); ok {
		return v
	}
	return fallback
}

// Entry returns a snapshot of the named entry.
func (b *Blackboard) Entry(name string) (Entry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[name]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Flags returns the entry's flags, or FlagInvalid if it doesn't exist.
func (b *Blackboard) Flags(name string) EntryFlags {
	b.mu.Lock()
	defer b.mu.Unlock()

	if e, ok := b.entries[name]; ok {
		return e.Flags
	}
	return FlagInvalid
}

// Entries returns a snapshot of all entries.
func (b *Blackboard) Entries() map[string]Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make(map[string]Entry, len(b.entries))
	for name, e := range b.entries {
		out[name] = *e
	}
	return out
}

// OnEntryChanged subscribes to change events of FlagOnChangeEvent entries.
// Subscribers run synchronously on the writing goroutine, outside the board
// lock.
func (b *Blackboard) OnEntryChanged(fn func(EntryEvent)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// ChangeCounter increases whenever an entry is added or removed.
func (b *Blackboard) ChangeCounter() uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.boardCounter
}

// EntryChangeCounter increases whenever any entry's value changes.
func (b *Blackboard) EntryChangeCounter() uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.entryCounter
}

// value tags on the wire
const (
	valueBool byte = iota
	valueFloat64
	valueString
	valueInt64
)

func writeValue(w *wire.Writer, v any) error {
	switch v := v.(type) {
	case bool:
		if err := w.WriteByte(valueBool); err != nil {
			return err
		}
		if v {
			return w.WriteByte(1)
		}
		return w.WriteByte(0)
	case float64:
		if err := w.WriteByte(valueFloat64); err != nil {
			return err
		}
		return w.WriteFloat64(v)
	case string:
		if err := w.WriteByte(valueString); err != nil {
			return err
		}
		return w.WriteString(v)
	case int:
		if err := w.WriteByte(valueInt64); err != nil {
			return err
		}
		return w.WriteFloat64(float64(v))
	case int64:
		if err := w.WriteByte(valueInt64); err != nil {
			return err
		}
		return w.WriteFloat64(float64(v))
	default:
		return fmt.Errorf("blackboard: unsupported value type %T", v)
	}
}

func readValue(r *wire.Reader) (any, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case valueBool:
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		return b != 0, nil
	case valueFloat64:
		return r.ReadFloat64()
	case valueString:
		return r.ReadString()
	case valueInt64:
		f, err := r.ReadFloat64()
		if err != nil {
			return nil, err
		}
		return int64(f), nil
	default:
		return nil, fmt.Errorf("blackboard: unknown value tag %d", tag)
	}
}

// Save writes all FlagSave entries to the stream. Entries without the flag
// are skipped.
func (b *Blackboard) Save(out io.Writer) error {
	b.mu.Lock()
	type saved struct {
		name string
		e    Entry
	}
	var entries []saved
	for name, e := range b.entries {
		if e.Flags&FlagSave != 0 {
			entries = append(entries, saved{name: name, e: *e})
		}
	}
	b.mu.Unlock()

	w := wire.NewWriter(out)
	if err := w.WriteUint32(uint32(len(entries))); err != nil {
		return err
	}
	for _, s := range entries {
		if err := w.WriteString(s.name); err != nil {
			return err
		}
		if err := w.WriteUint32(uint32(s.e.Flags)); err != nil {
			return err
		}
		if err := writeValue(w, s.e.Value); err != nil {
			return fmt.Errorf("entry %q: %w", s.name, err)
		}
	}
	return nil
}

// Restore reads entries from the stream and adds them to the board.
// Existing entries that overlap are overwritten, values and flags both;
// entries not present in the stream are kept. Restore is event-silent:
// change counters advance, but no EntryEvent fires even for entries flagged
// FlagOnChangeEvent, so subscribers only ever observe live Set calls.
func (b *Blackboard) Restore(in io.Reader) error {
	r := wire.NewReader(in)
	count, err := r.ReadUint32()
	if err != nil {
		return err
	}

	for i := uint32(0); i < count; i++ {
		name, err := r.ReadString()
		if err != nil {
			return err
		}
		flags, err := r.ReadUint32()
		if err != nil {
			return err
		}
		value, err := readValue(r)
		if err != nil {
			return fmt.Errorf("entry %q: %w", name, err)
		}

		b.mu.Lock()
		if e, ok := b.entries[name]; ok {
			e.Value = value
			e.Flags = EntryFlags(flags)
			e.ChangeCounter++
			b.entryCounter++
		} else {
			b.entries[name] = &Entry{Value: value, Flags: EntryFlags(flags)}
			b.boardCounter++
		}
		b.mu.Unlock()
	}
	return nil
}
