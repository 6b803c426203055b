package blackboard

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterKeepsExistingValue(t *testing.T) {
	b := New("test")
	b.Register("health", 100.0, FlagNone)
	require.NoError(t, b.Set("health", 42.0))

	// Registering again must not clobber the value, only extend flags.
	b.Register("health", 100.0, FlagSave)

	v, ok := b.Get("health")
	require.True(t, ok)
	assert.Equal(t, 42.0, v)
	assert.Equal(t, FlagSave, b.Flags("health"))
}

func TestSetUnregisteredEntryFails(t *testing.T) {
	b := New("test")
	err := b.Set("missing", 1.0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEntryNotRegistered)
}

func TestGetOr(t *testing.T) {
	b := New("test")
	b.Register("speed", 5.0, FlagNone)

	assert.Equal(t, 5.0, b.GetOr("speed", 0.0))
	assert.Equal(t, 0.0, b.GetOr("missing", 0.0))
}

func TestFlagsOfMissingEntry(t *testing.T) {
	b := New("test")
	assert.Equal(t, FlagInvalid, b.Flags("missing"))
}

func TestChangeCounters(t *testing.T) {
	b := New("test")
	assert.Zero(t, b.ChangeCounter())

	b.Register("a", 0.0, FlagNone)
	b.Register("b", 0.0, FlagNone)
	assert.Equal(t, uint32(2), b.ChangeCounter())
	assert.Zero(t, b.EntryChangeCounter())

	require.NoError(t, b.Set("a", 1.0))
	require.NoError(t, b.Set("a", 2.0))
	assert.Equal(t, uint32(2), b.EntryChangeCounter())

	// Writing the same value again is not a change.
	require.NoError(t, b.Set("a", 2.0))
	assert.Equal(t, uint32(2), b.EntryChangeCounter())

	e, ok := b.Entry("a")
	require.True(t, ok)
	assert.Equal(t, uint32(2), e.ChangeCounter)

	b.Unregister("a")
	assert.Equal(t, uint32(3), b.ChangeCounter())
}

func TestOnEntryChangedFiresOnlyWhenFlagged(t *testing.T) {
	b := New("test")
	b.Register("watched", 0.0, FlagOnChangeEvent)
	b.Register("silent", 0.0, FlagNone)

	var events []EntryEvent
	b.OnEntryChanged(func(e EntryEvent) { events = append(events, e) })

	require.NoError(t, b.Set("watched", 1.0))
	require.NoError(t, b.Set("silent", 1.0))

	require.Len(t, events, 1)
	assert.Equal(t, "test", events[0].Board)
	assert.Equal(t, "watched", events[0].Name)
	assert.Equal(t, 0.0, events[0].OldValue)
	assert.Equal(t, 1.0, events[0].NewValue)
}

func TestOnEntryChangedSkipsUnchangedValue(t *testing.T) {
	b := New("test")
	b.Register("watched", 1.0, FlagOnChangeEvent)

	var count int
	b.OnEntryChanged(func(EntryEvent) { count++ })

	require.NoError(t, b.Set("watched", 1.0))
	assert.Zero(t, count)

	// SetForce broadcasts even without a change.
	require.NoError(t, b.SetForce("watched", 1.0))
	assert.Equal(t, 1, count)
}

func TestSubscriberCanReadBoard(t *testing.T) {
	// Subscribers run outside the lock, so reading the board back must not
	// deadlock.
	b := New("test")
	b.Register("watched", 0.0, FlagOnChangeEvent)
	b.Register("other", 7.0, FlagNone)

	var seen any
	b.OnEntryChanged(func(EntryEvent) {
		seen, _ = b.Get("other")
	})

	require.NoError(t, b.Set("watched", 1.0))
	assert.Equal(t, 7.0, seen)
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	b := New("test")
	b.Register("health", 75.0, FlagSave)
	b.Register("name", "hero", FlagSave|FlagOnChangeEvent)
	b.Register("alive", true, FlagSave)
	b.Register("transient", 1.0, FlagNone)

	var buf bytes.Buffer
	require.NoError(t, b.Save(&buf))

	restored := New("restored")
	require.NoError(t, restored.Restore(&buf))

	entries := restored.Entries()
	require.Len(t, entries, 3, "unflagged entries must not be saved")
	assert.Equal(t, 75.0, entries["health"].Value)
	assert.Equal(t, "hero", entries["name"].Value)
	assert.Equal(t, true, entries["alive"].Value)
	assert.Equal(t, FlagSave|FlagOnChangeEvent, entries["name"].Flags)
}

func TestRestoreMergesAndOverwrites(t *testing.T) {
	src := New("src")
	src.Register("health", 10.0, FlagSave)

	var buf bytes.Buffer
	require.NoError(t, src.Save(&buf))

	dst := New("dst")
	dst.Register("health", 99.0, FlagNone)
	dst.Register("mana", 50.0, FlagNone)
	require.NoError(t, dst.Restore(&buf))

	// Overlapping entries are overwritten, value and flags both.
	v, _ := dst.Get("health")
	assert.Equal(t, 10.0, v)
	assert.Equal(t, FlagSave, dst.Flags("health"))

	// Entries absent from the stream survive.
	v, _ = dst.Get("mana")
	assert.Equal(t, 50.0, v)
}

func TestRestoreIsEventSilent(t *testing.T) {
	src := New("src")
	src.Register("watched", 5.0, FlagSave|FlagOnChangeEvent)

	var buf bytes.Buffer
	require.NoError(t, src.Save(&buf))

	dst := New("dst")
	dst.Register("watched", 1.0, FlagOnChangeEvent)

	var events []EntryEvent
	dst.OnEntryChanged(func(e EntryEvent) { events = append(events, e) })

	require.NoError(t, dst.Restore(&buf))

	// The value and counter moved, but subscribers heard nothing.
	assert.Empty(t, events)
	v, _ := dst.Get("watched")
	assert.Equal(t, 5.0, v)
	e, _ := dst.Entry("watched")
	assert.Equal(t, uint32(1), e.ChangeCounter)

	// A live write afterwards still broadcasts.
	require.NoError(t, dst.Set("watched", 6.0))
	require.Len(t, events, 1)
	assert.Equal(t, 6.0, events[0].NewValue)
}

func TestSaveRejectsUnsupportedValue(t *testing.T) {
	b := New("test")
	b.Register("bad", struct{}{}, FlagSave)

	var buf bytes.Buffer
	err := b.Save(&buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
}

func TestRestoreTruncatedStream(t *testing.T) {
	b := New("src")
	b.Register("health", 1.0, FlagSave)

	var buf bytes.Buffer
	require.NoError(t, b.Save(&buf))

	dst := New("dst")
	err := dst.Restore(bytes.NewReader(buf.Bytes()[:buf.Len()-2]))
	assert.Error(t, err)
}

func TestConcurrentSetAndGet(t *testing.T) {
	b := New("test")
	b.Register("counter", 0.0, FlagNone)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = b.Set("counter", float64(n*100+j))
				_, _ = b.Get("counter")
			}
		}(i)
	}
	wg.Wait()

	e, ok := b.Entry("counter")
	require.True(t, ok)
	assert.NotZero(t, e.ChangeCounter)
}

func TestGetOrCreateGlobal(t *testing.T) {
	b1 := GetOrCreateGlobal("scores-TestGetOrCreateGlobal")
	b2 := GetOrCreateGlobal("scores-TestGetOrCreateGlobal")
	assert.Same(t, b1, b2)

	found, ok := FindGlobal("scores-TestGetOrCreateGlobal")
	require.True(t, ok)
	assert.Same(t, b1, found)

	_, ok = FindGlobal("never-created")
	assert.False(t, ok)
}
