package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPayloadInlinePlacement(t *testing.T) {
	arena := &Arena{}
	node := &Node{Kind: KindCompare}

	p := ComparisonPayload{Operator: CompareEqual}
	require.NoError(t, node.SetPayload(p, p.layout(), arena))

	assert.True(t, node.StoredInline())
	assert.Zero(t, arena.Len(), "inline payloads must not touch the arena")
	assert.Equal(t, p, node.Payload(arena))
}

func TestSetPayloadOverflowPlacement(t *testing.T) {
	arena := &Arena{}
	node := &Node{Kind: KindReflectedFunction}

	p := TypeAndPropertyPayload{}
	require.NoError(t, node.SetPayload(p, p.layout(), arena))

	assert.False(t, node.StoredInline())
	assert.Equal(t, 1, arena.Len())
	assert.Equal(t, uintptr(16), arena.BytesReserved())
	assert.Equal(t, Payload(p), node.Payload(arena))
}

func TestSetPayloadLayoutCrossCheck(t *testing.T) {
	arena := &Arena{}
	node := &Node{Kind: KindCompare}

	// A row reporting a stale layout must be rejected before anything is
	// stored.
	err := node.SetPayload(ComparisonPayload{}, Layout{Size: 4, Align: 4}, arena)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLayoutMismatch)

	var layoutErr *LayoutError
	require.ErrorAs(t, err, &layoutErr)
	assert.Equal(t, KindCompare, layoutErr.Kind)
	assert.False(t, node.HasPayload())
	assert.Zero(t, arena.Len())
}

func TestArenaAccounting(t *testing.T) {
	arena := &Arena{}

	for i := 0; i < 3; i++ {
		node := &Node{Kind: KindStartCoroutine}
		p := StartCoroutinePayload{Mode: CoroutineStopOther}
		require.NoError(t, node.SetPayload(p, p.layout(), arena))
	}

	assert.Equal(t, 3, arena.Len())
	assert.Equal(t, uintptr(48), arena.BytesReserved())

	arena.Reset()
	assert.Zero(t, arena.Len())
	assert.Zero(t, arena.BytesReserved())
}

func TestArenaAlignmentPadding(t *testing.T) {
	arena := &Arena{}

	// A 1-byte payload followed by an 8-aligned one forces padding into the
	// accounting.
	n1 := &Node{Kind: KindCompare}
	c := ComparisonPayload{}
	// Force the small payload through the arena by bypassing SetPayload's
	// inline path.
	arena.alloc(c, c.layout())

	n2 := &Node{Kind: KindReflectedFunction}
	p := TypeAndPropertyPayload{}
	require.NoError(t, n2.SetPayload(p, p.layout(), arena))

	_ = n1
	assert.Equal(t, uintptr(1+7+16), arena.BytesReserved())
}

func TestNodeWithoutPayload(t *testing.T) {
	node := &Node{Kind: KindBranch}
	assert.False(t, node.HasPayload())
	assert.Nil(t, node.Payload(&Arena{}))
}
