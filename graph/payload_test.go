package graph

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestPayloadSizeContract(t *testing.T) {
	// The layout reported by serialize must equal the runtime in-memory
	// layout; both come from the payload struct itself.
	assert.Equal(t, Layout{Size: 8, Align: 8}, TypePayload{}.layout())
	assert.Equal(t, Layout{Size: 16, Align: 8}, TypeAndPropertyPayload{}.layout())
	assert.Equal(t, Layout{Size: 16, Align: 8}, StartCoroutinePayload{}.layout())

	cmp := ComparisonPayload{}.layout()
	assert.Equal(t, uintptr(unsafe.Sizeof(ComparisonPayload{})), cmp.Size)
	assert.Equal(t, uintptr(unsafe.Alignof(ComparisonPayload{})), cmp.Align)
}

func TestSerializeReportsPayloadLayout(t *testing.T) {
	g := &GraphDescription{Nodes: []NodeDescription{
		{Kind: KindBranch},
		{Kind: KindTryGetComponent, TargetTypeName: "RenderComponent"},
		{Kind: KindReflectedFunction, TargetTypeName: "Vec3", TargetPropertyName: "Length"},
		{Kind: KindCompare, Comparison: CompareLess},
		{Kind: KindStartCoroutine, TargetTypeName: "FadeOut", CoroutineMode: CoroutineJoinOrSkip},
	}}

	layouts, err := g.PayloadLayouts()
	assert.NoError(t, err)

	assert.Equal(t, Layout{}, layouts[0])
	assert.Equal(t, TypePayload{}.layout(), layouts[1])
	assert.Equal(t, TypeAndPropertyPayload{}.layout(), layouts[2])
	assert.Equal(t, ComparisonPayload{}.layout(), layouts[3])
	assert.Equal(t, StartCoroutinePayload{}.layout(), layouts[4])
}
