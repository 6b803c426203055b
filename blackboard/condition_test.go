package blackboard

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vizscript/vizscript/graph"
	"github.com/vizscript/vizscript/wire"
)

func TestConditionIsMet(t *testing.T) {
	b := New("test")
	b.Register("health", 30.0, FlagNone)
	b.Register("alive", true, FlagNone)
	b.Register("name", "hero", FlagNone)

	tests := []struct {
		name string
		cond Condition
		want bool
	}{
		{"less true", Condition{"health", graph.CompareLess, 50}, true},
		{"less false", Condition{"health", graph.CompareLess, 10}, false},
		{"equal", Condition{"health", graph.CompareEqual, 30}, true},
		{"bool as one", Condition{"alive", graph.CompareEqual, 1}, true},
		{"missing entry", Condition{"mana", graph.CompareEqual, 0}, false},
		{"non-numeric", Condition{"name", graph.CompareEqual, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cond.IsMet(b))
		})
	}
}

func TestConditionSaveLoadRoundTrip(t *testing.T) {
	c := Condition{EntryName: "health", Operator: graph.CompareGreaterEqual, Value: 25}

	var buf bytes.Buffer
	require.NoError(t, c.Save(&buf))

	var loaded Condition
	require.NoError(t, loaded.Load(&buf))
	assert.Equal(t, c, loaded)
}

func TestConditionLoadRejectsBadOperator(t *testing.T) {
	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	require.NoError(t, w.WriteString("health"))
	require.NoError(t, w.WriteFloat64(1))
	require.NoError(t, w.WriteByte(200))

	var c Condition
	err := c.Load(&buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operator")
}
