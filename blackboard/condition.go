package blackboard

import (
	"fmt"
	"io"

	"github.com/vizscript/vizscript/graph"
	"github.com/vizscript/vizscript/wire"
)

// Condition compares a board entry against a constant. Game logic uses
// conditions to gate state transitions on blackboard values.
type Condition struct {
	EntryName string
	Operator  graph.ComparisonOperator
	Value     float64
}

// IsMet evaluates the condition against the board. Entries that are
// missing or not numeric fail the condition. Bools count as 0 and 1 so a
// flag entry can be tested with == 1.
func (c Condition) IsMet(b *Blackboard) bool {
	v, ok := b.Get(c.EntryName)
	if !ok {
		return false
	}

	var f float64
	switch v := v.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case bool:
		if v {
			f = 1
		}
	default:
		return false
	}
	return c.Operator.Evaluate(f, c.Value)
}

// Save writes the condition to the stream.
func (c Condition) Save(out io.Writer) error {
	w := wire.NewWriter(out)
	if err := w.WriteString(c.EntryName); err != nil {
		return err
	}
	if err := w.WriteFloat64(c.Value); err != nil {
		return err
	}
	return w.WriteByte(byte(c.Operator))
}

// Load reads a condition previously written with Save.
func (c *Condition) Load(in io.Reader) error {
	r := wire.NewReader(in)
	name, err := r.ReadString()
	if err != nil {
		return err
	}
	value, err := r.ReadFloat64()
	if err != nil {
		return err
	}
	op, err := r.ReadByte()
	if err != nil {
		return err
	}
	if !graph.ComparisonOperator(op).Valid() {
		return fmt.Errorf("blackboard: invalid comparison operator ordinal %d", op)
	}

	c.EntryName = name
	c.Value = value
	c.Operator = graph.ComparisonOperator(op)
	return nil
}
