package agg

import (
	"fmt"

	"github.com/sumannewton/trino/block"
	"github.com/sumannewton/trino/types"
)

// StateSerializer converts accumulator state to and from the intermediate
// row representation shuffled between aggregation stages.
type StateSerializer interface {
	// SerializedType is the wire format: one (value, isNull) field pair
	// per piece of state, in declaration order.  Serializer and
	// deserializer pairs on different nodes rely on this order.
	SerializedType() *types.RowType
	Serialize(state State, out *block.RowBuilder)
	Deserialize(states *block.Row, index int, state State)
}

// Field describes one serializable piece of accumulator state.  Write and
// Read are only invoked for non-null values.
type Field struct {
	Type    types.Type
	IsNull  func(State) bool
	SetNull func(State)
	Write   func(State, block.Builder)
	Read    func(State, block.Block, int)
}

type rowSerializer struct {
	typ    *types.RowType
	fields []Field
}

// NewSerializer builds a StateSerializer with the declared fields laid out
// as (field1, field1IsNull, field2, field2IsNull, ...).
func NewSerializer(fields ...Field) StateSerializer {
	pairs := make([]types.Type, 0, 2*len(fields))
	for _, f := range fields {
		pairs = append(pairs, f.Type, types.Bool)
	}
	return &rowSerializer{typ: types.Row(pairs...), fields: fields}
}

func (r *rowSerializer) SerializedType() *types.RowType { return r.typ }

func (r *rowSerializer) Serialize(state State, out *block.RowBuilder) {
	for i, f := range r.fields {
		null := f.IsNull(state)
		if null {
			out.Field(2 * i).AppendNull()
		} else {
			f.Write(state, out.Field(2*i))
		}
		out.Field(2*i + 1).(*block.BoolBuilder).Append(null)
	}
	out.EndRow()
}

func (r *rowSerializer) Deserialize(states *block.Row, index int, state State) {
	if states.FieldCount() != 2*len(r.fields) {
		panic(fmt.Sprintf("agg: malformed intermediate state: %d fields, want %d", states.FieldCount(), 2*len(r.fields)))
	}
	for i, f := range r.fields {
		if states.Field(2*i + 1).(*block.Bool).Value(index) {
			f.SetNull(state)
		} else {
			f.Read(state, states.Field(2*i), index)
		}
	}
}
