package block

import (
	"fmt"

	"github.com/sumannewton/trino/types"
)

// Builder accumulates values position by position and produces an
// immutable Block.
type Builder interface {
	Type() types.Type
	Len() int
	AppendNull()
	Build() Block
}

// NewBuilder returns a builder for the given type.
func NewBuilder(typ types.Type) Builder {
	switch typ.ID() {
	case types.IDBool:
		return NewBoolBuilder()
	case types.IDInt64, types.IDDecimal:
		return NewIntBuilder(typ)
	case types.IDFloat64:
		return NewFloatBuilder()
	case types.IDString, types.IDBinary:
		return NewBytesBuilder(typ)
	case types.IDRow:
		return NewRowBuilder(typ.(*types.RowType))
	}
	panic(fmt.Sprintf("block: no builder for type %s", typ.Name()))
}

type BoolBuilder struct {
	values []bool
	nulls  []bool
	any    bool
}

func NewBoolBuilder() *BoolBuilder { return &BoolBuilder{} }

func (b *BoolBuilder) Type() types.Type { return types.Bool }
func (b *BoolBuilder) Len() int         { return len(b.values) }

func (b *BoolBuilder) Append(v bool) {
	b.values = append(b.values, v)
	b.nulls = append(b.nulls, false)
}

func (b *BoolBuilder) AppendNull() {
	b.values = append(b.values, false)
	b.nulls = append(b.nulls, true)
	b.any = true
}

func (b *BoolBuilder) Build() Block {
	return NewBool(b.values, maskOrNil(b.nulls, b.any))
}

type IntBuilder struct {
	typ    types.Type
	values []int64
	nulls  []bool
	any    bool
}

func NewIntBuilder(typ types.Type) *IntBuilder { return &IntBuilder{typ: typ} }

func (b *IntBuilder) Type() types.Type { return b.typ }
func (b *IntBuilder) Len() int         { return len(b.values) }

func (b *IntBuilder) Append(v int64) {
	b.values = append(b.values, v)
	b.nulls = append(b.nulls, false)
}

func (b *IntBuilder) AppendNull() {
	b.values = append(b.values, 0)
	b.nulls = append(b.nulls, true)
	b.any = true
}

func (b *IntBuilder) Build() Block {
	return NewInt(b.typ, b.values, maskOrNil(b.nulls, b.any))
}

type FloatBuilder struct {
	values []float64
	nulls  []bool
	any    bool
}

func NewFloatBuilder() *FloatBuilder { return &FloatBuilder{} }

func (b *FloatBuilder) Type() types.Type { return types.Float64 }
func (b *FloatBuilder) Len() int         { return len(b.values) }

func (b *FloatBuilder) Append(v float64) {
	b.values = append(b.values, v)
	b.nulls = append(b.nulls, false)
}

func (b *FloatBuilder) AppendNull() {
	b.values = append(b.values, 0)
	b.nulls = append(b.nulls, true)
	b.any = true
}

func (b *FloatBuilder) Build() Block {
	return NewFloat(b.values, maskOrNil(b.nulls, b.any))
}

type BytesBuilder struct {
	typ    types.Type
	values [][]byte
	nulls  []bool
	any    bool
}

func NewBytesBuilder(typ types.Type) *BytesBuilder { return &BytesBuilder{typ: typ} }

func (b *BytesBuilder) Type() types.Type { return b.typ }
func (b *BytesBuilder) Len() int         { return len(b.values) }

func (b *BytesBuilder) Append(v []byte) {
	b.values = append(b.values, v)
	b.nulls = append(b.nulls, false)
}

func (b *BytesBuilder) AppendNull() {
	b.values = append(b.values, nil)
	b.nulls = append(b.nulls, true)
	b.any = true
}

func (b *BytesBuilder) Build() Block {
	return NewBytes(b.typ, b.values, maskOrNil(b.nulls, b.any))
}

// RowBuilder builds a composite block one row at a time.  Callers append
// exactly one value (or null) to every field builder, then call EndRow.
type RowBuilder struct {
	typ    *types.RowType
	fields []Builder
	length int
	nulls  []bool
	any    bool
}

func NewRowBuilder(typ *types.RowType) *RowBuilder {
	fields := make([]Builder, 0, len(typ.Fields))
	for _, f := range typ.Fields {
		fields = append(fields, NewBuilder(f))
	}
	return &RowBuilder{typ: typ, fields: fields}
}

func (b *RowBuilder) Type() types.Type  { return b.typ }
func (b *RowBuilder) Len() int          { return b.length }
func (b *RowBuilder) Field(i int) Builder { return b.fields[i] }

// AppendNull appends a null row.
func (b *RowBuilder) AppendNull() {
	for _, f := range b.fields {
		f.AppendNull()
	}
	b.closeRow(true)
}

// EndRow closes the current row, asserting that every field advanced by
// exactly one position.
func (b *RowBuilder) EndRow() {
	b.closeRow(false)
}

func (b *RowBuilder) closeRow(null bool) {
	for i, f := range b.fields {
		if f.Len() != b.length+1 {
			panic(fmt.Sprintf("block: row field %d at position %d, want %d", i, f.Len(), b.length+1))
		}
	}
	b.nulls = append(b.nulls, null)
	b.any = b.any || null
	b.length++
}

func (b *RowBuilder) Build() Block {
	fields := make([]Block, 0, len(b.fields))
	for _, f := range b.fields {
		fields = append(fields, f.Build())
	}
	return NewRow(b.typ, fields, maskOrNil(b.nulls, b.any))
}

func maskOrNil(nulls []bool, any bool) []bool {
	if !any {
		return nil
	}
	return nulls
}

// AppendTo copies the value at position i of b into the builder.  The
// builder's type must match the block's.
func AppendTo(b Block, i int, builder Builder) {
	if b.IsNull(i) {
		builder.AppendNull()
		return
	}
	switch b := b.(type) {
	case *Bool:
		builder.(*BoolBuilder).Append(b.Value(i))
	case *Int:
		builder.(*IntBuilder).Append(b.Value(i))
	case *Float:
		builder.(*FloatBuilder).Append(b.Value(i))
	case *Bytes:
		builder.(*BytesBuilder).Append(b.Value(i))
	case *Row:
		rb := builder.(*RowBuilder)
		for f := 0; f < b.FieldCount(); f++ {
			AppendTo(b.Field(f), i, rb.Field(f))
		}
		rb.EndRow()
	default:
		panic(fmt.Sprintf("block: cannot append %T", b))
	}
}
