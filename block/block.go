// Package block provides the columnar in-memory batches read and written
// by the operator core.  A Block is immutable once built; positions are
// addressed 0..Len()-1.
package block

import (
	"fmt"

	"github.com/sumannewton/trino/types"
)

type Block interface {
	Type() types.Type
	Len() int
	IsNull(int) bool
}

// nulls is a per-position null mask; nil means no nulls.
type nulls []bool

func (n nulls) null(i int) bool {
	return n != nil && n[i]
}

type Bool struct {
	values []bool
	nulls  nulls
}

var _ Block = (*Bool)(nil)

// NewBool wraps values and a null mask in a block.  A nil mask means no
// value is null.
func NewBool(values []bool, nulls []bool) *Bool {
	return &Bool{values: values, nulls: nulls}
}

func (b *Bool) Type() types.Type  { return types.Bool }
func (b *Bool) Len() int          { return len(b.values) }
func (b *Bool) IsNull(i int) bool { return b.nulls.null(i) }
func (b *Bool) Value(i int) bool  { return b.values[i] }

// Int carries int64 values for bigint as well as the unscaled values of
// decimal types, selected by typ.
type Int struct {
	typ    types.Type
	values []int64
	nulls  nulls
}

var _ Block = (*Int)(nil)

func NewInt(typ types.Type, values []int64, nulls []bool) *Int {
	return &Int{typ: typ, values: values, nulls: nulls}
}

func (b *Int) Type() types.Type  { return b.typ }
func (b *Int) Len() int          { return len(b.values) }
func (b *Int) IsNull(i int) bool { return b.nulls.null(i) }
func (b *Int) Value(i int) int64 { return b.values[i] }

type Float struct {
	values []float64
	nulls  nulls
}

var _ Block = (*Float)(nil)

func NewFloat(values []float64, nulls []bool) *Float {
	return &Float{values: values, nulls: nulls}
}

func (b *Float) Type() types.Type    { return types.Float64 }
func (b *Float) Len() int            { return len(b.values) }
func (b *Float) IsNull(i int) bool   { return b.nulls.null(i) }
func (b *Float) Value(i int) float64 { return b.values[i] }

// Bytes carries varchar and varbinary values, selected by typ.
type Bytes struct {
	typ    types.Type
	values [][]byte
	nulls  nulls
}

var _ Block = (*Bytes)(nil)

func NewBytes(typ types.Type, values [][]byte, nulls []bool) *Bytes {
	return &Bytes{typ: typ, values: values, nulls: nulls}
}

func (b *Bytes) Type() types.Type   { return b.typ }
func (b *Bytes) Len() int           { return len(b.values) }
func (b *Bytes) IsNull(i int) bool  { return b.nulls.null(i) }
func (b *Bytes) Value(i int) []byte { return b.values[i] }

// Row is a composite block with one child block per field.  The
// aggregation framework's intermediate states travel as Row blocks.
type Row struct {
	typ    *types.RowType
	fields []Block
	length int
	nulls  nulls
}

var _ Block = (*Row)(nil)

func NewRow(typ *types.RowType, fields []Block, nulls []bool) *Row {
	if len(fields) != len(typ.Fields) {
		panic(fmt.Sprintf("block: row has %d fields, type wants %d", len(fields), len(typ.Fields)))
	}
	length := 0
	if len(fields) > 0 {
		length = fields[0].Len()
		for _, f := range fields[1:] {
			if f.Len() != length {
				panic("block: row field lengths differ")
			}
		}
	}
	return &Row{typ: typ, fields: fields, length: length, nulls: nulls}
}

func (b *Row) Type() types.Type  { return b.typ }
func (b *Row) Len() int          { return b.length }
func (b *Row) IsNull(i int) bool { return b.nulls.null(i) }
func (b *Row) FieldCount() int   { return len(b.fields) }
func (b *Row) Field(i int) Block { return b.fields[i] }
