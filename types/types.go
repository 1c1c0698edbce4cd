// Package types provides the small type surface consumed by the operator
// core: type identity for aggregate signatures and the row types that
// describe serialized aggregation state.
package types

import (
	"fmt"
	"strings"
)

type ID int

const (
	IDBool ID = iota
	IDInt64
	IDFloat64
	IDString
	IDBinary
	IDDecimal
	IDRow
)

type Type interface {
	ID() ID
	// Name is the signature text of the type, e.g. "decimal(10,2)".
	Name() string
}

type primitive struct {
	id   ID
	name string
}

func (p *primitive) ID() ID       { return p.id }
func (p *primitive) Name() string { return p.name }

var (
	Bool    Type = &primitive{IDBool, "boolean"}
	Int64   Type = &primitive{IDInt64, "bigint"}
	Float64 Type = &primitive{IDFloat64, "double"}
	String  Type = &primitive{IDString, "varchar"}
	Binary  Type = &primitive{IDBinary, "varbinary"}
)

// MaxShortPrecision is the largest decimal precision whose unscaled values
// fit in an int64.
const MaxShortPrecision = 18

// DecimalType is a fixed-point decimal.  Values are carried as unscaled
// int64 magnitudes so arithmetic at a fixed scale is exact.
type DecimalType struct {
	Precision int
	Scale     int
}

func Decimal(precision, scale int) *DecimalType {
	if precision < 1 || precision > MaxShortPrecision || scale < 0 || scale > precision {
		panic(fmt.Sprintf("types: bad decimal(%d,%d)", precision, scale))
	}
	return &DecimalType{Precision: precision, Scale: scale}
}

func (d *DecimalType) ID() ID { return IDDecimal }

func (d *DecimalType) Name() string {
	return fmt.Sprintf("decimal(%d,%d)", d.Precision, d.Scale)
}

// RowType is a composite of anonymous fields.  Serialized aggregation
// state is always row-typed.
type RowType struct {
	Fields []Type
}

func Row(fields ...Type) *RowType { return &RowType{Fields: fields} }

func (r *RowType) ID() ID { return IDRow }

func (r *RowType) Name() string {
	var b strings.Builder
	b.WriteString("row(")
	for i, f := range r.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name())
	}
	b.WriteByte(')')
	return b.String()
}

// Same reports whether two types are interchangeable in a signature.
func Same(a, b Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.ID() != b.ID() {
		return false
	}
	switch a := a.(type) {
	case *DecimalType:
		b := b.(*DecimalType)
		return a.Precision == b.Precision && a.Scale == b.Scale
	case *RowType:
		b := b.(*RowType)
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if !Same(a.Fields[i], b.Fields[i]) {
				return false
			}
		}
		return true
	}
	return true
}
