package pattern

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// LabelSet is the set of pattern variables a navigation ranges over.
// A navigation over a single variable has one member, a union (SUBSET)
// variable has several, and the universal variable matches every row.
// The universal case is an explicit constructor rather than an empty set
// so an accidentally empty set cannot silently match everything.
type LabelSet struct {
	members *roaring.Bitmap
}

// AnyLabel returns the universal label set.
func AnyLabel() LabelSet { return LabelSet{} }

func NewLabelSet(labels ...int32) LabelSet {
	members := roaring.New()
	for _, label := range labels {
		if label < 0 {
			panic(fmt.Sprintf("pattern: negative label %d", label))
		}
		members.Add(uint32(label))
	}
	return LabelSet{members: members}
}

// Universal reports whether the set matches every label.
func (s LabelSet) Universal() bool { return s.members == nil }

func (s LabelSet) Matches(label int32) bool {
	return s.members == nil || s.members.Contains(uint32(label))
}

func (s LabelSet) String() string {
	if s.members == nil {
		return "any"
	}
	return s.members.String()
}

// Sequence is a read-only view of the labels assigned to the rows of a
// match, one label code per row in match order.  The matcher owns the
// underlying storage; a Sequence never mutates it.
type Sequence struct {
	labels []int32
}

func NewSequence(labels []int32) Sequence { return Sequence{labels: labels} }

func (s Sequence) Len() int        { return len(s.labels) }
func (s Sequence) At(i int) int32  { return s.labels[i] }
