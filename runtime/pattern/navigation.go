// Package pattern implements logical-offset navigation over the rows of a
// row-pattern match: FIRST/LAST navigation with logical (occurrence) and
// physical (row) offsets, under running or final semantics.  Navigation is
// a pure function over the assigned labels, so a single Navigation may be
// used from any number of goroutines.
package pattern

import "fmt"

// NotFound is returned when no row satisfies a navigation.  It is a
// normal outcome, not an error; a real position is never negative.
const NotFound = -1

// Navigation resolves "Nth occurrence of a label, plus a row offset" to an
// absolute row index.  Immutable once constructed.
type Navigation struct {
	labels         LabelSet
	direction      Direction
	semantics      Semantics
	logicalOffset  int
	physicalOffset int
}

func NewNavigation(labels LabelSet, direction Direction, semantics Semantics, logicalOffset, physicalOffset int) Navigation {
	if logicalOffset < 0 {
		panic(fmt.Sprintf("pattern: logical offset must be >= 0, got %d", logicalOffset))
	}
	return Navigation{
		labels:         labels,
		direction:      direction,
		semantics:      semantics,
		logicalOffset:  logicalOffset,
		physicalOffset: physicalOffset,
	}
}

// Resolve finds the navigated position while a match is being grown.
// newLabel is the label tentatively assigned to the row after all of
// matched, and counts as matched for navigation.  searchStart and
// searchEnd (exclusive) bound the legal row indexes and patternStart is
// the absolute index of matched's first row.  Returns NotFound if no row
// qualifies or the resolved position leaves the bounds.
func (n Navigation) Resolve(matched Sequence, newLabel int32, searchStart, searchEnd, patternStart int) int {
	var relative int
	if n.direction == Last {
		relative = n.lastAndBack(matched, newLabel)
	} else {
		relative = n.firstAndForward(matched, newLabel)
	}
	return n.adjust(relative, patternStart, searchStart, searchEnd)
}

// LAST(A.price, 3): find the last occurrence of label A and go three
// occurrences backwards.  The new label is considered first since it
// follows everything in matched.
func (n Navigation) lastAndBack(matched Sequence, newLabel int32) int {
	position := matched.Len()
	found := 0
	if n.labels.Matches(newLabel) {
		found++
	}
	for found <= n.logicalOffset && position > 0 {
		position--
		if n.labels.Matches(matched.At(position)) {
			found++
		}
	}
	if found == n.logicalOffset+1 {
		return position
	}
	return NotFound
}

// FIRST(A.price, 3): find the first occurrence of label A and go three
// occurrences forward.  The new label is tried only after the scan
// exhausts matched: scanning front to back, it can only ever be the last
// candidate.
func (n Navigation) firstAndForward(matched Sequence, newLabel int32) int {
	position := -1
	found := 0
	for found <= n.logicalOffset && position < matched.Len()-1 {
		position++
		if n.labels.Matches(matched.At(position)) {
			found++
		}
	}
	if found <= n.logicalOffset {
		position++
		if n.labels.Matches(newLabel) {
			found++
		}
	}
	if found == n.logicalOffset+1 {
		return position
	}
	return NotFound
}

// ResolveMeasure finds the navigated position when computing measures (or
// the SKIP TO row) over a completed match.  Under running semantics a LAST
// navigation sees only rows up to currentRow; final semantics and FIRST
// navigations see the entire match.  currentRow outside the match is a
// caller bug.
func (n Navigation) ResolveMeasure(currentRow int, matched Sequence, searchStart, searchEnd, patternStart int) int {
	if currentRow < patternStart || currentRow >= patternStart+matched.Len() {
		panic(fmt.Sprintf("pattern: current row %d out of bounds of the match [%d, %d)", currentRow, patternStart, patternStart+matched.Len()))
	}
	var relative int
	if n.direction == Last {
		start := matched.Len() - 1
		if n.semantics == Running {
			start = currentRow - patternStart
		}
		relative = n.lastFrom(start, matched)
	} else {
		relative = n.firstFrom(matched)
	}
	return n.adjust(relative, patternStart, searchStart, searchEnd)
}

func (n Navigation) lastFrom(start int, matched Sequence) int {
	position := start + 1
	found := 0
	for found <= n.logicalOffset && position > 0 {
		position--
		if n.labels.Matches(matched.At(position)) {
			found++
		}
	}
	if found == n.logicalOffset+1 {
		return position
	}
	return NotFound
}

func (n Navigation) firstFrom(matched Sequence) int {
	position := -1
	found := 0
	for found <= n.logicalOffset && position < matched.Len()-1 {
		position++
		if n.labels.Matches(matched.At(position)) {
			found++
		}
	}
	if found == n.logicalOffset+1 {
		return position
	}
	return NotFound
}

// adjust converts a match-relative position to an absolute row index,
// applies the physical offset, and bounds-checks the result.  An offset
// that leaves [searchStart, searchEnd) is NotFound, never clamped.
func (n Navigation) adjust(relative, patternStart, searchStart, searchEnd int) int {
	if relative == NotFound {
		return NotFound
	}
	target := relative + patternStart + n.physicalOffset
	if target < searchStart || target >= searchEnd {
		return NotFound
	}
	return target
}
