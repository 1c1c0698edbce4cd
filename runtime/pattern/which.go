package pattern

import (
	"fmt"
	"strings"
)

// Direction selects which end of the match a navigation anchors to.
type Direction bool

const (
	First Direction = false
	Last  Direction = true
)

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "first":
		return First, nil
	case "last":
		return Last, nil
	default:
		return false, fmt.Errorf("unknown direction: %s", s)
	}
}

func (d Direction) String() string {
	if d == Last {
		return "last"
	}
	return "first"
}

// Semantics controls how much of the match a navigation can see: Running
// ends the window at the current row, Final sees the completed match.
type Semantics bool

const (
	Running Semantics = false
	Final   Semantics = true
)

func ParseSemantics(s string) (Semantics, error) {
	switch strings.ToLower(s) {
	case "running":
		return Running, nil
	case "final":
		return Final, nil
	default:
		return false, fmt.Errorf("unknown semantics: %s", s)
	}
}

func (s Semantics) String() string {
	if s == Final {
		return "final"
	}
	return "running"
}
