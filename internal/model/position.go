package model

import "fmt"

const BoardSize = 8

// Position addresses a square by row and column. Row 0 is black's back rank
// and row 7 is white's; column 0 is the a-file.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

func (p Position) Add(d Position) Position {
	return Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

func (p Position) File() byte {
	return byte('a' + p.Col)
}

func (p Position) Rank() byte {
	return byte('8' - p.Row)
}

// String renders the square in coordinate form, e.g. e2.
func (p Position) String() string {
	if !p.InBounds() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return string([]byte{p.File(), p.Rank()})
}

// ParsePosition reads a coordinate square such as "e2".
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 {
		return Position{}, fmt.Errorf("parse square %q: %w", s, ErrOutOfBounds)
	}
	p := Position{Row: int('8' - s[1]), Col: int(s[0] - 'a')}
	if s[0] < 'a' || s[1] < '1' || !p.InBounds() {
		return Position{}, fmt.Errorf("parse square %q: %w", s, ErrOutOfBounds)
	}
	return p, nil
}
