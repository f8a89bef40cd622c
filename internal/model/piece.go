package model

import "fmt"

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*c = White
	case "black":
		*c = Black
	default:
		return fmt.Errorf("unknown color %q", text)
	}
	return nil
}

// PieceKind is the closed set of piece types. The zero value is not a valid
// kind so an empty Piece can never be mistaken for a pawn.
type PieceKind uint8

const (
	Pawn PieceKind = iota + 1
	Rook
	Knight
	Bishop
	Queen
	King
)

var pieceKindNames = [...]string{
	Pawn:   "pawn",
	Rook:   "rook",
	Knight: "knight",
	Bishop: "bishop",
	Queen:  "queen",
	King:   "king",
}

func (k PieceKind) Valid() bool {
	return k >= Pawn && k <= King
}

func (k PieceKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("PieceKind(%d)", uint8(k))
	}
	return pieceKindNames[k]
}

// Letter is the notation prefix for the kind. Pawns have none.
func (k PieceKind) Letter() string {
	switch k {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

func (k PieceKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid piece kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *PieceKind) UnmarshalText(text []byte) error {
	for kind := Pawn; kind <= King; kind++ {
		if pieceKindNames[kind] == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown piece kind %q", text)
}

// Piece is a plain value. Boards store copies, never shared references.
type Piece struct {
	Kind  PieceKind `json:"type"`
	Color Color     `json:"color"`
}

func (p Piece) String() string {
	return p.Color.String() + " " + p.Kind.String()
}
