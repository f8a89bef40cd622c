package model

import "strings"

// Move is the history record of an applied ply and the only undo token.
type Move struct {
	From     Position `json:"from"`
	To       Position `json:"to"`
	Piece    Piece    `json:"piece"`
	Captured *Piece   `json:"capturedPiece"`
	Notation string   `json:"notation"`
}

// Notation renders a ply in coordinate form: piece letter (none for pawns),
// source square, "x" for a capture or "-" otherwise, destination square.
func Notation(piece Piece, from, to Position, capture bool) string {
	var sb strings.Builder
	sb.WriteString(piece.Kind.Letter())
	sb.WriteString(from.String())
	if capture {
		sb.WriteByte('x')
	} else {
		sb.WriteByte('-')
	}
	sb.WriteString(to.String())
	return sb.String()
}

// CapturedPieces lists captured kinds per color of the captured piece, in
// capture order.
type CapturedPieces struct {
	White []PieceKind `json:"white"`
	Black []PieceKind `json:"black"`
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]PieceKind, 0),
		Black: make([]PieceKind, 0),
	}
}

func (cp *CapturedPieces) list(c Color) *[]PieceKind {
	if c == White {
		return &cp.White
	}
	return &cp.Black
}

func (cp *CapturedPieces) Of(c Color) []PieceKind {
	return *cp.list(c)
}

func (cp *CapturedPieces) push(p Piece) {
	l := cp.list(p.Color)
	*l = append(*l, p.Kind)
}

// removeLast drops the most recent entry of the piece's kind. It matches by
// kind only, so with two captured pawns of one color the later entry goes
// first regardless of which pawn is being restored.
func (cp *CapturedPieces) removeLast(p Piece) {
	l := cp.list(p.Color)
	for i := len(*l) - 1; i >= 0; i-- {
		if (*l)[i] == p.Kind {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return
		}
	}
}

func (cp CapturedPieces) clone() CapturedPieces {
	return CapturedPieces{
		White: append(make([]PieceKind, 0, len(cp.White)), cp.White...),
		Black: append(make([]PieceKind, 0, len(cp.Black)), cp.Black...),
	}
}
