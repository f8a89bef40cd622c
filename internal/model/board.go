package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Square holds at most one piece. Occupied distinguishes an empty square from
// the zero Piece.
type Square struct {
	Piece    Piece
	Occupied bool
}

// Board is an 8x8 grid indexed [row][col]. It is an array, so assigning a
// Board copies every square.
type Board [BoardSize][BoardSize]Square

var backRank = [BoardSize]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func newBoard() Board {
	var b Board
	for col, kind := range backRank {
		b.Set(Position{Row: 0, Col: col}, Piece{Kind: kind, Color: Black})
		b.Set(Position{Row: 1, Col: col}, Piece{Kind: Pawn, Color: Black})
		b.Set(Position{Row: 6, Col: col}, Piece{Kind: Pawn, Color: White})
		b.Set(Position{Row: 7, Col: col}, Piece{Kind: kind, Color: White})
	}
	return b
}

// At returns the piece on p. ok is false for empty or off-board squares.
func (b *Board) At(p Position) (Piece, bool) {
	if !p.InBounds() {
		return Piece{}, false
	}
	sq := b[p.Row][p.Col]
	return sq.Piece, sq.Occupied
}

func (b *Board) IsEmpty(p Position) bool {
	_, ok := b.At(p)
	return !ok
}

func (b *Board) Set(p Position, piece Piece) {
	b[p.Row][p.Col] = Square{Piece: piece, Occupied: true}
}

func (b *Board) Clear(p Position) {
	b[p.Row][p.Col] = Square{}
}

// put sets or clears p depending on whether piece is nil.
func (b *Board) put(p Position, piece *Piece) {
	if piece == nil {
		b.Clear(p)
		return
	}
	b.Set(p, *piece)
}

// HasKing scans the whole board for a king of the given color.
func (b *Board) HasKing(c Color) bool {
	for row := range b {
		for col := range b[row] {
			sq := b[row][col]
			if sq.Occupied && sq.Piece.Kind == King && sq.Piece.Color == c {
				return true
			}
		}
	}
	return false
}

// MarshalJSON encodes the board as rows of pieces, with null for empty squares.
func (b Board) MarshalJSON() ([]byte, error) {
	rows := make([][]*Piece, BoardSize)
	for row := range b {
		rows[row] = make([]*Piece, BoardSize)
		for col := range b[row] {
			if b[row][col].Occupied {
				piece := b[row][col].Piece
				rows[row][col] = &piece
			}
		}
	}
	return json.Marshal(rows)
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var rows [BoardSize][BoardSize]*Piece
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	*b = Board{}
	for row := range rows {
		for col, piece := range rows[row] {
			b.put(Position{Row: row, Col: col}, piece)
		}
	}
	return nil
}

// String draws the board with white pieces in upper case, rank 8 first.
func (b Board) String() string {
	var sb strings.Builder
	for row := range b {
		for col := range b[row] {
			sq := b[row][col]
			if !sq.Occupied {
				sb.WriteByte('.')
				continue
			}
			letter := sq.Piece.Kind.Letter()
			if sq.Piece.Kind == Pawn {
				letter = "P"
			}
			if sq.Piece.Color == Black {
				letter = strings.ToLower(letter)
			}
			sb.WriteString(letter)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

var letterKinds = map[byte]PieceKind{
	'p': Pawn, 'r': Rook, 'n': Knight, 'b': Bishop, 'q': Queen, 'k': King,
}

// ParseBoard reads the diagram produced by Board.String. Blank lines and
// surrounding whitespace are ignored.
func ParseBoard(diagram string) (Board, error) {
	var b Board
	var rows []string
	for _, line := range strings.Split(diagram, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) != BoardSize {
		return b, fmt.Errorf("parse board: want %d rows, got %d", BoardSize, len(rows))
	}
	for row, line := range rows {
		if len(line) != BoardSize {
			return b, fmt.Errorf("parse board: row %d has %d squares", row, len(line))
		}
		for col := 0; col < BoardSize; col++ {
			ch := line[col]
			if ch == '.' {
				continue
			}
			color := Black
			if ch >= 'A' && ch <= 'Z' {
				color = White
				ch += 'a' - 'A'
			}
			kind, ok := letterKinds[ch]
			if !ok {
				return b, fmt.Errorf("parse board: unknown piece %q at row %d", line[col], row)
			}
			b.Set(Position{Row: row, Col: col}, Piece{Kind: kind, Color: color})
		}
	}
	return b, nil
}
