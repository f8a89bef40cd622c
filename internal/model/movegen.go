package model

var (
	rookDirs   = []Position{{Row: -1, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: -1}, {Row: 0, Col: 1}}
	bishopDirs = []Position{{Row: -1, Col: -1}, {Row: -1, Col: 1}, {Row: 1, Col: -1}, {Row: 1, Col: 1}}
	queenDirs  = append(append([]Position{}, rookDirs...), bishopDirs...)
	knightDirs = []Position{
		{Row: -2, Col: -1}, {Row: -2, Col: 1}, {Row: -1, Col: -2}, {Row: -1, Col: 2},
		{Row: 1, Col: -2}, {Row: 1, Col: 2}, {Row: 2, Col: -1}, {Row: 2, Col: 1},
	}
	kingDirs = queenDirs
)

// pawnDirection is the row step toward the opponent's back rank.
func pawnDirection(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

func pawnStartRow(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

// GenerateMoves returns every destination the piece on from can reach in one
// ply. There is no self-check filtering. An empty square yields no moves.
func GenerateMoves(b *Board, from Position) []Position {
	piece, ok := b.At(from)
	if !ok {
		return []Position{}
	}
	switch piece.Kind {
	case Pawn:
		return pawnMoves(b, from, piece.Color)
	case Knight:
		return stepMoves(b, from, piece.Color, knightDirs)
	case King:
		return stepMoves(b, from, piece.Color, kingDirs)
	case Rook:
		return slidingMoves(b, from, piece.Color, rookDirs)
	case Bishop:
		return slidingMoves(b, from, piece.Color, bishopDirs)
	case Queen:
		return slidingMoves(b, from, piece.Color, queenDirs)
	}
	return []Position{}
}

func pawnMoves(b *Board, from Position, color Color) []Position {
	moves := []Position{}
	dir := pawnDirection(color)

	one := Position{Row: from.Row + dir, Col: from.Col}
	if one.InBounds() && b.IsEmpty(one) {
		moves = append(moves, one)
		two := Position{Row: from.Row + 2*dir, Col: from.Col}
		if from.Row == pawnStartRow(color) && b.IsEmpty(two) {
			moves = append(moves, two)
		}
	}

	for _, dc := range [2]int{-1, 1} {
		target := Position{Row: from.Row + dir, Col: from.Col + dc}
		if !target.InBounds() {
			continue
		}
		if occupant, ok := b.At(target); ok && occupant.Color != color {
			moves = append(moves, target)
		}
	}
	return moves
}

// stepMoves handles the single-step movers: knight and king.
func stepMoves(b *Board, from Position, color Color, offsets []Position) []Position {
	moves := []Position{}
	for _, d := range offsets {
		target := from.Add(d)
		if !target.InBounds() {
			continue
		}
		if occupant, ok := b.At(target); !ok || occupant.Color != color {
			moves = append(moves, target)
		}
	}
	return moves
}

// slidingMoves walks each ray until the edge or the first occupied square,
// which is included only when it holds an opposing piece.
func slidingMoves(b *Board, from Position, color Color, dirs []Position) []Position {
	moves := []Position{}
	for _, d := range dirs {
		for target := from.Add(d); target.InBounds(); target = target.Add(d) {
			occupant, ok := b.At(target)
			if !ok {
				moves = append(moves, target)
				continue
			}
			if occupant.Color != color {
				moves = append(moves, target)
			}
			break
		}
	}
	return moves
}
