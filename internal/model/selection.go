package model

// Selection is the square a player has picked up and its legal destinations.
// The zero value means nothing is selected.
type Selection struct {
	Square *Position  `json:"selectedSquare"`
	Moves  []Position `json:"legalMoves"`
}

func (sel Selection) Active() bool {
	return sel.Square != nil
}

// Allows reports whether to is in the selection's destination set.
func (sel Selection) Allows(to Position) bool {
	for _, dest := range sel.Moves {
		if dest == to {
			return true
		}
	}
	return false
}

// Select picks up the piece on p if it belongs to the side to move and
// returns its selection. Otherwise it returns the empty selection.
func (s *GameState) Select(p Position) Selection {
	piece, ok := s.Board.At(p)
	if !ok || piece.Color != s.CurrentPlayer {
		return Selection{}
	}
	square := p
	return Selection{Square: &square, Moves: s.ValidMoves(p)}
}

// Click advances the select-then-move interaction by one square. With an
// active selection, a listed destination applies the move and clears the
// selection, an own piece replaces the selection, and anything else clears
// it. Without one, only an own piece does anything. Every click is ignored
// once the game is over.
func (s *GameState) Click(sel Selection, p Position) (Selection, *Move) {
	if s.IsGameOver || !p.InBounds() {
		return sel, nil
	}
	if sel.Active() && sel.Allows(p) {
		move := s.ApplyMove(*sel.Square, p)
		return Selection{}, &move
	}
	return s.Select(p), nil
}
