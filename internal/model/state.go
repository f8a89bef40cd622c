package model

// GameState is the complete position of one game. It is not safe for
// concurrent use; Game serializes access when it is shared.
type GameState struct {
	Board          Board          `json:"board"`
	CurrentPlayer  Color          `json:"currentPlayer"`
	MoveHistory    []Move         `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	IsGameOver     bool           `json:"isGameOver"`
}

// NewGameState returns the standard starting position with white to move.
func NewGameState() *GameState {
	return &GameState{
		Board:          newBoard(),
		CurrentPlayer:  White,
		MoveHistory:    make([]Move, 0),
		CapturedPieces: newCapturedPieces(),
		IsGameOver:     false,
	}
}

func (s *GameState) ValidMoves(from Position) []Position {
	return GenerateMoves(&s.Board, from)
}

// IsLegal reports whether to is among the generated destinations of from.
func (s *GameState) IsLegal(from, to Position) bool {
	for _, dest := range s.ValidMoves(from) {
		if dest == to {
			return true
		}
	}
	return false
}

// ApplyMove moves the piece on from to to and records the move. It performs
// no legality checks: calling it with a pair that IsLegal rejects leaves the
// state corrupted.
func (s *GameState) ApplyMove(from, to Position) Move {
	piece, _ := s.Board.At(from)
	var captured *Piece
	if target, ok := s.Board.At(to); ok {
		captured = &target
		s.CapturedPieces.push(target)
	}

	s.Board.Set(to, piece)
	s.Board.Clear(from)

	move := Move{
		From:     from,
		To:       to,
		Piece:    piece,
		Captured: captured,
		Notation: Notation(piece, from, to, captured != nil),
	}
	s.MoveHistory = append(s.MoveHistory, move)
	s.CurrentPlayer = s.CurrentPlayer.Opponent()
	s.IsGameOver = !s.KingsPresent()
	return move
}

// Undo reverts the last applied move. It reports false, changing nothing,
// when the history is empty. The game-over flag is always cleared.
func (s *GameState) Undo() (Move, bool) {
	n := len(s.MoveHistory)
	if n == 0 {
		return Move{}, false
	}
	last := s.MoveHistory[n-1]
	s.MoveHistory = s.MoveHistory[:n-1]

	s.Board.Set(last.From, last.Piece)
	s.Board.put(last.To, last.Captured)
	if last.Captured != nil {
		s.CapturedPieces.removeLast(*last.Captured)
	}

	s.CurrentPlayer = s.CurrentPlayer.Opponent()
	s.IsGameOver = false
	return last, true
}

// KingsPresent reports whether both kings are still on the board.
func (s *GameState) KingsPresent() bool {
	return s.Board.HasKing(White) && s.Board.HasKing(Black)
}

// Winner returns the side whose king survives. ok is false while the game is
// in progress or if both kings are gone.
func (s *GameState) Winner() (Color, bool) {
	if !s.IsGameOver {
		return White, false
	}
	white, black := s.Board.HasKing(White), s.Board.HasKing(Black)
	switch {
	case white && !black:
		return White, true
	case black && !white:
		return Black, true
	}
	return White, false
}

// LastMove returns the tail of the history, or nil.
func (s *GameState) LastMove() *Move {
	if len(s.MoveHistory) == 0 {
		return nil
	}
	last := s.MoveHistory[len(s.MoveHistory)-1]
	return &last
}

// Status is the one-line summary shown to players.
func (s *GameState) Status() string {
	if s.IsGameOver {
		if winner, ok := s.Winner(); ok {
			return capitalize(winner.String()) + " wins!"
		}
		return "Game over"
	}
	return capitalize(s.CurrentPlayer.String()) + "'s turn"
}

// Clone returns a deep copy sharing no slices with s.
func (s *GameState) Clone() *GameState {
	clone := *s
	clone.MoveHistory = make([]Move, len(s.MoveHistory))
	for i, m := range s.MoveHistory {
		if m.Captured != nil {
			captured := *m.Captured
			m.Captured = &captured
		}
		clone.MoveHistory[i] = m
	}
	clone.CapturedPieces = s.CapturedPieces.clone()
	return &clone
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
