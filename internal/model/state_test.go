package model

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestNewGameState(t *testing.T) {
	s := NewGameState()
	if s.CurrentPlayer != White {
		t.Fatalf("expected white to move, got %s", s.CurrentPlayer)
	}
	if s.IsGameOver || len(s.MoveHistory) != 0 {
		t.Fatalf("expected fresh game, got over=%v history=%d", s.IsGameOver, len(s.MoveHistory))
	}
	want := `
rnbqkbnr
pppppppp
........
........
........
........
PPPPPPPP
RNBQKBNR`
	if got := s.Board.String(); strings.TrimSpace(got) != strings.TrimSpace(want) {
		t.Fatalf("unexpected starting board:\n%s", got)
	}
}

func TestPawnsAreIndependentValues(t *testing.T) {
	s := NewGameState()
	s.ApplyMove(mustPos(t, "e2"), mustPos(t, "e4"))
	for col := 0; col < BoardSize; col++ {
		p := Position{Row: 6, Col: col}
		_, ok := s.Board.At(p)
		if col == 4 && ok {
			t.Errorf("e2 should be empty after e2-e4")
		}
		if col != 4 && !ok {
			t.Errorf("pawn on %v disappeared", p)
		}
	}
}

func TestOpeningPawnScenario(t *testing.T) {
	s := NewGameState()
	e2, e4, e5 := mustPos(t, "e2"), mustPos(t, "e4"), mustPos(t, "e5")

	if !s.IsLegal(e2, e4) {
		t.Fatalf("e2-e4 should be legal")
	}
	if s.IsLegal(e2, e5) {
		t.Fatalf("e2-e5 should be illegal")
	}

	move := s.ApplyMove(e2, e4)
	if move.Notation != "e2-e4" {
		t.Fatalf("expected notation e2-e4, got %q", move.Notation)
	}
	if move.Captured != nil {
		t.Fatalf("expected no capture, got %v", move.Captured)
	}
	if s.CurrentPlayer != Black {
		t.Fatalf("expected black to move")
	}
	if piece, ok := s.Board.At(e4); !ok || piece != (Piece{Kind: Pawn, Color: White}) {
		t.Fatalf("expected white pawn on e4, got %v %v", piece, ok)
	}
}

func TestRookCapturesDownClearFile(t *testing.T) {
	s := NewGameState()
	s.Board.Clear(mustPos(t, "a2"))
	a1, a7 := mustPos(t, "a1"), mustPos(t, "a7")

	if !s.IsLegal(a1, a7) {
		t.Fatalf("rook should reach a7 along the open file, moves=%v", squares(s.ValidMoves(a1)))
	}
	if s.IsLegal(a1, mustPos(t, "a8")) {
		t.Fatalf("rook must not pass through the a7 pawn")
	}

	move := s.ApplyMove(a1, a7)
	if !strings.Contains(move.Notation, "x") || move.Notation != "Ra1xa7" {
		t.Fatalf("unexpected capture notation %q", move.Notation)
	}
	if !reflect.DeepEqual(s.CapturedPieces.Black, []PieceKind{Pawn}) {
		t.Fatalf("expected black pawn captured, got %v", s.CapturedPieces.Black)
	}
	if len(s.CapturedPieces.White) != 0 {
		t.Fatalf("no white piece was captured, got %v", s.CapturedPieces.White)
	}
	if s.IsGameOver {
		t.Fatalf("game should continue")
	}
}

func TestNotation(t *testing.T) {
	tests := []struct {
		piece   Piece
		from    string
		to      string
		capture bool
		want    string
	}{
		{Piece{Kind: Pawn, Color: White}, "e2", "e4", false, "e2-e4"},
		{Piece{Kind: Pawn, Color: Black}, "d5", "e4", true, "d5xe4"},
		{Piece{Kind: Knight, Color: White}, "b1", "c3", true, "Nb1xc3"},
		{Piece{Kind: Knight, Color: Black}, "g8", "f6", false, "Ng8-f6"},
		{Piece{Kind: Bishop, Color: White}, "f1", "b5", false, "Bf1-b5"},
		{Piece{Kind: Rook, Color: Black}, "h8", "h1", true, "Rh8xh1"},
		{Piece{Kind: Queen, Color: White}, "d1", "h5", false, "Qd1-h5"},
		{Piece{Kind: King, Color: Black}, "e8", "e7", false, "Ke8-e7"},
	}
	for _, tt := range tests {
		got := Notation(tt.piece, mustPos(t, tt.from), mustPos(t, tt.to), tt.capture)
		if got != tt.want {
			t.Errorf("Notation(%s, %s, %s, %v) = %q, want %q", tt.piece, tt.from, tt.to, tt.capture, got, tt.want)
		}
	}
}

// playLine applies coordinate pairs such as "e2e4" and checks each is legal.
func playLine(t *testing.T, s *GameState, line string) []Move {
	t.Helper()
	var moves []Move
	for _, mv := range strings.Fields(line) {
		from, to := mustPos(t, mv[:2]), mustPos(t, mv[2:])
		if !s.IsLegal(from, to) {
			t.Fatalf("move %s is not legal on\n%s", mv, s.Board)
		}
		moves = append(moves, s.ApplyMove(from, to))
	}
	return moves
}

func TestApplyUndoRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		setup string
		move  string
	}{
		{name: "QuietPawn", move: "e2e4"},
		{name: "Knight", move: "g1f3"},
		{name: "PawnCapture", setup: "e2e4 d7d5", move: "e4d5"},
		{name: "AfterQueenRecapture", setup: "e2e4 d7d5 e4d5 d8d5", move: "d1g4"},
		{name: "BishopTakesPawn", setup: "e2e4 d7d5 f1b5 c7c6", move: "b5c6"},
		{name: "SecondPawnCaptured", setup: "e2e4 d7d5 e4d5 e7e5 d5d6", move: "c7d6"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			s := NewGameState()
			playLine(t, s, tt.setup)
			before := s.Clone()

			playLine(t, s, tt.move)
			if reflect.DeepEqual(before.Board, s.Board) {
				t.Fatalf("move %s did not change the board", tt.move)
			}
			if _, ok := s.Undo(); !ok {
				t.Fatalf("undo reported empty history")
			}

			if !reflect.DeepEqual(before, s) {
				t.Fatalf("state after undo differs\nbefore:\n%s\nafter:\n%s", before.Board, s.Board)
			}
		})
	}
}

func TestCurrentPlayerAlternates(t *testing.T) {
	s := NewGameState()
	line := "e2e4 e7e5 g1f3 b8c6 f1c4 g8f6 d2d3 f8c5"
	moves := playLine(t, s, line)
	if len(s.MoveHistory) != len(moves) {
		t.Fatalf("history has %d moves, want %d", len(s.MoveHistory), len(moves))
	}
	if s.CurrentPlayer != White {
		t.Fatalf("after an even number of plies white should move")
	}

	for i := len(moves); i > 0; i-- {
		if _, ok := s.Undo(); !ok {
			t.Fatalf("undo %d failed", i)
		}
		want := White
		if (i-1)%2 == 1 {
			want = Black
		}
		if s.CurrentPlayer != want {
			t.Fatalf("after undoing to ply %d expected %s to move, got %s", i-1, want, s.CurrentPlayer)
		}
	}
	if !reflect.DeepEqual(s, NewGameState()) {
		t.Fatalf("undoing every move should restore the starting state")
	}
}

func TestUndoOnEmptyHistoryIsNoop(t *testing.T) {
	s := NewGameState()
	if _, ok := s.Undo(); ok {
		t.Fatalf("undo on a fresh game should report false")
	}
	if !reflect.DeepEqual(s, NewGameState()) {
		t.Fatalf("undo on a fresh game changed the state")
	}
}

func TestGameOverWhenKingsCaptured(t *testing.T) {
	s := NewGameState()
	s.Board = mustBoard(t, `
....k...
........
........
........
....Q...
........
...q....
....K...`)

	first := playLine(t, s, "e4e8")[0]
	if first.Captured == nil || first.Captured.Kind != King {
		t.Fatalf("expected king capture, got %+v", first)
	}
	if !s.IsGameOver {
		t.Fatalf("capturing the black king should end the game")
	}
	if winner, ok := s.Winner(); !ok || winner != White {
		t.Fatalf("expected white to win, got %v %v", winner, ok)
	}
	if s.Status() != "White wins!" {
		t.Fatalf("unexpected status %q", s.Status())
	}

	// The engine does not refuse moves after the game ends.
	playLine(t, s, "d2e1")
	if !s.IsGameOver {
		t.Fatalf("game should stay over with both kings gone")
	}
	if _, ok := s.Winner(); ok {
		t.Fatalf("no winner with both kings gone")
	}
	if !reflect.DeepEqual(s.CapturedPieces.White, []PieceKind{King}) ||
		!reflect.DeepEqual(s.CapturedPieces.Black, []PieceKind{King}) {
		t.Fatalf("unexpected captures %+v", s.CapturedPieces)
	}

	if _, ok := s.Undo(); !ok {
		t.Fatalf("undo failed")
	}
	if s.IsGameOver {
		t.Fatalf("undo should clear the game-over flag")
	}
	if !s.Board.HasKing(White) || s.Board.HasKing(Black) {
		t.Fatalf("undo should restore only the white king")
	}
}

func TestUndoRemovesLastMatchingCapture(t *testing.T) {
	cp := newCapturedPieces()
	for _, kind := range []PieceKind{Pawn, Knight, Pawn, Bishop} {
		cp.push(Piece{Kind: kind, Color: Black})
	}
	cp.removeLast(Piece{Kind: Pawn, Color: Black})
	if want := []PieceKind{Pawn, Knight, Bishop}; !reflect.DeepEqual(cp.Black, want) {
		t.Fatalf("got %v, want %v", cp.Black, want)
	}
	cp.removeLast(Piece{Kind: Queen, Color: Black})
	if len(cp.Black) != 3 {
		t.Fatalf("removing an absent kind should do nothing, got %v", cp.Black)
	}
}

func TestStatus(t *testing.T) {
	s := NewGameState()
	if s.Status() != "White's turn" {
		t.Fatalf("unexpected status %q", s.Status())
	}
	playLine(t, s, "e2e4")
	if s.Status() != "Black's turn" {
		t.Fatalf("unexpected status %q", s.Status())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewGameState()
	playLine(t, s, "e2e4 d7d5 e4d5")
	clone := s.Clone()
	s.Undo()
	s.Undo()
	if len(clone.MoveHistory) != 3 || len(clone.CapturedPieces.Black) != 1 {
		t.Fatalf("clone changed with the original: %+v", clone)
	}
	if _, ok := clone.Board.At(mustPos(t, "d5")); !ok {
		t.Fatalf("clone board changed with the original")
	}
}

func TestBoardJSON(t *testing.T) {
	s := NewGameState()
	data, err := json.Marshal(s.Board)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var rows [][]*struct {
		Type  string `json:"type"`
		Color string `json:"color"`
	}
	if err := json.Unmarshal(data, &rows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rows[0][0] == nil || rows[0][0].Type != "rook" || rows[0][0].Color != "black" {
		t.Fatalf("expected black rook on a8, got %+v", rows[0][0])
	}
	if rows[4][4] != nil {
		t.Fatalf("expected empty e4, got %+v", rows[4][4])
	}

	var back Board
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal board: %v", err)
	}
	if back != s.Board {
		t.Fatalf("board did not survive JSON:\n%s", back)
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in   string
		want Position
		ok   bool
	}{
		{"a8", Position{Row: 0, Col: 0}, true},
		{"h1", Position{Row: 7, Col: 7}, true},
		{"e2", Position{Row: 6, Col: 4}, true},
		{"i1", Position{}, false},
		{"a9", Position{}, false},
		{"a0", Position{}, false},
		{"", Position{}, false},
		{"e22", Position{}, false},
	}
	for _, tt := range tests {
		got, err := ParsePosition(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParsePosition(%q) err = %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("ParsePosition(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
		if tt.ok && got.String() != tt.in {
			t.Errorf("%+v.String() = %q, want %q", got, got.String(), tt.in)
		}
	}
}
