package engine

import (
	"testing"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/errors"
	"github.com/lgbarn/chess-engine-go/internal/testutil"
)

func mustFEN(t testing.TB, fen string) *Position {
	t.Helper()
	p, err := NewPositionFromFEN(fen)
	if err != nil {
		t.Fatalf("NewPositionFromFEN(%q) error: %v", fen, err)
	}
	return p
}

func sq(name string) chess.Square {
	s, ok := chess.ParseSquare(name)
	if !ok {
		panic("bad square " + name)
	}
	return s
}

func TestNewPositionFromFEN(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		checkFn func(*Position) bool
	}{
		{
			name: "initial position",
			fen:  InitialFEN,
			checkFn: func(p *Position) bool {
				return p.PieceAt(sq("e1")) == chess.WhiteKing &&
					p.PieceAt(sq("e8")) == chess.BlackKing &&
					p.PieceAt(sq("e2")) == chess.WhitePawn &&
					p.PieceAt(sq("e7")) == chess.BlackPawn &&
					p.SideToMove() == chess.White &&
					p.CastlingRights() == chess.AllCastling &&
					p.Occupancy().Count() == 32
			},
		},
		{
			name: "after 1.e4",
			fen:  "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			checkFn: func(p *Position) bool {
				return p.PieceAt(sq("e4")) == chess.WhitePawn &&
					p.PieceAt(sq("e2")) == chess.NoPiece &&
					p.SideToMove() == chess.Black &&
					p.EnPassant() == sq("e3")
			},
		},
		{
			name: "no castling rights",
			fen:  "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w - - 0 1",
			checkFn: func(p *Position) bool {
				return p.CastlingRights() == chess.NoCastling
			},
		},
		{
			name: "clocks",
			fen:  "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
			checkFn: func(p *Position) bool {
				return p.HalfMoveClock() == 4 && p.FullMoveNumber() == 4
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := mustFEN(t, tt.fen)
			testutil.AssertTrue(t, tt.checkFn(p), "position checks for %q", tt.fen)
			testutil.AssertNoError(t, p.Validate())
		})
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		InitialFEN,
		testutil.KiwipeteFEN,
		testutil.EndgameFEN,
		testutil.Position4FEN,
		testutil.Position5FEN,
		testutil.MaxMovesFEN,
		"r1bqk2r/1p1nb1pp/p1n1p3/2ppPp2/3P1P2/2N1BN2/PPPQB1PP/R3K2R w KQkq f6 0 10",
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w Kq e6 12 40",
	}
	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			t.Parallel()
			testutil.AssertEqual(t, mustFEN(t, fen).FEN(), fen)
		})
	}
}

func TestNewPositionFromFEN_Errors(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		field errors.FENField
	}{
		{"empty", "", errors.FieldFormat},
		{"five fields", "8/8/8/8/8/8/8/K6k w - - 0", errors.FieldFormat},
		{"seven fields", "8/8/8/8/8/8/8/K6k w - - 0 1 x", errors.FieldFormat},
		{"bad piece", "8/8/8/8/8/8/8/K5xk w - - 0 1", errors.FieldBoard},
		{"seven ranks", "6k1/b7/8/2Pp4/8/8/6K1 w - d6 0 1", errors.FieldBoard},
		{"short rank", "8/8/8/8/8/8/8/K5k w - - 0 1", errors.FieldBoard},
		{"long rank", "8/8/8/8/8/8/8/K6kp w - - 0 1", errors.FieldBoard},
		{"no black king", "8/8/8/8/8/8/8/K7 w - - 0 1", errors.FieldBoard},
		{"two white kings", "8/8/8/8/8/8/8/KK5k w - - 0 1", errors.FieldBoard},
		{"white pawn on last rank", "P6k/8/8/8/8/8/8/K7 w - - 0 1", errors.FieldBoard},
		{"black pawn on first rank", "7k/8/8/8/8/8/8/K6p b - - 0 1", errors.FieldBoard},
		{"side not to move in check", "k7/8/8/8/8/8/8/R3K2R w - - 0 1", errors.FieldBoard},
		{"kings touching", "8/8/8/8/8/8/8/Kk6 b - - 0 1", errors.FieldBoard},
		{"bad colour", "8/8/8/8/8/8/8/K6k x - - 0 1", errors.FieldColour},
		{"bad castling", "8/8/8/8/8/8/8/K6k w KX - 0 1", errors.FieldCastling},
		{"repeated castling", "8/8/8/8/8/8/8/K6k w KK - 0 1", errors.FieldCastling},
		{"bad ep square", "8/8/8/8/8/8/8/K6k w - z9 0 1", errors.FieldSquare},
		{"ep wrong rank", "8/8/8/8/8/8/8/K6k w - e3 0 1", errors.FieldSquare},
		{"bad half-move clock", "8/8/8/8/8/8/8/K6k w - - x 1", errors.FieldHalfMoveClock},
		{"negative half-move clock", "8/8/8/8/8/8/8/K6k w - - -1 1", errors.FieldHalfMoveClock},
		{"bad full-move number", "8/8/8/8/8/8/8/K6k w - - 0 y", errors.FieldFullMoveNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewPositionFromFEN(tt.fen)
			if !errors.Is(err, errors.ErrInvalidFEN) {
				t.Fatalf("NewPositionFromFEN(%q) error = %v, want ErrInvalidFEN", tt.fen, err)
			}
			var fe *errors.FENError
			if !errors.As(err, &fe) {
				t.Fatalf("error %v is not a *FENError", err)
			}
			testutil.AssertEqual(t, fe.Field, tt.field)
		})
	}
}

func TestFENErrorReportsCharacter(t *testing.T) {
	_, err := NewPositionFromFEN("8/8/8/8/8/8/8/K5Xk w - - 0 1")
	var fe *errors.FENError
	testutil.AssertTrue(t, errors.As(err, &fe))
	testutil.AssertEqual(t, fe.Char, byte('X'))
}

func TestNewPositionIsStart(t *testing.T) {
	p := NewPosition()
	testutil.AssertEqual(t, p.FEN(), InitialFEN)
	testutil.AssertEqual(t, p.RepetitionCount(), 1)
}
