package engine

import (
	"sort"
	"testing"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/testutil"
)

func uciMoves(list chess.MoveList) []string {
	out := make([]string, 0, list.Len())
	for _, m := range list.Slice() {
		out = append(out, m.UCI())
	}
	sort.Strings(out)
	return out
}

func countKind(list chess.MoveList, kind chess.MoveKind) int {
	n := 0
	for _, m := range list.Slice() {
		if m.Kind() == kind {
			n++
		}
	}
	return n
}

func TestLegalMoveCounts(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want int
	}{
		{"start", InitialFEN, 20},
		{"most moves", testutil.MaxMovesFEN, 218},
		{"many promotions", "8/PPPPPPPP/6k1/2BB4/5Q2/2NN3K/1R6/R7 w - - 0 1", 111},
		{"checkmate", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", 0},
		{"stalemate", "5bnr/4p1pq/4Qpkr/7p/2P4P/8/PP1PPPP1/RNB1KBNR b - - 0 1", 0},
		{"double check", "k7/5P2/6P1/3K4/8/1R2n2Q/5N2/7b w - - 0 1", 5},
		{"blocked pawn", "K7/8/8/8/8/k7/P7/8 w - - 0 1", 3},
		{"single pawn push", "K7/8/8/8/k7/8/P7/8 w - - 0 1", 4},
		{"only the double push", "8/8/k7/8/K6r/7r/1P6/8 w - - 0 1", 1},
		{"promotion", "7k/P7/8/8/8/8/8/K7 w - - 0 1", 7},
		{"promotion capture", "nn5k/P7/8/8/8/8/8/K7 w - - 0 1", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := mustFEN(t, tt.fen)
			moves := p.LegalMoves()
			testutil.AssertEqual(t, moves.Len(), tt.want, "legal moves in %q: %v", tt.fen, uciMoves(moves))
		})
	}
}

func TestCheckmateAndStalemate(t *testing.T) {
	mate := mustFEN(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	testutil.AssertTrue(t, mate.IsInCheck())
	testutil.AssertTrue(t, mate.IsCheckmate())
	testutil.AssertFalse(t, mate.IsStalemate())
	testutil.AssertEqual(t, mate.Status(), Checkmate)

	stale := mustFEN(t, "5bnr/4p1pq/4Qpkr/7p/2P4P/8/PP1PPPP1/RNB1KBNR b - - 0 1")
	testutil.AssertFalse(t, stale.IsInCheck())
	testutil.AssertTrue(t, stale.IsStalemate())
	testutil.AssertEqual(t, stale.Status(), Stalemate)
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	p := mustFEN(t, "k7/5P2/6P1/3K4/8/1R2n2Q/5N2/7b w - - 0 1")
	testutil.AssertEqual(t, p.CheckKind(), DoubleCheck)
	legal := p.LegalMoves()
	for _, m := range legal.Slice() {
		testutil.AssertEqual(t, m.Piece(), chess.WhiteKing, "move %v", m)
	}
}

func TestPromotionOrder(t *testing.T) {
	p := mustFEN(t, "7k/P7/8/8/8/8/8/K7 w - - 0 1")
	var promos []chess.PieceType
	legal := p.LegalMoves()
	for _, m := range legal.Slice() {
		if m.IsPromotion() {
			promos = append(promos, m.Promoted().Type())
		}
	}
	testutil.AssertEqual(t, promos, []chess.PieceType{chess.Queen, chess.Knight, chess.Rook, chess.Bishop})
}

func TestPromotionCapture(t *testing.T) {
	p := mustFEN(t, "nn5k/P7/8/8/8/8/8/K7 w - - 0 1")
	moves := p.LegalMoves()
	testutil.AssertEqual(t, countKind(moves, chess.Promotion), 4)
	for _, m := range moves.Slice() {
		if m.IsPromotion() {
			testutil.AssertEqual(t, m.To(), sq("b8"))
			testutil.AssertEqual(t, m.Captured(), chess.BlackKnight)
		}
	}
}

func TestCastlingGeneration(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want int
	}{
		{"both sides", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", 2},
		{"black both sides", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", 2},
		{"in check", "1k2r2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", 0},
		{"through check", "2r1k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", 1},
		{"occupied square", "r3k2r/8/8/8/8/8/8/R3K1NR w KQkq - 0 1", 1},
		{"b-file attacked is fine", "1r2k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", 2},
		{"no rights", "r3k2r/8/8/8/8/8/8/R3K2R w kq - 0 1", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			testutil.AssertEqual(t, countKind(mustFEN(t, tt.fen).LegalMoves(), chess.Castling), tt.want)
		})
	}
}

func TestEnPassantGeneration(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want int
	}{
		{"available", "rnbqkbnr/ppp2ppp/8/3Pp3/8/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 3", 1},
		{"diagonal pin", "6k1/b7/8/2Pp4/8/8/8/6K1 w - d6 0 1", 0},
		{"horizontal pin through both pawns", "8/8/8/K1Pp3r/8/8/8/7k w - d6 0 1", 0},
		{"captures checking pawn", "8/8/8/2Pp4/2K5/8/8/7k w - d6 0 1", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			testutil.AssertEqual(t, countKind(mustFEN(t, tt.fen).LegalMoves(), chess.EnPassant), tt.want)
		})
	}
}

func TestPinnedPieceStaysOnRay(t *testing.T) {
	p := mustFEN(t, "4k3/4r3/8/8/8/8/4R3/4K3 w - - 0 1")
	testutil.AssertEqual(t, p.Pinned(), chess.SquareBB(sq("e2")))
	legal := p.LegalMoves()
	for _, m := range legal.Slice() {
		if m.From() == sq("e2") {
			testutil.AssertEqual(t, m.To().File(), 4, "pinned rook move %v", m)
		}
	}
}

func TestKingCannotStepAlongCheckingRay(t *testing.T) {
	p := mustFEN(t, "4k3/8/8/8/8/8/8/r3K3 w - - 0 1")
	moves := p.LegalMoves()
	testutil.AssertFalse(t, moves.Contains(chess.NewMove(sq("e1"), sq("f1"), chess.WhiteKing, chess.NoPiece)))
	testutil.AssertEqual(t, uciMoves(moves), []string{"e1d2", "e1e2", "e1f2"})
}

func TestGivesCheckFlag(t *testing.T) {
	fens := []string{
		"6N1/8/8/3k4/6B1/2P5/2R1R3/7K w - - 0 1",
		"8/8/8/8/8/5BB1/PPP2P2/R3K1k1 w Q - 0 1",
		"rnbqkbnr/ppp2ppp/8/3Pp3/8/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 3",
		"4k3/8/8/2KPp2r/8/8/8/8 w - e6 0 1",
		"8/P1k5/8/8/8/8/8/K7 w - - 0 1",
		testutil.KiwipeteFEN,
		testutil.Position4FEN,
		testutil.Position5FEN,
	}
	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			t.Parallel()
			checkGivesCheck(t, mustFEN(t, fen), 2)
		})
	}
}

// checkGivesCheck walks the tree and compares every flag with the result of
// actually playing the move.
func checkGivesCheck(t *testing.T, p *Position, depth int) {
	t.Helper()
	if depth == 0 {
		return
	}
	legal := p.LegalMoves()
	for _, m := range legal.Slice() {
		info := p.UndoInfo()
		p.Play(m)
		if got := p.IsInCheck(); got != m.GivesCheck() {
			t.Fatalf("%v: GivesCheck = %v, in check after play = %v (%s)", m, m.GivesCheck(), got, p.FEN())
		}
		checkGivesCheck(t, p, depth-1)
		p.Undo(m, info)
	}
}

func TestCastlingGivesMate(t *testing.T) {
	p := mustFEN(t, "8/8/8/8/8/5BB1/PPP2P2/R3K1k1 w Q - 0 1")
	m, err := p.ParseMove("e1c1")
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, m.IsCastling())
	testutil.AssertTrue(t, m.GivesCheck())
	p.Play(m)
	testutil.AssertTrue(t, p.IsCheckmate())
}

func TestAttacksBySeesThroughKing(t *testing.T) {
	p := mustFEN(t, "8/8/8/8/8/8/8/r3K2k w - - 0 1")
	att := p.AttacksBy(chess.Black)
	testutil.AssertTrue(t, att.Has(sq("f1")), "square behind king on the rook ray")
	testutil.AssertTrue(t, p.IsSquareAttacked(sq("d1"), chess.Black))
	testutil.AssertFalse(t, p.IsSquareAttacked(sq("f1"), chess.Black))
}
