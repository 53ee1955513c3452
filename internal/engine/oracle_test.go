package engine

import (
	"sort"
	"testing"

	chess "github.com/corentings/chess/v2"

	"github.com/lgbarn/chess-engine-go/internal/testutil"
)

// oracleMoves lists the legal moves of fen according to an independent
// move generator, with the set of moves it tags as checks.
func oracleMoves(t *testing.T, fen string) ([]string, map[string]bool) {
	t.Helper()
	opt, err := chess.FEN(fen)
	if err != nil {
		t.Fatalf("oracle rejected %q: %v", fen, err)
	}
	game := chess.NewGame(opt)
	var moves []string
	checks := make(map[string]bool)
	for _, m := range game.ValidMoves() {
		s := m.String()
		moves = append(moves, s)
		if m.HasTag(chess.Check) {
			checks[s] = true
		}
	}
	sort.Strings(moves)
	return moves, checks
}

func TestLegalMovesAgainstOracle(t *testing.T) {
	roots := []string{
		InitialFEN,
		testutil.KiwipeteFEN,
		testutil.EndgameFEN,
		testutil.Position4FEN,
		testutil.Position5FEN,
		"rnbqkbnr/ppp2ppp/8/3Pp3/8/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 3",
		"8/8/8/8/8/5BB1/PPP2P2/R3K1k1 w Q - 0 1",
		"k7/5P2/6P1/3K4/8/1R2n2Q/5N2/7b w - - 0 1",
	}

	for _, root := range roots {
		t.Run(root, func(t *testing.T) {
			p := mustFEN(t, root)
			fens := []string{root}
			legal := p.LegalMoves()
			for _, m := range legal.Slice() {
				info := p.UndoInfo()
				p.Play(m)
				fens = append(fens, p.FEN())
				p.Undo(m, info)
			}

			for _, fen := range fens {
				want, checks := oracleMoves(t, fen)
				pos := mustFEN(t, fen)
				moves := pos.LegalMoves()
				testutil.AssertSameMoves(t, uciMoves(moves), want, "moves of %q", fen)
				for _, m := range moves.Slice() {
					if m.GivesCheck() != checks[m.UCI()] {
						t.Errorf("%q: %v GivesCheck = %v, oracle %v", fen, m, m.GivesCheck(), checks[m.UCI()])
					}
				}
			}
		})
	}
}
