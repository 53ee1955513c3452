package search

import "github.com/lgbarn/chess-engine-go/internal/chess"

const (
	ttMoveBonus    = 10_000_000
	checkBonus     = 5_000_000
	promotionBonus = 1_000_000
	killerBonus    = 500_000
)

// attackerValues ranks pieces for MVV-LVA in millipawns. The king counts
// as a minor piece and a missing victim as nothing.
var attackerValues = [chess.NumPieceTypes + 1]int{
	chess.Pawn:        1000,
	chess.Knight:      3000,
	chess.Bishop:      3150,
	chess.Rook:        5000,
	chess.Queen:       9500,
	chess.King:        4000,
	chess.NoPieceType: 0,
}

// mvvLva prefers valuable victims, then cheap attackers. Quiet moves rank
// below every capture.
func mvvLva(m chess.Move) int {
	return 10_000 - attackerValues[m.Piece().Type()] + 10*attackerValues[m.Captured().Type()]
}

// isQuiet reports a move that neither checks, captures nor promotes.
func isQuiet(m chess.Move) bool {
	return !m.GivesCheck() && !m.IsCapture() && !m.IsPromotion()
}

// orderMoves sorts moves for the main search: the hash move, checks,
// promotions, killers, then captures by MVV-LVA.
func orderMoves(moves *chess.MoveList, ttMove chess.Move, killers *Killers, ply int) {
	moves.SortBy(func(m chess.Move) int {
		if m == ttMove {
			return ttMoveBonus
		}
		score := mvvLva(m)
		if m.GivesCheck() {
			score += checkBonus
		}
		if m.IsPromotion() {
			score += promotionBonus
		}
		if score < promotionBonus && killers.Is(ply, m) {
			score += killerBonus
		}
		return score
	})
}

// orderCaptures sorts quiescence moves by MVV-LVA, promotions first.
func orderCaptures(moves *chess.MoveList) {
	moves.SortBy(func(m chess.Move) int {
		score := mvvLva(m)
		if m.IsPromotion() {
			score += promotionBonus
		}
		return score
	})
}
