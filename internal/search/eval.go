package search

import (
	"github.com/lgbarn/chess-engine-go/internal/attacks"
	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/engine"
)

// Evaluation terms are in millipawns; Evaluate scales the total to
// centipawns.
var pieceValues = [chess.NumPieceTypes + 1]int{
	chess.Pawn:   1000,
	chess.Knight: 3000,
	chess.Bishop: 3150,
	chess.Rook:   5000,
	chess.Queen:  9500,
	chess.King:   0,
}

const (
	mobilityWeight  = 11
	controlWeight   = 5
	bishopPairBonus = 200
)

// squareWeights rates control of each square, highest in the centre.
var squareWeights = [chess.NumSquares]int{
	1, 1, 1, 1, 1, 1, 1, 1,
	1, 2, 2, 2, 2, 2, 2, 1,
	1, 2, 4, 4, 4, 4, 2, 1,
	1, 2, 4, 6, 6, 4, 2, 1,
	1, 2, 4, 6, 6, 4, 2, 1,
	1, 2, 4, 4, 4, 4, 2, 1,
	1, 2, 2, 2, 2, 2, 2, 1,
	1, 1, 1, 1, 1, 1, 1, 1,
}

// Evaluate scores p statically in centipawns from the side to move's
// point of view.
func Evaluate(p *engine.Position) int {
	us := p.SideToMove()
	return (evalSide(p, us) - evalSide(p, us.Opposite())) / 10
}

func evalSide(p *engine.Position, c chess.Colour) int {
	if !hasMatingMaterial(p, c) {
		return 0
	}
	score := material(p, c) + mobility(p, c) + pawnStructure(p, c) + squareControl(p, c)
	if hasBishopPair(p, c) {
		score += bishopPairBonus
	}
	return score
}

func material(p *engine.Position, c chess.Colour) int {
	score := 0
	for pt := chess.Pawn; pt < chess.King; pt++ {
		score += p.PiecesOf(c, pt).Count() * pieceValues[pt]
	}
	return score
}

// mobility counts the squares attacked by minor and major pieces.
func mobility(p *engine.Position, c chess.Colour) int {
	occ := p.Occupancy()
	score := 0
	for pt := chess.Knight; pt <= chess.Queen; pt++ {
		for bb := p.PiecesOf(c, pt); bb != 0; {
			sq := bb.PopLSB()
			score += mobilityWeight * attacks.ForType(pt, sq, occ).Count()
		}
	}
	return score
}

func squareControl(p *engine.Position, c chess.Colour) int {
	control := 0
	for bb := p.AttacksBy(c); bb != 0; {
		control += squareWeights[bb.PopLSB()]
	}
	return controlWeight * control
}

func hasBishopPair(p *engine.Position, c chess.Colour) bool {
	bishops := p.PiecesOf(c, chess.Bishop)
	return bishops&lightSquares != 0 && bishops&^lightSquares != 0
}

// lightSquares holds b1, d1, ..., a2, c2, ...
const lightSquares chess.Bitboard = 0x55AA55AA55AA55AA

// hasMatingMaterial reports whether c could ever force mate with its own
// pieces. A side that cannot scores nothing, so lone minor pieces do not
// count as an advantage.
func hasMatingMaterial(p *engine.Position, c chess.Colour) bool {
	if p.PiecesOf(c, chess.Pawn)|p.PiecesOf(c, chess.Rook)|p.PiecesOf(c, chess.Queen) != 0 {
		return true
	}
	bishops := p.PiecesOf(c, chess.Bishop).Count()
	if bishops > 1 {
		return true
	}
	switch p.PiecesOf(c, chess.Knight).Count() {
	case 0:
		return false
	case 1:
		return bishops > 0
	case 2:
		them := c.Opposite()
		return bishops > 0 || p.ColourOccupancy(them)&^p.PiecesOf(them, chess.King) != 0
	}
	return true
}
