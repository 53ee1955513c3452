package search

import (
	"github.com/lgbarn/chess-engine-go/internal/attacks"
	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/engine"
)

const (
	passedBonus    = 71
	protectedBonus = 41
	isolatedMalus  = 53
	backwardMalus  = 37
)

var (
	// passedMasks[c][sq] covers the squares in front of a c pawn on sq, on
	// its own and the adjacent files.
	passedMasks [chess.NumColours][chess.NumSquares]chess.Bitboard
	// adjacentFiles[f] covers the files beside file f.
	adjacentFiles [8]chess.Bitboard
)

func init() {
	for f := 0; f < 8; f++ {
		if f > 0 {
			adjacentFiles[f] |= chess.FileMask(f - 1)
		}
		if f < 7 {
			adjacentFiles[f] |= chess.FileMask(f + 1)
		}
	}
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		files := chess.FileMask(sq.File()) | adjacentFiles[sq.File()]
		for r := sq.Rank() + 1; r < 8; r++ {
			passedMasks[chess.White][sq] |= files & chess.RankMask(r)
		}
		for r := sq.Rank() - 1; r >= 0; r-- {
			passedMasks[chess.Black][sq] |= files & chess.RankMask(r)
		}
	}
}

// pawnStructure scores the pawns of c: passed pawns earn a bonus, raised
// when another pawn protects them; isolated and backward pawns are
// penalised.
func pawnStructure(p *engine.Position, c chess.Colour) int {
	them := c.Opposite()
	own := p.PiecesOf(c, chess.Pawn)
	enemy := p.PiecesOf(them, chess.Pawn)
	score := 0

	for bb := own; bb != 0; {
		sq := bb.PopLSB()
		switch {
		case isPassed(sq, c, enemy):
			score += passedBonus
			if attacks.Pawn(them, sq)&own != 0 {
				score += protectedBonus
			}
		case own&adjacentFiles[sq.File()] == 0:
			score -= isolatedMalus
		case isBackward(sq, c, own, enemy):
			score -= backwardMalus
		}
	}
	return score
}

func isPassed(sq chess.Square, c chess.Colour, enemy chess.Bitboard) bool {
	return enemy&passedMasks[c][sq] == 0
}

// isBackward reports a pawn no friendly pawn beside or behind it can
// support, whose advance square an enemy pawn controls.
func isBackward(sq chess.Square, c chess.Colour, own, enemy chess.Bitboard) bool {
	support := adjacentFiles[sq.File()] &^ passedMasks[c][sq]
	if own&support != 0 {
		return false
	}
	stop := chess.Square(int(sq) + 8*chess.ColourOffset(c))
	if !stop.IsValid() {
		return false
	}
	return attacks.Pawn(c, stop)&enemy != 0
}
