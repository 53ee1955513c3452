package engine

import "github.com/lgbarn/chess-engine-go/internal/chess"

// Status is the outcome of a position for the side to move.
type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	FiftyMoveDraw
	RepetitionDraw
	InsufficientMaterialDraw
)

// String returns a readable status.
func (s Status) String() string {
	names := []string{"ongoing", "checkmate", "stalemate", "fifty-move rule",
		"threefold repetition", "insufficient material"}
	if int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// IsDraw reports whether the status ends the game drawn.
func (s Status) IsDraw() bool {
	return s >= Stalemate
}

// FiftyMovePlies is the half-move clock value at which a draw can be claimed.
const FiftyMovePlies = 100

// Status classifies the position. Mate and stalemate take precedence over
// the claimable draws.
func (p *Position) Status() Status {
	if !p.HasLegalMoves() {
		if p.IsInCheck() {
			return Checkmate
		}
		return Stalemate
	}
	switch {
	case p.halfMoveClock >= FiftyMovePlies:
		return FiftyMoveDraw
	case p.RepetitionCount() >= 3:
		return RepetitionDraw
	case HasInsufficientMaterial(p):
		return InsufficientMaterialDraw
	}
	return Ongoing
}

// DrawRuleResult contains the results of draw rule detection over a line.
type DrawRuleResult struct {
	// Has75MoveRule is true if a position was reached where 75 moves
	// (150 half-moves) have been made without a pawn move or capture.
	Has75MoveRule bool

	// Has5FoldRepetition is true if any position occurred 5 or more times.
	Has5FoldRepetition bool

	// HasInsufficientMaterial is true if the final position has insufficient
	// mating material for either side.
	HasInsufficientMaterial bool

	// HasMaterialOdds is true if the line started with non-standard material.
	HasMaterialOdds bool
}

// AnalyzeDrawRules replays moves from start on a copy and reports the
// automatic draw conditions met along the way. Replay stops at the first
// illegal move.
func AnalyzeDrawRules(start *Position, moves []chess.Move) DrawRuleResult {
	result := DrawRuleResult{HasMaterialOdds: !isStandardMaterial(start)}

	p := start.Clone()
	positionCounts := map[chess.HashCode]int{p.hash: 1}

	for _, m := range moves {
		legal := p.LegalMoves()
		if !legal.Contains(m) {
			break
		}
		p.Play(m)

		if p.halfMoveClock >= 150 {
			result.Has75MoveRule = true
		}
		positionCounts[p.hash]++
		if positionCounts[p.hash] >= 5 {
			result.Has5FoldRepetition = true
		}
	}

	result.HasInsufficientMaterial = HasInsufficientMaterial(p)
	return result
}

// HasInsufficientMaterial returns true if the position has insufficient
// mating material for either side.
// Insufficient material includes:
// - K vs K
// - K+B vs K
// - K+N vs K
// - K+B vs K+B (same color bishops)
func HasInsufficientMaterial(p *Position) bool {
	for _, c := range []chess.Colour{chess.White, chess.Black} {
		if p.PiecesOf(c, chess.Pawn)|p.PiecesOf(c, chess.Rook)|p.PiecesOf(c, chess.Queen) != 0 {
			return false
		}
	}

	minors := func(c chess.Colour) chess.Bitboard {
		return p.PiecesOf(c, chess.Knight) | p.PiecesOf(c, chess.Bishop)
	}
	white, black := minors(chess.White), minors(chess.Black)

	switch {
	case white == 0 && black == 0:
		return true
	case white == 0 && black.Count() == 1, black == 0 && white.Count() == 1:
		return true
	}

	wb, bb := p.PiecesOf(chess.White, chess.Bishop), p.PiecesOf(chess.Black, chess.Bishop)
	if white.Count() == 1 && black.Count() == 1 && wb != 0 && bb != 0 {
		return isLightSquare(wb.LSB()) == isLightSquare(bb.LSB())
	}
	return false
}

// isLightSquare returns true if the given square is a light square.
func isLightSquare(sq chess.Square) bool {
	return (sq.File()+sq.Rank())%2 == 1
}

var standardMaterial = map[chess.PieceType]int{
	chess.Pawn: 8, chess.Knight: 2, chess.Bishop: 2, chess.Rook: 2, chess.Queen: 1, chess.King: 1,
}

// isStandardMaterial checks if the position has standard starting material.
func isStandardMaterial(p *Position) bool {
	for _, c := range []chess.Colour{chess.White, chess.Black} {
		for pt, want := range standardMaterial {
			if p.PiecesOf(c, pt).Count() != want {
				return false
			}
		}
	}
	return true
}
