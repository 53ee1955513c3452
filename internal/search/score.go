package search

import (
	"fmt"

	"github.com/lgbarn/chess-engine-go/internal/chess"
)

// Scores are centipawns from the point of view of the side to move.
const (
	DrawScore = 0
	MateScore = 1_000_000
	Infinity  = MateScore + 1

	// MaxPly bounds the distance from the root of any searched node.
	MaxPly = 128
)

// MatedIn is the score of being checkmated ply half-moves from the root.
func MatedIn(ply int) int {
	return -MateScore + ply
}

// MateIn is the score of delivering checkmate ply half-moves from the root.
func MateIn(ply int) int {
	return MateScore - ply
}

// IsMateScore reports whether score encodes a forced mate for either side.
func IsMateScore(score int) bool {
	return chess.Abs(score) >= MateScore-MaxPly
}

// scoreToTT converts a root-relative mate score into one relative to the
// node being stored, so it stays valid wherever the position recurs.
func scoreToTT(score, ply int) int {
	switch {
	case score >= MateScore-MaxPly:
		return score + ply
	case score <= -MateScore+MaxPly:
		return score - ply
	}
	return score
}

// scoreFromTT reverses scoreToTT for a probe at ply.
func scoreFromTT(score, ply int) int {
	switch {
	case score >= MateScore-MaxPly:
		return score - ply
	case score <= -MateScore+MaxPly:
		return score + ply
	}
	return score
}

// Evaluation is a search score in presentation form.
type Evaluation struct {
	Score    int    // centipawns, when not a mate
	IsMate   bool   // a forced mate was found
	MateIn   int    // moves to mate; negative when being mated
	Depth    int    // search depth
	BestMove string // long algebraic
}

// NewEvaluation converts an internal score into an Evaluation.
func NewEvaluation(score, depth int, best chess.Move) *Evaluation {
	e := &Evaluation{Score: score, Depth: depth}
	if best != chess.NullMove {
		e.BestMove = best.UCI()
	}
	if IsMateScore(score) {
		e.IsMate = true
		plies := MateScore - chess.Abs(score)
		e.MateIn = (plies + 1) / 2
		if score < 0 {
			e.MateIn = -e.MateIn
		}
		e.Score = 0
	}
	return e
}

// FormatEvaluation formats an evaluation for display.
func FormatEvaluation(eval *Evaluation) string {
	if eval.IsMate {
		if eval.MateIn > 0 {
			return fmt.Sprintf("+M%d", eval.MateIn)
		}
		return fmt.Sprintf("-M%d", -eval.MateIn)
	}

	// Convert centipawns to pawns
	pawns := float64(eval.Score) / 100.0
	if pawns >= 0 {
		return fmt.Sprintf("+%.2f", pawns)
	}
	return fmt.Sprintf("%.2f", pawns)
}

// FormatScore formats an internal score for display.
func FormatScore(score int) string {
	return FormatEvaluation(NewEvaluation(score, 0, chess.NullMove))
}

// UCIScore renders a score the way info lines carry it: "cp 35" or
// "mate -3".
func UCIScore(score int) string {
	eval := NewEvaluation(score, 0, chess.NullMove)
	if eval.IsMate {
		return fmt.Sprintf("mate %d", eval.MateIn)
	}
	return fmt.Sprintf("cp %d", eval.Score)
}
