package search

import (
	"testing"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/testutil"
)

func TestFormatEvaluation(t *testing.T) {
	tests := []struct {
		name string
		eval *Evaluation
		want string
	}{
		{name: "zero", eval: &Evaluation{}, want: "+0.00"},
		{name: "small positive", eval: &Evaluation{Score: 15}, want: "+0.15"},
		{name: "small negative", eval: &Evaluation{Score: -8}, want: "-0.08"},
		{name: "pawns and centipawns", eval: &Evaluation{Score: 1250}, want: "+12.50"},
		{name: "mate in one", eval: &Evaluation{IsMate: true, MateIn: 1}, want: "+M1"},
		{name: "getting mated", eval: &Evaluation{IsMate: true, MateIn: -5}, want: "-M5"},
		{name: "mated now", eval: &Evaluation{IsMate: true}, want: "-M0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			testutil.AssertEqual(t, FormatEvaluation(tt.eval), tt.want)
		})
	}
}

func TestNewEvaluation(t *testing.T) {
	e2e4 := chess.NewMove(chess.NewSquare(4, 1), chess.NewSquare(4, 3), chess.WhitePawn, chess.NoPiece)

	tests := []struct {
		name       string
		score      int
		wantMate   bool
		wantMateIn int
		wantScore  int
	}{
		{name: "centipawns", score: 37, wantScore: 37},
		{name: "mate in one", score: MateIn(1), wantMate: true, wantMateIn: 1},
		{name: "mate in two", score: MateIn(3), wantMate: true, wantMateIn: 2},
		{name: "mated now", score: MatedIn(0), wantMate: true, wantMateIn: 0},
		{name: "mated in one", score: MatedIn(2), wantMate: true, wantMateIn: -1},
		{name: "mated in three", score: MatedIn(6), wantMate: true, wantMateIn: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := NewEvaluation(tt.score, 5, e2e4)
			if got.IsMate != tt.wantMate || got.MateIn != tt.wantMateIn || got.Score != tt.wantScore {
				t.Errorf("NewEvaluation(%d) = %+v", tt.score, got)
			}
			if got.BestMove != "e2e4" || got.Depth != 5 {
				t.Errorf("NewEvaluation(%d) move/depth = %q/%d", tt.score, got.BestMove, got.Depth)
			}
		})
	}
}

func TestUCIScore(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "cp 0"},
		{-45, "cp -45"},
		{MateIn(5), "mate 3"},
		{MatedIn(4), "mate -2"},
	}
	for _, tt := range tests {
		if got := UCIScore(tt.score); got != tt.want {
			t.Errorf("UCIScore(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestFormatScore(t *testing.T) {
	if got := FormatScore(MateIn(5)); got != "+M3" {
		t.Errorf("FormatScore(mate in 3) = %q", got)
	}
	if got := FormatScore(-120); got != "-1.20" {
		t.Errorf("FormatScore(-120) = %q", got)
	}
}

func TestScoreTTConversion(t *testing.T) {
	tests := []struct {
		name  string
		score int
		ply   int
	}{
		{name: "plain score unchanged", score: 250, ply: 7},
		{name: "winning mate", score: MateIn(9), ply: 4},
		{name: "losing mate", score: MatedIn(10), ply: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored := scoreToTT(tt.score, tt.ply)
			if got := scoreFromTT(stored, tt.ply); got != tt.score {
				t.Errorf("round trip %d -> %d -> %d", tt.score, stored, got)
			}
		})
	}

	// A mate stored at ply 4 means mate 5 plies from that node, so read
	// back at ply 2 it is 7 plies from the new root.
	stored := scoreToTT(MateIn(9), 4)
	if got := scoreFromTT(stored, 2); got != MateIn(7) {
		t.Errorf("scoreFromTT at other ply = %d, want %d", got, MateIn(7))
	}
	if IsMateScore(MateScore - MaxPly - 1) {
		t.Error("score below mate threshold reported as mate")
	}
}
