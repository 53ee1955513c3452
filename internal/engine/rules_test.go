package engine

import (
	"testing"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/testutil"
)

// TestHasInsufficientMaterial tests various material configurations
func TestHasInsufficientMaterial(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want bool // true = insufficient material
	}{
		{"K vs K", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"K+B vs K", "4k3/8/8/8/8/8/8/4KB2 w - - 0 1", true},
		{"K+N vs K", "4k3/8/8/8/8/8/8/4KN2 w - - 0 1", true},
		{"K vs K+b", "4k1b1/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"K vs K+n", "4k1n1/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"K+B vs K+B same color", "5bk1/8/8/8/8/8/8/2B1K3 w - - 0 1", true},
		{"K+R vs K", "4k3/8/8/8/8/8/8/4KR2 w - - 0 1", false},
		{"K+Q vs K", "4k3/8/8/8/8/8/8/4KQ2 w - - 0 1", false},
		{"K+P vs K", "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", false},
		{"K+B vs K+B opposite color", "5bk1/8/8/8/8/8/8/3BK3 w - - 0 1", false},
		{"K+B+B vs K", "4k3/8/8/8/8/8/8/2B1KB2 w - - 0 1", false},
		{"K+N vs K+N", "4k1n1/8/8/8/8/8/8/4KN2 w - - 0 1", false},
		{"standard starting position", InitialFEN, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := HasInsufficientMaterial(mustFEN(t, tt.fen))
			if got != tt.want {
				t.Errorf("HasInsufficientMaterial() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want Status
	}{
		{"start", InitialFEN, Ongoing},
		{"fifty moves", "4k3/8/8/8/8/8/8/4KR2 w - - 100 80", FiftyMoveDraw},
		{"bare kings", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", InsufficientMaterialDraw},
		{"mate beats fifty moves", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 100 3", Checkmate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := mustFEN(t, tt.fen).Status()
			testutil.AssertEqual(t, got, tt.want)
			testutil.AssertEqual(t, got.IsDraw(), tt.want >= Stalemate)
		})
	}
	testutil.AssertEqual(t, RepetitionDraw.String(), "threefold repetition")
}

// TestAnalyzeDrawRules_EmptyLine tests analyzing a line with no moves
func TestAnalyzeDrawRules_EmptyLine(t *testing.T) {
	result := AnalyzeDrawRules(NewPosition(), nil)
	testutil.AssertEqual(t, result, DrawRuleResult{})
}

// TestAnalyzeDrawRules_MaterialOdds tests detecting material odds
func TestAnalyzeDrawRules_MaterialOdds(t *testing.T) {
	p := mustFEN(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN1 w Qkq - 0 1")
	testutil.AssertTrue(t, AnalyzeDrawRules(p, nil).HasMaterialOdds)
}

// TestAnalyzeDrawRules_FiveFold replays a knight shuffle five times.
func TestAnalyzeDrawRules_FiveFold(t *testing.T) {
	start := NewPosition()
	p := start.Clone()
	var line []chess.Move
	for i := 0; i < 4; i++ {
		for _, s := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
			m, err := p.ParseMove(s)
			testutil.AssertNoError(t, err)
			line = append(line, m)
			p.Play(m)
		}
	}
	result := AnalyzeDrawRules(start, line)
	testutil.AssertTrue(t, result.Has5FoldRepetition)
	testutil.AssertFalse(t, result.Has75MoveRule)
	testutil.AssertEqual(t, start.FEN(), InitialFEN, "start position untouched")
}

func TestAnalyzeDrawRules_SeventyFive(t *testing.T) {
	p := mustFEN(t, "K1k5/8/8/8/8/8/8/8 w - - 148 80")
	var line []chess.Move
	q := p.Clone()
	for _, s := range []string{"a8a7", "c8c7"} {
		m, err := q.ParseMove(s)
		testutil.AssertNoError(t, err)
		line = append(line, m)
		q.Play(m)
	}
	result := AnalyzeDrawRules(p, line)
	testutil.AssertTrue(t, result.Has75MoveRule)
	testutil.AssertTrue(t, result.HasInsufficientMaterial)
}
