package testutil

import (
	"bufio"
	"strings"
	"testing"
)

// PerftCase is a position with known node counts by depth (index 0 = depth 1).
type PerftCase struct {
	Name  string
	FEN   string
	Nodes []uint64
}

// Common FEN fixtures shared by package tests.
const (
	StartFEN     = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	KiwipeteFEN  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	EndgameFEN   = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	Position4FEN = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	Position5FEN = "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"
	MaxMovesFEN  = "3Q4/1Q4Q1/4Q3/2Q4R/Q4Q2/3Q4/1Q4Rp/1K1BBNNk w - - 0 1"
)

// PerftCases lists the standard perft positions with their published counts.
var PerftCases = []PerftCase{
	{Name: "start", FEN: StartFEN, Nodes: []uint64{20, 400, 8902}},
	{Name: "kiwipete", FEN: KiwipeteFEN, Nodes: []uint64{48, 2039}},
	{Name: "endgame", FEN: EndgameFEN, Nodes: []uint64{14, 191, 2812}},
	{Name: "position 4", FEN: Position4FEN, Nodes: []uint64{6, 264, 9467}},
	{Name: "position 5", FEN: Position5FEN, Nodes: []uint64{44, 1486}},
}

// ReadFENs returns the non-blank, non-comment lines of text.
func ReadFENs(text string) []string {
	var fens []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fens = append(fens, line)
	}
	return fens
}

// MustReadFENs is ReadFENs that fails the test when no positions are found.
func MustReadFENs(t *testing.T, text string) []string {
	t.Helper()
	fens := ReadFENs(text)
	if len(fens) == 0 {
		t.Fatal("MustReadFENs: no positions found")
	}
	return fens
}
