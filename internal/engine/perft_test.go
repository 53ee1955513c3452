package engine

import (
	"testing"

	"github.com/lgbarn/chess-engine-go/internal/testutil"
)

func TestPerft(t *testing.T) {
	for _, pc := range testutil.PerftCases {
		t.Run(pc.Name, func(t *testing.T) {
			t.Parallel()
			p := mustFEN(t, pc.FEN)
			for i, want := range pc.Nodes {
				depth := i + 1
				if testing.Short() && depth > 2 {
					break
				}
				testutil.AssertEqual(t, p.Perft(depth), want, "perft(%d) of %s", depth, pc.Name)
			}
			testutil.AssertEqual(t, p.FEN(), pc.FEN, "position restored after perft")
		})
	}
}

func TestDivideSumsToPerft(t *testing.T) {
	p := mustFEN(t, testutil.KiwipeteFEN)
	var total uint64
	entries := p.Divide(2)
	for _, e := range entries {
		total += e.Nodes
	}
	testutil.AssertEqual(t, len(entries), 48)
	testutil.AssertEqual(t, total, p.Perft(2))
}

func TestPerftZero(t *testing.T) {
	testutil.AssertEqual(t, NewPosition().Perft(0), uint64(1))
}
