package search

import (
	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/engine"
)

// principalVariation returns the best line from the root: the root's best
// move followed by the hash moves of the positions it leads to. Every move
// is checked for legality since a slot may belong to another position with
// the same index.
func (e *Engine) principalVariation(maxLen int) []chess.Move {
	p := e.pos
	if e.rootBest == chess.NullMove {
		return nil
	}

	type played struct {
		move chess.Move
		info engine.UndoInfo
	}
	line := make([]played, 0, maxLen)

	m := e.rootBest
	for len(line) < maxLen {
		legal := p.LegalMoves()
		if !legal.Contains(m) {
			break
		}
		line = append(line, played{move: m, info: p.UndoInfo()})
		p.Play(m)
		if p.RepetitionCount() > 1 {
			break
		}
		entry, ok := e.tt.Probe(p.Hash())
		if !ok || entry.Move == chess.NullMove {
			break
		}
		m = entry.Move
	}

	pv := make([]chess.Move, len(line))
	for i := len(line) - 1; i >= 0; i-- {
		p.Undo(line[i].move, line[i].info)
		pv[i] = line[i].move
	}
	return pv
}
