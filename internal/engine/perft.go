package engine

import "github.com/lgbarn/chess-engine-go/internal/chess"

// Perft counts the leaf nodes of the legal move tree to the given depth.
func (p *Position) Perft(depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := p.LegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}
	var nodes uint64
	for _, m := range moves.Slice() {
		info := p.UndoInfo()
		p.Play(m)
		nodes += p.Perft(depth - 1)
		p.Undo(m, info)
	}
	return nodes
}

// DivideEntry is the perft count below one root move.
type DivideEntry struct {
	Move  chess.Move
	Nodes uint64
}

// Divide returns the perft count below each root move, in generation order.
func (p *Position) Divide(depth int) []DivideEntry {
	moves := p.LegalMoves()
	out := make([]DivideEntry, 0, moves.Len())
	for _, m := range moves.Slice() {
		info := p.UndoInfo()
		p.Play(m)
		out = append(out, DivideEntry{Move: m, Nodes: p.Perft(depth - 1)})
		p.Undo(m, info)
	}
	return out
}
