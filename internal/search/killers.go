package search

import "github.com/lgbarn/chess-engine-go/internal/chess"

// Killers keeps, per ply, the two most recent quiet moves that caused a
// beta cutoff.
type Killers [MaxPly + 1][2]chess.Move

// Update records m as the newest killer at ply.
func (k *Killers) Update(ply int, m chess.Move) {
	if k[ply][0] != m {
		k[ply][1] = k[ply][0]
		k[ply][0] = m
	}
}

// Is reports whether m is a killer at ply.
func (k *Killers) Is(ply int, m chess.Move) bool {
	return m != chess.NullMove && (k[ply][0] == m || k[ply][1] == m)
}

// Clear forgets every killer.
func (k *Killers) Clear() {
	*k = Killers{}
}
