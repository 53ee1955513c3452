// Package hashing provides Zobrist position keys, the repetition table, and
// duplicate detection over position hashes.
package hashing

import "github.com/lgbarn/chess-engine-go/internal/chess"

// Keys holds one random key per hashed position feature.
type Keys struct {
	pieces   [chess.NumPieces][chess.NumSquares]chess.HashCode
	side     [chess.NumColours]chess.HashCode
	castling [chess.NumCastlingRights]chess.HashCode
	epFile   [8]chess.HashCode
}

// NewKeys draws a key set from a deterministic generator.
func NewKeys(seed uint64) *Keys {
	rng := chess.NewPRNG(seed)
	k := &Keys{}
	for p := range k.pieces {
		for sq := range k.pieces[p] {
			k.pieces[p][sq] = chess.HashCode(rng.Next())
		}
	}
	for c := range k.side {
		k.side[c] = chess.HashCode(rng.Next())
	}
	for r := range k.castling {
		k.castling[r] = chess.HashCode(rng.Next())
	}
	for f := range k.epFile {
		k.epFile[f] = chess.HashCode(rng.Next())
	}
	return k
}

var zobrist = NewKeys(chess.DefaultSeed)

// Piece returns the key for piece standing on sq.
func Piece(p chess.Piece, sq chess.Square) chess.HashCode {
	return zobrist.pieces[p][sq]
}

// Side returns the key for colour to move.
func Side(c chess.Colour) chess.HashCode {
	return zobrist.side[c]
}

// Castling returns the key for a castling rights value.
func Castling(r chess.CastlingRights) chess.HashCode {
	return zobrist.castling[r]
}

// EnPassant returns the key for the file of an en-passant square, or zero
// when there is none.
func EnPassant(sq chess.Square) chess.HashCode {
	if !sq.IsValid() {
		return 0
	}
	return zobrist.epFile[sq.File()]
}
