// Package attacks provides precomputed attack tables for every piece type.
//
// Non-sliding pieces use one 64-entry table each. Sliding pieces use magic
// bitboards: the relevant occupancy bits of a square are multiplied by a magic
// constant and the top bits of the product index a dense table of attack sets.
// All tables are built once at package initialisation and are read-only
// afterwards, so lookups are safe from any goroutine.
package attacks

import (
	"fmt"

	"github.com/lgbarn/chess-engine-go/internal/chess"
)

var (
	pawnAttacks   [chess.NumColours][chess.NumSquares]chess.Bitboard
	knightAttacks [chess.NumSquares]chess.Bitboard
	kingAttacks   [chess.NumSquares]chess.Bitboard
)

const (
	notFileA  = ^chess.FileA
	notFileH  = ^chess.FileH
	notFileAB = ^(chess.FileA | chess.FileB)
	notFileGH = ^(chess.FileG | chess.FileH)
)

func init() {
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		b := chess.SquareBB(sq)

		pawnAttacks[chess.White][sq] = (b<<7)&notFileH | (b<<9)&notFileA
		pawnAttacks[chess.Black][sq] = (b>>9)&notFileH | (b>>7)&notFileA

		knightAttacks[sq] = (b<<17)&notFileA | (b<<15)&notFileH |
			(b<<10)&notFileAB | (b<<6)&notFileGH |
			(b>>17)&notFileH | (b>>15)&notFileA |
			(b>>10)&notFileGH | (b>>6)&notFileAB

		kingAttacks[sq] = b<<8 | b>>8 |
			(b<<1|b<<9|b>>7)&notFileA |
			(b>>1|b>>9|b<<7)&notFileH
	}
}

// Pawn returns the squares a pawn of colour on sq attacks.
func Pawn(colour chess.Colour, sq chess.Square) chess.Bitboard {
	return pawnAttacks[colour][sq]
}

// Knight returns the knight attacks from sq.
func Knight(sq chess.Square) chess.Bitboard {
	return knightAttacks[sq]
}

// King returns the king attacks from sq.
func King(sq chess.Square) chess.Bitboard {
	return kingAttacks[sq]
}

// ForPiece returns the attacks of piece standing on sq given occupancy occ.
// It panics on an invalid piece or square.
func ForPiece(piece chess.Piece, sq chess.Square, occ chess.Bitboard) chess.Bitboard {
	if !piece.IsValid() || !sq.IsValid() {
		panic(fmt.Sprintf("attacks: invalid piece %d on square %d", piece, sq))
	}
	switch piece.Type() {
	case chess.Pawn:
		return Pawn(piece.Colour(), sq)
	case chess.Knight:
		return Knight(sq)
	case chess.Bishop:
		return Bishop(sq, occ)
	case chess.Rook:
		return Rook(sq, occ)
	case chess.Queen:
		return Queen(sq, occ)
	default:
		return King(sq)
	}
}

// ForType returns the attacks of a piece type from sq, treating pawns as
// White.
func ForType(pt chess.PieceType, sq chess.Square, occ chess.Bitboard) chess.Bitboard {
	return ForPiece(chess.MakePiece(chess.White, pt), sq, occ)
}
