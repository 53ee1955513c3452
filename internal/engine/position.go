// Package engine provides the bitboard position model, FEN handling and legal
// move generation.
package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chess-engine-go/internal/attacks"
	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/hashing"
)

// Position is a complete game state. It is mutated in place by Play and
// restored by Undo; a single Position must not be shared between goroutines.
type Position struct {
	pieces  [chess.NumPieces]chess.Bitboard
	colours [chess.NumColours]chess.Bitboard
	board   [chess.NumSquares]chess.Piece

	sideToMove     chess.Colour
	castling       chess.CastlingRights
	epSquare       chess.Square
	halfMoveClock  int
	fullMoveNumber int

	hash        chess.HashCode
	repetitions *hashing.RepetitionTable
}

func newEmptyPosition() *Position {
	p := &Position{
		epSquare:       chess.NoSquare,
		fullMoveNumber: 1,
		repetitions:    hashing.NewRepetitionTable(hashing.DefaultRepetitionBits),
	}
	for sq := range p.board {
		p.board[sq] = chess.NoPiece
	}
	return p
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	p, err := NewPositionFromFEN(InitialFEN)
	if err != nil {
		panic(err)
	}
	return p
}

// Clone returns an independent deep copy, including the repetition table.
func (p *Position) Clone() *Position {
	c := *p
	c.repetitions = p.repetitions.Clone()
	return &c
}

// setPiece places piece on an empty square, keeping every view in sync.
func (p *Position) setPiece(piece chess.Piece, sq chess.Square) {
	bb := chess.SquareBB(sq)
	p.pieces[piece] |= bb
	p.colours[piece.Colour()] |= bb
	p.board[sq] = piece
	p.hash ^= hashing.Piece(piece, sq)
}

// removePiece takes piece off sq.
func (p *Position) removePiece(piece chess.Piece, sq chess.Square) {
	bb := chess.SquareBB(sq)
	p.pieces[piece] &^= bb
	p.colours[piece.Colour()] &^= bb
	p.board[sq] = chess.NoPiece
	p.hash ^= hashing.Piece(piece, sq)
}

func (p *Position) movePiece(piece chess.Piece, from, to chess.Square) {
	p.removePiece(piece, from)
	p.setPiece(piece, to)
}

// PieceAt returns the piece on sq, or NoPiece.
func (p *Position) PieceAt(sq chess.Square) chess.Piece {
	return p.board[sq]
}

// Pieces returns the squares holding piece.
func (p *Position) Pieces(piece chess.Piece) chess.Bitboard {
	return p.pieces[piece]
}

// PiecesOf returns the squares holding colour's pieces of type pt.
func (p *Position) PiecesOf(colour chess.Colour, pt chess.PieceType) chess.Bitboard {
	return p.pieces[chess.MakePiece(colour, pt)]
}

// ColourOccupancy returns every square holding one of colour's pieces.
func (p *Position) ColourOccupancy(colour chess.Colour) chess.Bitboard {
	return p.colours[colour]
}

// Occupancy returns every occupied square.
func (p *Position) Occupancy() chess.Bitboard {
	return p.colours[chess.White] | p.colours[chess.Black]
}

// KingSquare returns the square of colour's king.
func (p *Position) KingSquare(colour chess.Colour) chess.Square {
	return p.pieces[chess.MakePiece(colour, chess.King)].LSB()
}

// SideToMove returns the colour to move.
func (p *Position) SideToMove() chess.Colour { return p.sideToMove }

// CastlingRights returns the current castling rights.
func (p *Position) CastlingRights() chess.CastlingRights { return p.castling }

// EnPassant returns the en-passant target square, or NoSquare.
func (p *Position) EnPassant() chess.Square { return p.epSquare }

// HalfMoveClock returns the half-moves since the last capture or pawn move.
func (p *Position) HalfMoveClock() int { return p.halfMoveClock }

// FullMoveNumber returns the full-move counter.
func (p *Position) FullMoveNumber() int { return p.fullMoveNumber }

// Hash returns the Zobrist hash of the position.
func (p *Position) Hash() chess.HashCode { return p.hash }

// RepetitionCount returns how often the current position occurs on the
// recorded line, including itself.
func (p *Position) RepetitionCount() int {
	return p.repetitions.Count(p.hash)
}

// ResetRepetitions forgets the recorded line and counts the current
// position once.
func (p *Position) ResetRepetitions() {
	p.repetitions.Reset()
	p.repetitions.Increment(p.hash)
}

// HasNonPawnMaterial reports whether colour owns a knight, bishop, rook or
// queen.
func (p *Position) HasNonPawnMaterial(colour chess.Colour) bool {
	own := p.colours[colour]
	return own&^p.PiecesOf(colour, chess.Pawn)&^p.PiecesOf(colour, chess.King) != 0
}

// computeHash rebuilds the hash from scratch.
func (p *Position) computeHash() chess.HashCode {
	var h chess.HashCode
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		if piece := p.board[sq]; piece != chess.NoPiece {
			h ^= hashing.Piece(piece, sq)
		}
	}
	h ^= hashing.Side(p.sideToMove)
	h ^= hashing.Castling(p.castling)
	h ^= hashing.EnPassant(p.epSquare)
	return h
}

// Validate checks the internal views agree with each other.
func (p *Position) Validate() error {
	var white, black chess.Bitboard
	for piece := chess.Piece(0); piece < chess.NumPieces; piece++ {
		if piece.Colour() == chess.White {
			white |= p.pieces[piece]
		} else {
			black |= p.pieces[piece]
		}
		for bb := p.pieces[piece]; bb != 0; {
			sq := bb.PopLSB()
			if p.board[sq] != piece {
				return fmt.Errorf("square %v: mailbox has %v, bitboard has %v", sq, p.board[sq], piece)
			}
		}
	}
	if white != p.colours[chess.White] || black != p.colours[chess.Black] {
		return fmt.Errorf("colour occupancy out of sync")
	}
	if white&black != 0 {
		return fmt.Errorf("squares %#x occupied by both colours", uint64(white&black))
	}
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		if p.board[sq] != chess.NoPiece && !p.pieces[p.board[sq]].Has(sq) {
			return fmt.Errorf("square %v: mailbox piece missing from bitboard", sq)
		}
	}
	if h := p.computeHash(); h != p.hash {
		return fmt.Errorf("hash %#x, recomputed %#x", uint64(p.hash), uint64(h))
	}
	return nil
}

// attackersTo returns the pieces of both colours within occ that attack sq
// when the board occupancy is occ.
func (p *Position) attackersTo(sq chess.Square, occ chess.Bitboard) chess.Bitboard {
	queens := p.pieces[chess.WhiteQueen] | p.pieces[chess.BlackQueen]
	bishops := p.pieces[chess.WhiteBishop] | p.pieces[chess.BlackBishop] | queens
	rooks := p.pieces[chess.WhiteRook] | p.pieces[chess.BlackRook] | queens
	knights := p.pieces[chess.WhiteKnight] | p.pieces[chess.BlackKnight]
	kings := p.pieces[chess.WhiteKing] | p.pieces[chess.BlackKing]

	return (attacks.Pawn(chess.White, sq)&p.pieces[chess.BlackPawn] |
		attacks.Pawn(chess.Black, sq)&p.pieces[chess.WhitePawn] |
		attacks.Knight(sq)&knights |
		attacks.King(sq)&kings |
		attacks.Bishop(sq, occ)&bishops |
		attacks.Rook(sq, occ)&rooks) & occ
}

// IsSquareAttacked reports whether any piece of by attacks sq.
func (p *Position) IsSquareAttacked(sq chess.Square, by chess.Colour) bool {
	return p.attackersTo(sq, p.Occupancy())&p.colours[by] != 0
}

// AttacksBy returns every square colour attacks. Sliders see through the
// opposing king, so squares behind it along a checking ray count as attacked.
func (p *Position) AttacksBy(colour chess.Colour) chess.Bitboard {
	occ := p.Occupancy() &^ p.PiecesOf(colour.Opposite(), chess.King)
	var att chess.Bitboard
	for bb := p.colours[colour]; bb != 0; {
		sq := bb.PopLSB()
		att |= attacks.ForPiece(p.board[sq], sq, occ)
	}
	return att
}

// String renders the board with rank 8 on top, followed by the FEN and hash.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			sb.WriteByte(p.board[chess.NewSquare(file, rank)].Letter())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	fmt.Fprintf(&sb, "FEN: %s\n", p.FEN())
	fmt.Fprintf(&sb, "Hash: %016x\n", uint64(p.hash))
	return sb.String()
}
