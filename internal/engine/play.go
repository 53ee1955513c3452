package engine

import (
	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/hashing"
)

// UndoInfo holds the irreversible parts of a position that Undo cannot
// derive from the move itself.
type UndoInfo struct {
	Castling       chess.CastlingRights
	EnPassant      chess.Square
	HalfMoveClock  int
	FullMoveNumber int
}

// UndoInfo captures the state needed to undo the next move. Call it before
// Play.
func (p *Position) UndoInfo() UndoInfo {
	return UndoInfo{
		Castling:       p.castling,
		EnPassant:      p.epSquare,
		HalfMoveClock:  p.halfMoveClock,
		FullMoveNumber: p.fullMoveNumber,
	}
}

// epCaptureSquare is the square of the pawn removed by an en-passant move.
func epCaptureSquare(m chess.Move) chess.Square {
	return chess.NewSquare(m.To().File(), m.From().Rank())
}

// castleGeometry returns the castling squares for a castling move.
func castleGeometry(m chess.Move) chess.CastleGeometry {
	side := chess.KingSide
	if m.To().File() < m.From().File() {
		side = chess.QueenSide
	}
	return chess.Geometry(m.Piece().Colour(), side)
}

// Play makes a legal move. The move must come from LegalMoves for this
// exact position.
func (p *Position) Play(m chess.Move) {
	us := p.sideToMove
	from, to, piece := m.From(), m.To(), m.Piece()

	p.hash ^= hashing.EnPassant(p.epSquare) ^ hashing.Castling(p.castling)
	p.epSquare = chess.NoSquare
	p.halfMoveClock++

	switch m.Kind() {
	case chess.Normal:
		if captured := m.Captured(); captured != chess.NoPiece {
			p.removePiece(captured, to)
			p.halfMoveClock = 0
		}
		p.movePiece(piece, from, to)
		if piece.Type() == chess.Pawn {
			p.halfMoveClock = 0
			if chess.Abs(int(to)-int(from)) == 16 {
				p.epSquare = (from + to) / 2
			}
		}
	case chess.EnPassant:
		p.removePiece(m.Captured(), epCaptureSquare(m))
		p.movePiece(piece, from, to)
		p.halfMoveClock = 0
	case chess.Promotion:
		if captured := m.Captured(); captured != chess.NoPiece {
			p.removePiece(captured, to)
		}
		p.removePiece(piece, from)
		p.setPiece(m.Promoted(), to)
		p.halfMoveClock = 0
	case chess.Castling:
		g := castleGeometry(m)
		rook := chess.MakePiece(us, chess.Rook)
		p.movePiece(piece, from, to)
		p.movePiece(rook, g.RookFrom, g.RookTo)
	}

	p.castling &^= chess.RightsLostAt(from) | chess.RightsLostAt(to)
	p.hash ^= hashing.EnPassant(p.epSquare) ^ hashing.Castling(p.castling)

	if us == chess.Black {
		p.fullMoveNumber++
	}
	p.sideToMove = us.Opposite()
	p.hash ^= hashing.Side(us) ^ hashing.Side(p.sideToMove)

	p.repetitions.Increment(p.hash)
}

// Undo reverts m, which must be the last move played, using the info
// captured before it was played.
func (p *Position) Undo(m chess.Move, info UndoInfo) {
	p.repetitions.Decrement(p.hash)

	them := p.sideToMove
	us := them.Opposite()
	p.sideToMove = us
	p.hash ^= hashing.Side(them) ^ hashing.Side(us)

	p.hash ^= hashing.EnPassant(p.epSquare) ^ hashing.Castling(p.castling)
	p.castling = info.Castling
	p.epSquare = info.EnPassant
	p.halfMoveClock = info.HalfMoveClock
	p.fullMoveNumber = info.FullMoveNumber
	p.hash ^= hashing.EnPassant(p.epSquare) ^ hashing.Castling(p.castling)

	from, to, piece := m.From(), m.To(), m.Piece()
	switch m.Kind() {
	case chess.Normal:
		p.movePiece(piece, to, from)
		if captured := m.Captured(); captured != chess.NoPiece {
			p.setPiece(captured, to)
		}
	case chess.EnPassant:
		p.movePiece(piece, to, from)
		p.setPiece(m.Captured(), epCaptureSquare(m))
	case chess.Promotion:
		p.removePiece(m.Promoted(), to)
		p.setPiece(piece, from)
		if captured := m.Captured(); captured != chess.NoPiece {
			p.setPiece(captured, to)
		}
	case chess.Castling:
		g := castleGeometry(m)
		rook := chess.MakePiece(us, chess.Rook)
		p.movePiece(rook, g.RookTo, g.RookFrom)
		p.movePiece(piece, to, from)
	}
}

// PlayNull passes the turn. It returns the en-passant square to hand back
// to UndoNull. Null moves are not recorded in the repetition table.
func (p *Position) PlayNull() chess.Square {
	ep := p.epSquare
	p.hash ^= hashing.EnPassant(ep)
	p.epSquare = chess.NoSquare

	us := p.sideToMove
	p.sideToMove = us.Opposite()
	p.hash ^= hashing.Side(us) ^ hashing.Side(p.sideToMove)
	return ep
}

// UndoNull reverts PlayNull.
func (p *Position) UndoNull(ep chess.Square) {
	them := p.sideToMove
	p.sideToMove = them.Opposite()
	p.hash ^= hashing.Side(them) ^ hashing.Side(p.sideToMove)

	p.epSquare = ep
	p.hash ^= hashing.EnPassant(ep)
}
