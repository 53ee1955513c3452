package engine

import (
	"github.com/lgbarn/chess-engine-go/internal/attacks"
	"github.com/lgbarn/chess-engine-go/internal/chess"
)

// CheckKind classifies how the side to move is checked.
type CheckKind int

const (
	NoCheck CheckKind = iota
	SingleCheck
	DoubleCheck
)

// checkInfo describes the check on the side to move. For a single check,
// mask holds the squares a non-king move must land on: the checker and,
// for a slider, the squares between it and the king.
type checkInfo struct {
	kind CheckKind
	mask chess.Bitboard
}

// IsInCheck returns true if the side to move's king is attacked.
func (p *Position) IsInCheck() bool {
	us := p.sideToMove
	return p.attackersTo(p.KingSquare(us), p.Occupancy())&p.colours[us.Opposite()] != 0
}

// Checkers returns the enemy pieces giving check to the side to move.
func (p *Position) Checkers() chess.Bitboard {
	us := p.sideToMove
	return p.attackersTo(p.KingSquare(us), p.Occupancy()) & p.colours[us.Opposite()]
}

func (p *Position) checkInfo() checkInfo {
	checkers := p.Checkers()
	switch checkers.Count() {
	case 0:
		return checkInfo{kind: NoCheck, mask: chess.Full}
	case 1:
		csq := checkers.LSB()
		mask := checkers
		if p.board[csq].Type().IsSlider() {
			mask |= chess.Between(p.KingSquare(p.sideToMove), csq)
		}
		return checkInfo{kind: SingleCheck, mask: mask}
	default:
		return checkInfo{kind: DoubleCheck}
	}
}

// CheckKind reports whether the side to move is in no, single or double check.
func (p *Position) CheckKind() CheckKind {
	return p.checkInfo().kind
}

// pinInfo holds, for every absolutely pinned piece of the side to move, the
// squares it may still move to: the ray from its king up to and including
// the pinner.
type pinInfo struct {
	pinned chess.Bitboard
	masks  [chess.NumSquares]chess.Bitboard
}

func (pi *pinInfo) mask(sq chess.Square) chess.Bitboard {
	if pi.pinned.Has(sq) {
		return pi.masks[sq]
	}
	return chess.Full
}

func (p *Position) pins() pinInfo {
	var pi pinInfo
	us := p.sideToMove
	them := us.Opposite()
	ksq := p.KingSquare(us)
	occ := p.Occupancy()

	diag := p.PiecesOf(them, chess.Bishop) | p.PiecesOf(them, chess.Queen)
	orth := p.PiecesOf(them, chess.Rook) | p.PiecesOf(them, chess.Queen)

	for d := chess.Direction(0); d < chess.NumDirections; d++ {
		sliders := orth
		if d.IsDiagonal() {
			sliders = diag
		}
		ray := chess.Ray(ksq, d)
		if ray&sliders == 0 {
			continue
		}
		first := chess.FirstBlocker(ray&occ, d)
		if first == chess.NoSquare || !p.colours[us].Has(first) {
			continue
		}
		second := chess.FirstBlocker(chess.Ray(first, d)&occ, d)
		if second == chess.NoSquare || !sliders.Has(second) {
			continue
		}
		pi.pinned = pi.pinned.Set(first)
		pi.masks[first] = chess.Between(ksq, second).Set(second)
	}
	return pi
}

// Pinned returns the side to move's pieces pinned to their king.
func (p *Position) Pinned() chess.Bitboard {
	pi := p.pins()
	return pi.pinned
}

// givesCheck reports whether the legal move m leaves the opponent in check.
// It simulates the occupancy after the move and tests both the direct attack
// of the moved piece and discovered attacks by the mover's sliders.
func (p *Position) givesCheck(m chess.Move) bool {
	us := p.sideToMove
	eksq := p.KingSquare(us.Opposite())
	from, to := m.From(), m.To()

	occ := p.Occupancy().Clear(from).Set(to)
	diag := p.PiecesOf(us, chess.Bishop) | p.PiecesOf(us, chess.Queen)
	orth := p.PiecesOf(us, chess.Rook) | p.PiecesOf(us, chess.Queen)
	diag, orth = diag.Clear(from), orth.Clear(from)

	moved := m.Piece()
	switch m.Kind() {
	case chess.EnPassant:
		occ = occ.Clear(epCaptureSquare(m))
	case chess.Promotion:
		moved = m.Promoted()
	case chess.Castling:
		g := castleGeometry(m)
		occ = occ.Clear(g.RookFrom).Set(g.RookTo)
		orth = orth.Clear(g.RookFrom).Set(g.RookTo)
	}

	switch moved.Type() {
	case chess.Pawn:
		if attacks.Pawn(us, to).Has(eksq) {
			return true
		}
	case chess.Knight:
		if attacks.Knight(to).Has(eksq) {
			return true
		}
	case chess.Bishop:
		diag = diag.Set(to)
	case chess.Rook:
		orth = orth.Set(to)
	case chess.Queen:
		diag, orth = diag.Set(to), orth.Set(to)
	}

	return attacks.Bishop(eksq, occ)&diag != 0 || attacks.Rook(eksq, occ)&orth != 0
}
