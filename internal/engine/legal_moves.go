package engine

import (
	"github.com/lgbarn/chess-engine-go/internal/attacks"
	"github.com/lgbarn/chess-engine-go/internal/chess"
)

// promotionOrder is the order promotions are generated in.
var promotionOrder = [...]chess.PieceType{chess.Queen, chess.Knight, chess.Rook, chess.Bishop}

// moveGen carries the per-position state shared by the generators.
type moveGen struct {
	p      *Position
	list   *chess.MoveList
	us     chess.Colour
	them   chess.Colour
	ksq    chess.Square
	occ    chess.Bitboard
	own    chess.Bitboard
	enemy  chess.Bitboard
	check  checkInfo
	pinned pinInfo
}

// LegalMoves returns every legal move of the side to move, each tagged with
// whether it gives check.
func (p *Position) LegalMoves() chess.MoveList {
	var list chess.MoveList
	p.generateLegal(&list)
	return list
}

// LegalCaptures returns the legal moves that capture a piece.
func (p *Position) LegalCaptures() chess.MoveList {
	list := p.LegalMoves()
	list.Retain(chess.Move.IsCapture)
	return list
}

// HasLegalMoves reports whether the side to move can move at all.
func (p *Position) HasLegalMoves() bool {
	list := p.LegalMoves()
	return list.Len() > 0
}

// IsCheckmate returns true if the side to move is checkmated.
func (p *Position) IsCheckmate() bool {
	return p.IsInCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the side to move has no legal move and is not
// in check.
func (p *Position) IsStalemate() bool {
	return !p.IsInCheck() && !p.HasLegalMoves()
}

func (p *Position) generateLegal(list *chess.MoveList) {
	us := p.sideToMove
	g := moveGen{
		p:     p,
		list:  list,
		us:    us,
		them:  us.Opposite(),
		ksq:   p.KingSquare(us),
		occ:   p.Occupancy(),
		own:   p.colours[us],
		enemy: p.colours[us.Opposite()],
		check: p.checkInfo(),
	}

	g.kingMoves()
	if g.check.kind == DoubleCheck {
		return
	}
	g.pinned = p.pins()
	if g.check.kind == NoCheck {
		g.castling()
	}
	g.pawnMoves()
	for _, pt := range []chess.PieceType{chess.Knight, chess.Bishop, chess.Rook, chess.Queen} {
		g.pieceMoves(pt)
	}
}

// push tags m with the gives-check flag and appends it.
func (g *moveGen) push(m chess.Move) {
	if g.p.givesCheck(m) {
		m = m.WithCheck()
	}
	g.list.Push(m)
}

func (g *moveGen) kingMoves() {
	king := chess.MakePiece(g.us, chess.King)
	occ := g.occ.Clear(g.ksq)
	for targets := attacks.King(g.ksq) &^ g.own; targets != 0; {
		to := targets.PopLSB()
		if g.p.attackersTo(to, occ)&g.enemy != 0 {
			continue
		}
		g.push(chess.NewMove(g.ksq, to, king, g.p.board[to]))
	}
}

func (g *moveGen) castling() {
	king := chess.MakePiece(g.us, chess.King)
	rook := chess.MakePiece(g.us, chess.Rook)
	for _, side := range []chess.CastleSide{chess.KingSide, chess.QueenSide} {
		if !g.p.castling.Has(chess.Right(g.us, side)) {
			continue
		}
		geo := chess.Geometry(g.us, side)
		if g.ksq != geo.KingFrom || g.p.board[geo.RookFrom] != rook {
			continue
		}
		if g.occ&geo.Empty != 0 || g.anyAttacked(geo.Safe) {
			continue
		}
		g.push(chess.NewCastling(geo.KingFrom, geo.KingTo, king))
	}
}

func (g *moveGen) anyAttacked(squares chess.Bitboard) bool {
	for squares != 0 {
		if g.p.attackersTo(squares.PopLSB(), g.occ)&g.enemy != 0 {
			return true
		}
	}
	return false
}

func (g *moveGen) pieceMoves(pt chess.PieceType) {
	piece := chess.MakePiece(g.us, pt)
	for froms := g.p.pieces[piece]; froms != 0; {
		from := froms.PopLSB()
		targets := attacks.ForPiece(piece, from, g.occ) &^ g.own & g.check.mask & g.pinned.mask(from)
		for targets != 0 {
			to := targets.PopLSB()
			g.push(chess.NewMove(from, to, piece, g.p.board[to]))
		}
	}
}

func (g *moveGen) pawnMoves() {
	pawn := chess.MakePiece(g.us, chess.Pawn)
	forward := 8 * chess.ColourOffset(g.us)
	startRank := chess.PawnStartRank(g.us)
	lastRank := chess.BackRank(g.them)

	for froms := g.p.pieces[pawn]; froms != 0; {
		from := froms.PopLSB()
		allowed := g.check.mask & g.pinned.mask(from)

		one := chess.Square(int(from) + forward)
		if !g.occ.Has(one) {
			if allowed.Has(one) {
				g.pawnMove(from, one, pawn, chess.NoPiece, lastRank)
			}
			two := chess.Square(int(one) + forward)
			if from.Rank() == startRank && !g.occ.Has(two) && allowed.Has(two) {
				g.push(chess.NewMove(from, two, pawn, chess.NoPiece))
			}
		}

		pawnAttacks := attacks.Pawn(g.us, from)
		for targets := pawnAttacks & g.enemy & allowed; targets != 0; {
			to := targets.PopLSB()
			g.pawnMove(from, to, pawn, g.p.board[to], lastRank)
		}

		if ep := g.p.epSquare; ep != chess.NoSquare && pawnAttacks.Has(ep) {
			m := chess.NewEnPassant(from, ep, pawn)
			if g.enPassantIsSafe(m) {
				g.push(m)
			}
		}
	}
}

// pawnMove pushes a pawn move, expanding it into promotions on the last rank.
func (g *moveGen) pawnMove(from, to chess.Square, pawn, captured chess.Piece, lastRank int) {
	if to.Rank() != lastRank {
		g.push(chess.NewMove(from, to, pawn, captured))
		return
	}
	for _, pt := range promotionOrder {
		g.push(chess.NewPromotion(from, to, pawn, captured, chess.MakePiece(g.us, pt)))
	}
}

// enPassantIsSafe plays the capture on a simulated occupancy and checks the
// king. This covers pins through both pawns along a rank as well as check by
// the pawn being captured.
func (g *moveGen) enPassantIsSafe(m chess.Move) bool {
	capSq := epCaptureSquare(m)
	occ := g.occ.Clear(m.From()).Clear(capSq).Set(m.To())
	return g.p.attackersTo(g.ksq, occ)&g.enemy == 0
}
