package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/errors"
)

// Notation returns the short display form of a move: piece letter (none
// for pawns, the source file for pawn captures), 'x' on capture, the
// destination, and the promotion letter. Castling is "0-0" or "0-0-0".
func Notation(m chess.Move) string {
	if m == chess.NullMove {
		return "--"
	}
	if m.IsCastling() {
		if m.To().File() > m.From().File() {
			return "0-0"
		}
		return "0-0-0"
	}

	var sb strings.Builder
	if pt := m.Piece().Type(); pt != chess.Pawn {
		sb.WriteByte(pt.Letter())
	} else if m.IsCapture() {
		sb.WriteByte(byte('a' + m.From().File()))
	}
	if m.IsCapture() {
		sb.WriteByte('x')
	}
	sb.WriteString(m.To().String())
	if m.IsPromotion() {
		sb.WriteByte(m.Promoted().Type().Letter())
	}
	return sb.String()
}

// FormatLine renders moves played from p as numbered text, e.g.
// "1.e4 e5 2.Nf3", or "7...Kxf7 8.Qh5" when Black moves first.
func FormatLine(p *Position, moves []chess.Move) string {
	var sb strings.Builder
	number := p.fullMoveNumber
	colour := p.sideToMove
	for i, m := range moves {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch {
		case colour == chess.White:
			fmt.Fprintf(&sb, "%d.", number)
		case i == 0:
			fmt.Fprintf(&sb, "%d...", number)
		}
		sb.WriteString(Notation(m))
		if colour == chess.Black {
			number++
		}
		colour = colour.Opposite()
	}
	return sb.String()
}

// FormatUCI joins moves in long algebraic form.
func FormatUCI(moves []chess.Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.UCI()
	}
	return strings.Join(parts, " ")
}

// ParseMove resolves a long algebraic move ("e2e4", "e7e8q") against the
// legal moves of the position.
func (p *Position) ParseMove(s string) (chess.Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	legal := p.LegalMoves()
	for _, m := range legal.Slice() {
		if m.UCI() == s {
			return m, nil
		}
	}
	return chess.NullMove, errors.Wrapf(errors.ErrIllegalMove, "%q in %s", s, p.FEN())
}

// PlayMoves parses and plays a sequence of long algebraic moves. On error
// the moves before the offending one remain played.
func (p *Position) PlayMoves(moves []string) error {
	_, err := p.PlayLine(moves)
	return err
}

// PlayLine is PlayMoves returning the moves it played.
func (p *Position) PlayLine(moves []string) ([]chess.Move, error) {
	played := make([]chess.Move, 0, len(moves))
	for i, s := range moves {
		m, err := p.ParseMove(s)
		if err != nil {
			return played, &errors.GameError{Err: errors.ErrIllegalMove, PlyNum: i + 1, MoveText: s, FEN: p.FEN()}
		}
		p.Play(m)
		played = append(played, m)
	}
	return played, nil
}
