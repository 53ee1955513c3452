package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/chess-engine-go/internal/chess"
	"github.com/lgbarn/chess-engine-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewPositionFromFEN creates a position from a FEN string. All six fields
// are required; a malformed field yields an *errors.FENError.
func NewPositionFromFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, &errors.FENError{
			Field:  errors.FieldFormat,
			Detail: fmt.Sprintf("expected 6 fields, got %d", len(parts)),
		}
	}

	p := newEmptyPosition()

	if err := parsePiecePositions(p, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(p, parts[1]); err != nil {
		return nil, err
	}
	them := p.sideToMove.Opposite()
	if p.attackersTo(p.KingSquare(them), p.Occupancy())&p.colours[p.sideToMove] != 0 {
		return nil, &errors.FENError{Field: errors.FieldBoard, Detail: "side not to move is in check"}
	}
	if err := parseCastlingRights(p, parts[2]); err != nil {
		return nil, err
	}
	if err := parseEnPassant(p, parts[3]); err != nil {
		return nil, err
	}
	if err := parseClocks(p, parts[4], parts[5]); err != nil {
		return nil, err
	}

	p.hash = p.computeHash()
	p.repetitions.Increment(p.hash)
	return p, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(p *Position, positions string) error {
	rows := strings.Split(positions, "/")
	if len(rows) != 8 {
		return &errors.FENError{Field: errors.FieldBoard, Value: positions,
			Detail: fmt.Sprintf("expected 8 ranks, got %d", len(rows))}
	}

	for i, row := range rows {
		rank := 7 - i
		file := 0
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece, ok := chess.PieceFromLetter(c)
			if !ok {
				return &errors.FENError{Field: errors.FieldBoard, Char: c}
			}
			if file > 7 {
				return &errors.FENError{Field: errors.FieldBoard, Value: row,
					Detail: fmt.Sprintf("rank %d has more than 8 files", rank+1)}
			}
			p.setPiece(piece, chess.NewSquare(file, rank))
			file++
		}
		if file != 8 {
			return &errors.FENError{Field: errors.FieldBoard, Value: row,
				Detail: fmt.Sprintf("rank %d does not cover 8 files", rank+1)}
		}
	}

	for _, c := range []chess.Colour{chess.White, chess.Black} {
		if n := p.PiecesOf(c, chess.King).Count(); n != 1 {
			return &errors.FENError{Field: errors.FieldBoard,
				Detail: fmt.Sprintf("%v has %d kings", c, n)}
		}
	}

	pawns := p.PiecesOf(chess.White, chess.Pawn) | p.PiecesOf(chess.Black, chess.Pawn)
	if pawns&(chess.Rank1|chess.Rank8) != 0 {
		return &errors.FENError{Field: errors.FieldBoard, Value: positions,
			Detail: "pawn on the first or last rank"}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(p *Position, field string) error {
	switch field {
	case "w":
		p.sideToMove = chess.White
	case "b":
		p.sideToMove = chess.Black
	default:
		return &errors.FENError{Field: errors.FieldColour, Value: field}
	}
	return nil
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(p *Position, field string) error {
	p.castling = chess.NoCastling
	if field == "-" {
		return nil
	}
	for i := 0; i < len(field); i++ {
		var r chess.CastlingRights
		switch field[i] {
		case 'K':
			r = chess.WhiteKingSide
		case 'Q':
			r = chess.WhiteQueenSide
		case 'k':
			r = chess.BlackKingSide
		case 'q':
			r = chess.BlackQueenSide
		default:
			return &errors.FENError{Field: errors.FieldCastling, Value: field, Char: field[i]}
		}
		if p.castling&r != 0 {
			return &errors.FENError{Field: errors.FieldCastling, Value: field, Detail: "repeated right"}
		}
		p.castling |= r
	}
	return nil
}

// parseEnPassant parses the en passant target square field.
func parseEnPassant(p *Position, field string) error {
	p.epSquare = chess.NoSquare
	if field == "-" {
		return nil
	}
	sq, ok := chess.ParseSquare(field)
	if !ok {
		return &errors.FENError{Field: errors.FieldSquare, Value: field}
	}
	wantRank := 5
	if p.sideToMove == chess.Black {
		wantRank = 2
	}
	if sq.Rank() != wantRank {
		return &errors.FENError{Field: errors.FieldSquare, Value: field,
			Detail: fmt.Sprintf("must be on rank %d", wantRank+1)}
	}
	p.epSquare = sq
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(p *Position, half, full string) error {
	n, err := strconv.Atoi(half)
	if err != nil || n < 0 {
		return &errors.FENError{Field: errors.FieldHalfMoveClock, Value: half}
	}
	p.halfMoveClock = n

	n, err = strconv.Atoi(full)
	if err != nil || n < 1 {
		return &errors.FENError{Field: errors.FieldFullMoveNumber, Value: full}
	}
	p.fullMoveNumber = n
	return nil
}

// FEN converts the position to a FEN string.
func (p *Position) FEN() string {
	var sb strings.Builder

	writePiecePositions(&sb, p)
	sb.WriteByte(' ')
	sb.WriteByte(p.sideToMove.Letter())
	sb.WriteByte(' ')
	sb.WriteString(p.castling.String())
	sb.WriteByte(' ')
	sb.WriteString(p.epSquare.String())
	fmt.Fprintf(&sb, " %d %d", p.halfMoveClock, p.fullMoveNumber)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, p *Position) {
	for rank := 7; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < 8; file++ {
			piece := p.board[chess.NewSquare(file, rank)]
			if piece == chess.NoPiece {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}
