package chess

import "strings"

// MoveKind distinguishes moves that need special handling when played.
type MoveKind uint8

const (
	Normal MoveKind = iota
	EnPassant
	Promotion
	Castling
)

// Move is a flat bit-packed move:
//
//	bits  0-1  kind
//	bits  2-7  source square
//	bits  8-13 destination square
//	bits 14-17 moving piece
//	bits 18-21 captured piece (NoPiece when none)
//	bits 22-25 promoted piece
//	bit  26    gives check
type Move uint32

// NullMove is the zero move, used as "no move".
const NullMove Move = 0

const (
	moveFromShift     = 2
	moveToShift       = 8
	movePieceShift    = 14
	moveCapturedShift = 18
	movePromotedShift = 22
	moveCheckBit      = 1 << 26
)

func packMove(kind MoveKind, from, to Square, piece, captured, promoted Piece) Move {
	return Move(uint32(kind) |
		uint32(from)<<moveFromShift |
		uint32(to)<<moveToShift |
		uint32(piece)<<movePieceShift |
		uint32(captured)<<moveCapturedShift |
		uint32(promoted)<<movePromotedShift)
}

// NewMove creates a normal move (quiet or capture).
func NewMove(from, to Square, piece, captured Piece) Move {
	return packMove(Normal, from, to, piece, captured, NoPiece)
}

// NewEnPassant creates an en-passant capture by piece.
func NewEnPassant(from, to Square, piece Piece) Move {
	return packMove(EnPassant, from, to, piece, MakePiece(piece.Colour().Opposite(), Pawn), NoPiece)
}

// NewPromotion creates a promotion, optionally capturing.
func NewPromotion(from, to Square, piece, captured, promoted Piece) Move {
	return packMove(Promotion, from, to, piece, captured, promoted)
}

// NewCastling creates a castling move, encoded as the king's step.
func NewCastling(from, to Square, king Piece) Move {
	return packMove(Castling, from, to, king, NoPiece, NoPiece)
}

// Kind returns the move kind.
func (m Move) Kind() MoveKind { return MoveKind(m & 3) }

// From returns the source square.
func (m Move) From() Square { return Square(m>>moveFromShift) & 63 }

// To returns the destination square.
func (m Move) To() Square { return Square(m>>moveToShift) & 63 }

// Piece returns the moving piece.
func (m Move) Piece() Piece { return Piece(m>>movePieceShift) & 15 }

// Captured returns the captured piece, or NoPiece.
func (m Move) Captured() Piece { return Piece(m>>moveCapturedShift) & 15 }

// Promoted returns the promoted piece of a promotion.
func (m Move) Promoted() Piece { return Piece(m>>movePromotedShift) & 15 }

// GivesCheck reports whether the move was flagged as giving check.
func (m Move) GivesCheck() bool { return m&moveCheckBit != 0 }

// WithCheck returns the move with the gives-check flag set.
func (m Move) WithCheck() Move { return m | moveCheckBit }

// IsCapture reports whether the move removes an enemy piece.
func (m Move) IsCapture() bool { return m.Captured() != NoPiece }

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool { return m.Kind() == Promotion }

// IsCastling reports whether the move castles.
func (m Move) IsCastling() bool { return m.Kind() == Castling }

// IsQuiet reports whether the move neither captures nor promotes.
func (m Move) IsQuiet() bool { return !m.IsCapture() && !m.IsPromotion() }

// UCI returns the long algebraic form used by the line protocol ("e7e8q").
func (m Move) UCI() string {
	if m == NullMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += strings.ToLower(string(m.Promoted().Type().Letter()))
	}
	return s
}

// String returns the long algebraic form.
func (m Move) String() string {
	return m.UCI()
}

// MaxMoves bounds the number of legal moves in any reachable position.
const MaxMoves = 256

// MoveList is a fixed-capacity list of moves.
type MoveList struct {
	moves [MaxMoves]Move
	n     int
}

// Push appends a move. Overflow is a programming error.
func (l *MoveList) Push(m Move) {
	if l.n >= MaxMoves {
		panic("chess: move list overflow")
	}
	l.moves[l.n] = m
	l.n++
}

// Len returns the number of moves.
func (l *MoveList) Len() int { return l.n }

// At returns the i-th move.
func (l *MoveList) At(i int) Move { return l.moves[i] }

// Slice returns the moves as a slice aliasing the list storage.
func (l *MoveList) Slice() []Move { return l.moves[:l.n] }

// Clear empties the list.
func (l *MoveList) Clear() { l.n = 0 }

// Swap exchanges two moves.
func (l *MoveList) Swap(i, j int) {
	l.moves[i], l.moves[j] = l.moves[j], l.moves[i]
}

// Contains reports whether m is in the list.
func (l *MoveList) Contains(m Move) bool {
	for _, x := range l.moves[:l.n] {
		if x == m {
			return true
		}
	}
	return false
}

// Retain keeps only the moves for which keep returns true, preserving order.
func (l *MoveList) Retain(keep func(Move) bool) {
	n := 0
	for _, m := range l.moves[:l.n] {
		if keep(m) {
			l.moves[n] = m
			n++
		}
	}
	l.n = n
}

// SortBy orders moves by descending score. Stable, so equal keys keep
// generation order.
func (l *MoveList) SortBy(score func(Move) int) {
	var keys [MaxMoves]int
	for i := 0; i < l.n; i++ {
		keys[i] = score(l.moves[i])
	}
	for i := 1; i < l.n; i++ {
		m, k := l.moves[i], keys[i]
		j := i - 1
		for j >= 0 && keys[j] < k {
			l.moves[j+1], keys[j+1] = l.moves[j], keys[j]
			j--
		}
		l.moves[j+1], keys[j+1] = m, k
	}
}
