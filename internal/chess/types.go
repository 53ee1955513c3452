// Package chess provides core chess types and operations.
package chess

// Colour represents the colour of a piece or player.
type Colour uint8

const (
	White Colour = iota
	Black
)

// NumColours is the number of colours.
const NumColours = 2

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	return c ^ 1
}

// Letter returns the FEN letter of a colour ('w' or 'b').
func (c Colour) Letter() byte {
	if c == White {
		return 'w'
	}
	return 'b'
}

// ColourOffset returns +1 for White, -1 for Black (for pawn direction).
func ColourOffset(colour Colour) int {
	if colour == White {
		return 1
	}
	return -1
}

// PawnStartRank returns the rank (0-7) on which the colour's pawns start.
func PawnStartRank(colour Colour) int {
	if colour == White {
		return 1
	}
	return 6
}

// BackRank returns the rank (0-7) the colour's pieces start on.
func BackRank(colour Colour) int {
	if colour == White {
		return 0
	}
	return 7
}

// PieceType represents an uncoloured piece kind.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

// NumPieceTypes is the number of real piece types.
const NumPieceTypes = 6

// String returns the string representation of a piece type.
func (pt PieceType) String() string {
	names := []string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if int(pt) < len(names) {
		return names[pt]
	}
	return "None"
}

// Letter returns the single letter representation of a piece type (uppercase).
func (pt PieceType) Letter() byte {
	letters := []byte{'P', 'N', 'B', 'R', 'Q', 'K'}
	if int(pt) < len(letters) {
		return letters[pt]
	}
	return '?'
}

// IsSlider reports whether the piece type moves along rays.
func (pt PieceType) IsSlider() bool {
	return pt == Bishop || pt == Rook || pt == Queen
}

// Piece is a coloured piece: type<<1 | colour.
type Piece uint8

// NumPieces is the number of coloured pieces.
const NumPieces = 12

// NoPiece marks an empty square or an absent capture.
const NoPiece Piece = NumPieces

// MakePiece creates a coloured piece value.
func MakePiece(colour Colour, pt PieceType) Piece {
	return Piece(uint8(pt)<<1 | uint8(colour))
}

// Coloured piece constants.
var (
	WhitePawn   = MakePiece(White, Pawn)
	BlackPawn   = MakePiece(Black, Pawn)
	WhiteKnight = MakePiece(White, Knight)
	BlackKnight = MakePiece(Black, Knight)
	WhiteBishop = MakePiece(White, Bishop)
	BlackBishop = MakePiece(Black, Bishop)
	WhiteRook   = MakePiece(White, Rook)
	BlackRook   = MakePiece(Black, Rook)
	WhiteQueen  = MakePiece(White, Queen)
	BlackQueen  = MakePiece(Black, Queen)
	WhiteKing   = MakePiece(White, King)
	BlackKing   = MakePiece(Black, King)
)

// Type extracts the piece type from a coloured piece.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p >> 1)
}

// Colour extracts the colour from a coloured piece.
func (p Piece) Colour() Colour {
	return Colour(p & 1)
}

// IsValid reports whether p is one of the twelve coloured pieces.
func (p Piece) IsValid() bool {
	return p < NoPiece
}

// Letter returns the FEN letter of the piece, uppercase for White.
func (p Piece) Letter() byte {
	if !p.IsValid() {
		return '.'
	}
	l := p.Type().Letter()
	if p.Colour() == Black {
		return l + ('a' - 'A')
	}
	return l
}

// String returns the FEN letter as a string.
func (p Piece) String() string {
	return string(p.Letter())
}

// PieceFromLetter converts a FEN letter to a coloured piece.
func PieceFromLetter(ch byte) (Piece, bool) {
	colour := White
	if ch >= 'a' && ch <= 'z' {
		colour = Black
		ch -= 'a' - 'A'
	}
	switch ch {
	case 'P':
		return MakePiece(colour, Pawn), true
	case 'N':
		return MakePiece(colour, Knight), true
	case 'B':
		return MakePiece(colour, Bishop), true
	case 'R':
		return MakePiece(colour, Rook), true
	case 'Q':
		return MakePiece(colour, Queen), true
	case 'K':
		return MakePiece(colour, King), true
	}
	return NoPiece, false
}

// Square is a board index 0-63 with a1 = 0, b1 = 1, ..., h8 = 63.
type Square uint8

// NoSquare is the "none" sentinel.
const NoSquare Square = 64

// NumSquares is the number of board squares.
const NumSquares = 64

// Named squares used by castling and tests.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

const (
	A8 Square = iota + 56
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// NewSquare creates a square from a file and rank in 0-7.
func NewSquare(file, rank int) Square {
	return Square(rank<<3 | file)
}

// File returns the file index 0-7 (a-h).
func (sq Square) File() int {
	return int(sq & 7)
}

// Rank returns the rank index 0-7 (1-8).
func (sq Square) Rank() int {
	return int(sq >> 3)
}

// IsValid reports whether sq is on the board.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// String returns the algebraic name of the square ("e4"), or "-".
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// ParseSquare parses an algebraic square name.
func ParseSquare(s string) (Square, bool) {
	if len(s) != 2 {
		return NoSquare, false
	}
	if s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, false
	}
	return NewSquare(int(s[0]-'a'), int(s[1]-'1')), true
}

// HashCode is the type for position hashing.
type HashCode uint64
