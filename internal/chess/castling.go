package chess

import "strings"

// CastlingRights is a 4-bit set of castling permissions.
type CastlingRights uint8

const (
	WhiteKingSide CastlingRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

// NumCastlingRights is the number of distinct rights values.
const NumCastlingRights = 16

// CastleSide is king side or queen side.
type CastleSide uint8

const (
	KingSide CastleSide = iota
	QueenSide
)

// Right returns the castling right for colour on side.
func Right(colour Colour, side CastleSide) CastlingRights {
	return WhiteKingSide << (2*uint8(colour) + uint8(side))
}

// ColourRights returns both rights of colour.
func ColourRights(colour Colour) CastlingRights {
	return Right(colour, KingSide) | Right(colour, QueenSide)
}

// Has reports whether all rights in r2 are present.
func (r CastlingRights) Has(r2 CastlingRights) bool {
	return r&r2 == r2 && r2 != 0
}

// String returns the FEN castling field.
func (r CastlingRights) String() string {
	if r == NoCastling {
		return "-"
	}
	var sb strings.Builder
	for i, ch := range "KQkq" {
		if r&(1<<i) != 0 {
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}

// CastleGeometry describes the squares involved in one castling move.
type CastleGeometry struct {
	KingFrom, KingTo Square
	RookFrom, RookTo Square
	// Empty must hold no pieces; Safe must not be attacked.
	Empty, Safe Bitboard
}

var castleGeometry [NumColours][2]CastleGeometry

func init() {
	for _, c := range []Colour{White, Black} {
		base := Square(8 * BackRank(c))
		castleGeometry[c][KingSide] = CastleGeometry{
			KingFrom: base + E1, KingTo: base + G1,
			RookFrom: base + H1, RookTo: base + F1,
			Empty: SquareBB(base+F1) | SquareBB(base+G1),
			Safe:  SquareBB(base+F1) | SquareBB(base+G1),
		}
		castleGeometry[c][QueenSide] = CastleGeometry{
			KingFrom: base + E1, KingTo: base + C1,
			RookFrom: base + A1, RookTo: base + D1,
			Empty: SquareBB(base+B1) | SquareBB(base+C1) | SquareBB(base+D1),
			Safe:  SquareBB(base+C1) | SquareBB(base+D1),
		}
	}
}

// Geometry returns the squares for colour castling on side.
func Geometry(colour Colour, side CastleSide) CastleGeometry {
	return castleGeometry[colour][side]
}

// RightsLostAt returns the rights that vanish when a piece leaves or lands on sq.
func RightsLostAt(sq Square) CastlingRights {
	switch sq {
	case E1:
		return ColourRights(White)
	case H1:
		return WhiteKingSide
	case A1:
		return WhiteQueenSide
	case E8:
		return ColourRights(Black)
	case H8:
		return BlackKingSide
	case A8:
		return BlackQueenSide
	}
	return NoCastling
}
