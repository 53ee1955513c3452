package chess

// Direction is one of the eight compass directions a slider moves along.
type Direction uint8

const (
	North Direction = iota
	South
	East
	West
	NorthEast
	SouthWest
	NorthWest
	SouthEast
	NoDirection
)

// NumDirections is the number of compass directions.
const NumDirections = 8

var directionDeltas = [NumDirections][2]int{
	North:     {0, 1},
	South:     {0, -1},
	East:      {1, 0},
	West:      {-1, 0},
	NorthEast: {1, 1},
	SouthWest: {-1, -1},
	NorthWest: {-1, 1},
	SouthEast: {1, -1},
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	return d ^ 1
}

// IsDiagonal reports whether d is a bishop direction.
func (d Direction) IsDiagonal() bool {
	return d >= NorthEast && d < NoDirection
}

// IsOrthogonal reports whether d is a rook direction.
func (d Direction) IsOrthogonal() bool {
	return d < NorthEast
}

// IsPositive reports whether squares grow along d.
func (d Direction) IsPositive() bool {
	switch d {
	case North, East, NorthEast, NorthWest:
		return true
	}
	return false
}

// Delta returns the file and rank step of d.
func (d Direction) Delta() (int, int) {
	return directionDeltas[d][0], directionDeltas[d][1]
}

// String returns the compass name.
func (d Direction) String() string {
	names := []string{"N", "S", "E", "W", "NE", "SW", "NW", "SE"}
	if int(d) < len(names) {
		return names[d]
	}
	return "-"
}

var (
	rays             [NumSquares][NumDirections]Bitboard
	directionBetween [NumSquares][NumSquares]Direction
)

func init() {
	for sq := Square(0); sq < NumSquares; sq++ {
		for to := Square(0); to < NumSquares; to++ {
			directionBetween[sq][to] = NoDirection
		}
		for d := Direction(0); d < NumDirections; d++ {
			df, dr := d.Delta()
			f, r := sq.File()+df, sq.Rank()+dr
			for f >= 0 && f < 8 && r >= 0 && r < 8 {
				to := NewSquare(f, r)
				rays[sq][d] |= SquareBB(to)
				directionBetween[sq][to] = d
				f += df
				r += dr
			}
		}
	}
}

// Ray returns the squares from sq along d to the board edge, excluding sq.
func Ray(sq Square, d Direction) Bitboard {
	return rays[sq][d]
}

// DirectionBetween returns the direction leading from a to b, or NoDirection
// when they do not share a line.
func DirectionBetween(a, b Square) Direction {
	return directionBetween[a][b]
}

// Between returns the squares strictly between a and b on a shared line.
func Between(a, b Square) Bitboard {
	d := directionBetween[a][b]
	if d == NoDirection {
		return Empty
	}
	return rays[a][d] &^ rays[b][d] &^ SquareBB(b)
}

// FirstBlocker returns the first occupied square of ray along d, or NoSquare.
func FirstBlocker(ray Bitboard, d Direction) Square {
	if ray == 0 {
		return NoSquare
	}
	if d.IsPositive() {
		return ray.LSB()
	}
	return ray.MSB()
}
