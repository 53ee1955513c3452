package attacks

import (
	"fmt"

	"github.com/lgbarn/chess-engine-go/internal/chess"
)

type magicEntry struct {
	mask  chess.Bitboard
	magic uint64
	shift uint
	table []chess.Bitboard
}

func (m *magicEntry) index(occ chess.Bitboard) uint64 {
	return (uint64(occ&m.mask) * m.magic) >> m.shift
}

var (
	bishopMagics [chess.NumSquares]magicEntry
	rookMagics   [chess.NumSquares]magicEntry

	bishopDirections = []chess.Direction{chess.NorthEast, chess.SouthWest, chess.NorthWest, chess.SouthEast}
	rookDirections   = []chess.Direction{chess.North, chess.South, chess.East, chess.West}
)

var bishopMagicNumbers = [chess.NumSquares]uint64{
	0x004090020C810274, 0x880C100202022010, 0x0030088210410041, 0x0484040180100050,
	0x0010882019810010, 0x0012011049080003, 0x040C051898040880, 0x2021008290082202,
	0x181808021084110C, 0x1640160828010240, 0x000210810200A401, 0x00A30C0502080080,
	0x1140842420241029, 0x1000629004600084, 0x8010020104924000, 0x01010080A8082600,
	0x0620024192244100, 0x2020000204010202, 0x0090000820292020, 0x1008003082004418,
	0x2009011490400802, 0x008040060100A00A, 0x0004020884040E18, 0x8029400025041000,
	0x400410002042D060, 0x1130180230010901, 0x002404508E020400, 0xE2040800040250D0,
	0x000894000080A008, 0x0101060031009886, 0x0882040486010104, 0x30230210C1220100,
	0x01048C4044041000, 0x0114024844223002, 0x0003841000010241, 0x1640020081080080,
	0x9060008401018120, 0x8001304500020101, 0x1E02240100040098, 0x0001808500208400,
	0x2008123084183001, 0x2001921010400230, 0x2061004822001000, 0x102840C010400204,
	0x000014010A006401, 0x22C4500481088201, 0x0408100280840600, 0x0001120082000100,
	0x0182C60820090081, 0x0002050108020008, 0x180222084A080110, 0x0100008C20880811,
	0x0010015082160000, 0x0008200413020140, 0x006020C441124000, 0x0108300422822940,
	0x0201048210010480, 0x0B2008C406841000, 0x0200000200420800, 0x4000000203218801,
	0x1400082020020480, 0x0300244008210101, 0x0000200204081088, 0x00400A0084018A84,
}

var rookMagicNumbers = [chess.NumSquares]uint64{
	0x008000C000208751, 0x8240004A20001000, 0x0280088130002000, 0x8880080004809001,
	0xD100080100025014, 0x0200020010010408, 0x040008041006C102, 0x0100002044861100,
	0x0C00800020400080, 0x2000400140201000, 0x0900802002801002, 0x0180808088001000,
	0x4002800400080080, 0x0042005200041018, 0x0080802500801200, 0x0015002081410002,
	0x6400218000804012, 0x8000810023004004, 0x0005050010200140, 0x000800800C801002,
	0x0000220012007248, 0x604D010008040101, 0x800004000108AE30, 0x3014220001108044,
	0x8008400080008021, 0x4020002080400080, 0x1400130100200042, 0x0044081200402200,
	0x0804880080040280, 0x0A04020080800400, 0x0002020400018810, 0x40C0008200004704,
	0x0480024000402002, 0x000C448102002200, 0x1050011080806000, 0x0C0100A009003000,
	0x1010800800802400, 0x2022001102000448, 0x7000050204009038, 0x0000004082000104,
	0x20004102008A0020, 0x0110004260014000, 0x0410002408006000, 0x1210001109010020,
	0x4400110008010004, 0x4024020004008080, 0x4A50861021040088, 0x84402C4084020001,
	0x0080004011208280, 0x0000810440122100, 0x2020010820401100, 0x0002100021054900,
	0x0888000401420040, 0x0402000810050200, 0x0800100348022400, 0x020100008200E700,
	0x2200800020310049, 0x0008106440010081, 0x1400810820120042, 0x0000088500209001,
	0x0102000814102002, 0x0006001124300802, 0x0002000800840162, 0x10C0814100209402,
}

func init() {
	rng := chess.NewPRNG(chess.DefaultSeed)
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		bishopMagics[sq] = initMagic(sq, bishopDirections, bishopMagicNumbers[sq], rng)
		rookMagics[sq] = initMagic(sq, rookDirections, rookMagicNumbers[sq], rng)
	}
}

// Bishop returns the bishop attacks from sq given occupancy occ.
func Bishop(sq chess.Square, occ chess.Bitboard) chess.Bitboard {
	m := &bishopMagics[sq]
	return m.table[m.index(occ)]
}

// Rook returns the rook attacks from sq given occupancy occ.
func Rook(sq chess.Square, occ chess.Bitboard) chess.Bitboard {
	m := &rookMagics[sq]
	return m.table[m.index(occ)]
}

// Queen returns the queen attacks from sq given occupancy occ.
func Queen(sq chess.Square, occ chess.Bitboard) chess.Bitboard {
	return Bishop(sq, occ) | Rook(sq, occ)
}

// Slow computes slider attacks by walking each ray to the first blocker.
// It is the reference the magic tables are checked against.
func Slow(pt chess.PieceType, sq chess.Square, occ chess.Bitboard) chess.Bitboard {
	var attacks chess.Bitboard
	if pt == chess.Bishop || pt == chess.Queen {
		attacks |= rayAttacks(sq, bishopDirections, occ)
	}
	if pt == chess.Rook || pt == chess.Queen {
		attacks |= rayAttacks(sq, rookDirections, occ)
	}
	return attacks
}

func rayAttacks(sq chess.Square, dirs []chess.Direction, occ chess.Bitboard) chess.Bitboard {
	var attacks chess.Bitboard
	for _, d := range dirs {
		ray := chess.Ray(sq, d)
		attacks |= ray
		if blocker := chess.FirstBlocker(ray&occ, d); blocker != chess.NoSquare {
			attacks &^= chess.Ray(blocker, d)
		}
	}
	return attacks
}

// relevantMask is the ray set minus the final edge square of every ray.
func relevantMask(sq chess.Square, dirs []chess.Direction) chess.Bitboard {
	var mask chess.Bitboard
	for _, d := range dirs {
		ray := chess.Ray(sq, d)
		if ray == 0 {
			continue
		}
		if d.IsPositive() {
			ray = ray.Clear(ray.MSB())
		} else {
			ray = ray.Clear(ray.LSB())
		}
		mask |= ray
	}
	return mask
}

func initMagic(sq chess.Square, dirs []chess.Direction, magic uint64, rng *chess.PRNG) magicEntry {
	mask := relevantMask(sq, dirs)
	e := magicEntry{mask: mask, magic: magic, shift: uint(64 - mask.Count())}
	if table, ok := fillTable(&e, sq, dirs); ok {
		e.table = table
		return e
	}
	// The stored constant does not fit this mask: search for a new one.
	for {
		candidate := rng.Sparse()
		if chess.Bitboard((uint64(mask)*candidate)&0xFF00000000000000).Count() < 6 {
			continue
		}
		e.magic = candidate
		if table, ok := fillTable(&e, sq, dirs); ok {
			e.table = table
			return e
		}
	}
}

// fillTable enumerates every subset of the mask and stores its attack set.
// It fails when two subsets with different attacks share an index.
func fillTable(e *magicEntry, sq chess.Square, dirs []chess.Direction) ([]chess.Bitboard, bool) {
	size := 1 << (64 - e.shift)
	table := make([]chess.Bitboard, size)
	used := make([]bool, size)
	subset := chess.Bitboard(0)
	for {
		idx := e.index(subset)
		att := rayAttacks(sq, dirs, subset)
		if used[idx] && table[idx] != att {
			return nil, false
		}
		table[idx] = att
		used[idx] = true
		subset = (subset - e.mask) & e.mask
		if subset == 0 {
			break
		}
	}
	return table, true
}

// Verify checks every magic table entry against the ray walk.
func Verify() error {
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		for _, pt := range []chess.PieceType{chess.Bishop, chess.Rook} {
			m := &rookMagics[sq]
			if pt == chess.Bishop {
				m = &bishopMagics[sq]
			}
			subset := chess.Bitboard(0)
			for {
				want := Slow(pt, sq, subset)
				if got := m.table[m.index(subset)]; got != want {
					return fmt.Errorf("attacks: %v on %v with occupancy %#x: got %#x, want %#x",
						pt, sq, uint64(subset), uint64(got), uint64(want))
				}
				subset = (subset - m.mask) & m.mask
				if subset == 0 {
					break
				}
			}
		}
	}
	return nil
}
