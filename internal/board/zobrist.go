package board

// Zobrist key families (spec §4.2). Every constant is drawn once from a
// seeded PRNG at package init so that tests see reproducible hashes without
// racing other packages that also touch these tables.
//
// Two independent families are kept: hashKey (the primary, incrementally
// maintained position fingerprint used by the transposition table and
// repetition detection) and hashLock (a second, differently-seeded
// fingerprint maintained alongside it — spec §3's Board tuple names both
// fields explicitly). The transposition table verifies entries by hashKey
// alone; nothing in the engine reads hashLock.
var (
	zobristPiece      [2][6][64]uint64 // [Side][PieceKind][Square]
	zobristSideToMove uint64
	zobristCastle     [16]uint64 // one per castle-mask value
	zobristEnPassant  [8]uint64  // one per file

	zobristLockPiece      [2][6][64]uint64
	zobristLockSideToMove uint64
	zobristLockCastle     [16]uint64
	zobristLockEnPassant  [8]uint64
)

// totalZobristConstants is 2*6*64 + 1 + 16 + 8 = 793, matching spec §4.2.
const totalZobristConstants = 2*6*64 + 1 + 16 + 8

func init() {
	initZobristFamily(0x98F107A2BEEF1234, &zobristPiece, &zobristSideToMove, &zobristCastle, &zobristEnPassant)
	initZobristFamily(0x1E4B3D2C5A697F81, &zobristLockPiece, &zobristLockSideToMove, &zobristLockCastle, &zobristLockEnPassant)
}

// xorshiftPRNG is a small, fast, seedable generator: xorshift64*. Used
// instead of math/rand so the whole 793-constant table is reproducible
// across platforms and Go versions for test fixtures.
type xorshiftPRNG struct{ state uint64 }

func newXorshiftPRNG(seed uint64) *xorshiftPRNG {
	if seed == 0 {
		seed = 0x9E3779B97F4A7C15
	}
	return &xorshiftPRNG{state: seed}
}

func (p *xorshiftPRNG) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

// initZobristFamily fills one Zobrist family from its own PRNG stream and
// asserts pairwise distinctness within that family, per spec §4.2 and the
// testable property in spec §8 item 5.
func initZobristFamily(seed uint64, piece *[2][6][64]uint64, sideToMove *uint64, castle *[16]uint64, enPassant *[8]uint64) {
	rng := newXorshiftPRNG(seed)
	seen := make(map[uint64]struct{}, totalZobristConstants)

	draw := func() uint64 {
		for {
			v := rng.next()
			if _, dup := seen[v]; !dup {
				seen[v] = struct{}{}
				return v
			}
		}
	}

	for s := White; s <= Black; s++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				piece[s][pt][sq] = draw()
			}
		}
	}
	*sideToMove = draw()
	for i := range castle {
		castle[i] = draw()
	}
	for i := range enPassant {
		enPassant[i] = draw()
	}

	if len(seen) != totalZobristConstants {
		panic("board: zobrist constants are not pairwise distinct")
	}
}

// ZobristPiece returns the key for a piece of the given side on sq.
func ZobristPiece(s Side, pt PieceKind, sq Square) uint64 { return zobristPiece[s][pt][sq] }

// ZobristSideToMove returns the key XORed in whenever it is Black to move.
func ZobristSideToMove() uint64 { return zobristSideToMove }

// ZobristCastle returns the key for a 4-bit castle mask value (0-15).
func ZobristCastle(mask CastleRights) uint64 { return zobristCastle[mask] }

// ZobristEnPassant returns the key for an en-passant file (0-7).
func ZobristEnPassant(file int) uint64 { return zobristEnPassant[file] }

// ZobristLockPiece returns the secondary-family key for a piece of the
// given side on sq, used to build hashLock.
func ZobristLockPiece(s Side, pt PieceKind, sq Square) uint64 { return zobristLockPiece[s][pt][sq] }

// ZobristLockSideToMove returns the secondary-family side-to-move key.
func ZobristLockSideToMove() uint64 { return zobristLockSideToMove }

// ZobristLockCastle returns the secondary-family key for a castle mask.
func ZobristLockCastle(mask CastleRights) uint64 { return zobristLockCastle[mask] }

// ZobristLockEnPassant returns the secondary-family key for an en-passant file.
func ZobristLockEnPassant(file int) uint64 { return zobristLockEnPassant[file] }
