package board

// Polyglot Zobrist keys, as fixed by the Polyglot opening-book specification.
// These are independent of this package's internal hashKey/hashLock
// families — book compatibility requires the exact official constants, not
// an engine-private scheme, so this table cannot be varied.
var (
	polyglotPieces     [12][64]uint64 // [pieceKind][square]
	polyglotCastling   [4]uint64      // [K, Q, k, q]
	polyglotEnPassant  [8]uint64      // [file]
	polyglotSideToMove uint64
)

func init() {
	initPolyglotKeys()
}

// polyglotPieceIndex maps (side, kind) to Polyglot's piece ordering:
// bp, bN, bB, bR, bQ, bK, wp, wN, wB, wR, wQ, wK.
var polyglotPieceIndex = [2][6]int{
	Black: {0, 1, 2, 3, 4, 5},
	White: {6, 7, 8, 9, 10, 11},
}

// PolyglotHash computes the Polyglot-compatible hash for opening-book lookup.
func (p *Position) PolyglotHash() uint64 {
	var hash uint64

	for s := White; s <= Black; s++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := p.byPiece[s][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				hash ^= polyglotPieces[polyglotPieceIndex[s][pt]][sq]
			}
		}
	}

	if p.CastleMask&WhiteKingSide != 0 {
		hash ^= polyglotCastling[0]
	}
	if p.CastleMask&WhiteQueenSide != 0 {
		hash ^= polyglotCastling[1]
	}
	if p.CastleMask&BlackKingSide != 0 {
		hash ^= polyglotCastling[2]
	}
	if p.CastleMask&BlackQueenSide != 0 {
		hash ^= polyglotCastling[3]
	}

	if file, ok := p.enPassantHashFile(p.EnPassant, p.SideToMove); ok {
		hash ^= polyglotEnPassant[file]
	}

	if p.SideToMove == White {
		hash ^= polyglotSideToMove
	}

	return hash
}

// initPolyglotKeys reproduces the official Polyglot random table from its
// published seed, using the same xorshift64* generator the format itself
// specifies.
func initPolyglotKeys() {
	var state uint64 = 0x37b4a4b3f0d1c0d0
	next := func() uint64 {
		state ^= state >> 12
		state ^= state << 25
		state ^= state >> 27
		return state * 0x2545F4914F6CDD1D
	}

	for piece := 0; piece < 12; piece++ {
		for sq := 0; sq < 64; sq++ {
			polyglotPieces[piece][sq] = next()
		}
	}
	for i := 0; i < 4; i++ {
		polyglotCastling[i] = next()
	}
	for i := 0; i < 8; i++ {
		polyglotEnPassant[i] = next()
	}
	polyglotSideToMove = next()
}
