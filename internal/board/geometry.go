package board

// Geometry tables (spec §4.1, component C1): precomputed once at package
// init and immutable thereafter — pure functions of board geometry, safe
// for any future multi-instance use (spec §5).
var (
	knightAttackTable [64]BitBoard
	kingAttackTable   [64]BitBoard
	pawnAttackTable   [2][64]BitBoard // [Side][Square] -> squares a pawn there attacks

	rookRayFull   [64]BitBoard // every square sharing a's rank or file
	bishopRayFull [64]BitBoard // every square sharing a's diagonal

	betweenTable [64][64]BitBoard // squares strictly between a and b, 0 if not aligned
	afterTable   [64][64]BitBoard // complement of "b and everything farther from a along a->b"
)

func init() {
	initLeaperTables()
	initRayFullTables()
	initBetweenAfterTables()
}

func initLeaperTables() {
	knightDeltas := [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingDeltas := [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}

	for sq := A1; sq <= H8; sq++ {
		f, r := sq.File(), sq.Rank()

		var knight BitBoard
		for _, d := range knightDeltas {
			nf, nr := f+d[0], r+d[1]
			if nf >= 0 && nf <= 7 && nr >= 0 && nr <= 7 {
				knight |= SquareBB(NewSquare(nf, nr))
			}
		}
		knightAttackTable[sq] = knight

		var king BitBoard
		for _, d := range kingDeltas {
			nf, nr := f+d[0], r+d[1]
			if nf >= 0 && nf <= 7 && nr >= 0 && nr <= 7 {
				king |= SquareBB(NewSquare(nf, nr))
			}
		}
		kingAttackTable[sq] = king

		var whiteAtk, blackAtk BitBoard
		if r < 7 {
			if f > 0 {
				whiteAtk |= SquareBB(NewSquare(f-1, r+1))
			}
			if f < 7 {
				whiteAtk |= SquareBB(NewSquare(f+1, r+1))
			}
		}
		if r > 0 {
			if f > 0 {
				blackAtk |= SquareBB(NewSquare(f-1, r-1))
			}
			if f < 7 {
				blackAtk |= SquareBB(NewSquare(f+1, r-1))
			}
		}
		pawnAttackTable[White][sq] = whiteAtk
		pawnAttackTable[Black][sq] = blackAtk
	}
}

func initRayFullTables() {
	diagDirs := [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	for sq := A1; sq <= H8; sq++ {
		f, r := sq.File(), sq.Rank()
		rookRayFull[sq] = (RankMask[r] | FileMask[f]) &^ SquareBB(sq)

		var diag BitBoard
		for _, d := range diagDirs {
			nf, nr := f+d[0], r+d[1]
			for nf >= 0 && nf <= 7 && nr >= 0 && nr <= 7 {
				diag |= SquareBB(NewSquare(nf, nr))
				nf += d[0]
				nr += d[1]
			}
		}
		bishopRayFull[sq] = diag
	}
}

// initBetweenAfterTables computes, for every aligned pair (a, b) sharing a
// rank, file, or diagonal, the squares strictly between them and the
// "after" mask used by the slider-attack walk (see RookAttacks/BishopAttacks
// below) to clear the ray past the first blocker without magic tables.
func initBetweenAfterTables() {
	for a := A1; a <= H8; a++ {
		fa, ra := a.File(), a.Rank()
		for b := A1; b <= H8; b++ {
			if a == b {
				continue
			}
			fb, rb := b.File(), b.Rank()
			df := sign(fb - fa)
			dr := sign(rb - ra)
			if df != 0 && dr != 0 && abs(fb-fa) != abs(rb-ra) {
				continue // not on a shared rank, file, or diagonal
			}

			var between BitBoard
			f, r := fa+df, ra+dr
			for f != fb || r != rb {
				between |= SquareBB(NewSquare(f, r))
				f += df
				r += dr
			}
			betweenTable[a][b] = between

			var far BitBoard
			f, r = fb+df, rb+dr
			for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
				far |= SquareBB(NewSquare(f, r))
				f += df
				r += dr
			}
			afterTable[a][b] = ^(SquareBB(b) | far)
		}
	}
}

// KnightAttacks returns the knight move/attack set from sq.
func KnightAttacks(sq Square) BitBoard { return knightAttackTable[sq] }

// KingAttacks returns the king move/attack set from sq.
func KingAttacks(sq Square) BitBoard { return kingAttackTable[sq] }

// PawnAttacks returns the squares a pawn of side s on sq attacks.
func PawnAttacks(sq Square, s Side) BitBoard { return pawnAttackTable[s][sq] }

// Between returns the squares strictly between a and b, or 0 if they do
// not share a rank, file, or diagonal.
func Between(a, b Square) BitBoard { return betweenTable[a][b] }

// slidingAttacks walks the full (unblocked) ray from sq and, for every
// occupied square on it, clears everything beyond that square using the
// precomputed after table. Spec §4.3: "resolve blockers without magic
// tables" by masking the far side of each blocker.
func slidingAttacks(sq Square, occupied, rayFull BitBoard) BitBoard {
	attacks := rayFull
	blockers := rayFull & occupied
	for blockers != 0 {
		b := blockers.PopLSB()
		attacks &= afterTable[sq][b] | SquareBB(b)
	}
	return attacks
}

// RookAttacks returns the rook attack set from sq given the board occupancy.
func RookAttacks(sq Square, occupied BitBoard) BitBoard {
	return slidingAttacks(sq, occupied, rookRayFull[sq])
}

// BishopAttacks returns the bishop attack set from sq given the board occupancy.
func BishopAttacks(sq Square, occupied BitBoard) BitBoard {
	return slidingAttacks(sq, occupied, bishopRayFull[sq])
}

// QueenAttacks returns the queen attack set from sq given the board occupancy.
func QueenAttacks(sq Square, occupied BitBoard) BitBoard {
	return RookAttacks(sq, occupied) | BishopAttacks(sq, occupied)
}
