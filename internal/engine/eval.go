// Package engine implements the evaluator, transposition table, and search
// driver built on top of internal/board's position representation.
package engine

import "github.com/tmarchant/mateline/internal/board"

// Piece-square tables, white's perspective (rank 8 first); combined with
// material value at lookup time. Because the first row is rank 8, White's
// score is read through Square.Mirror() and Black's at the square itself.
var pawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPST = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

var queenPST = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingMidgamePST = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

// kingEndgamePST is the king-centralization bonus used in lieu of the
// pawn-shield term once the opponent has no queen (spec §4.5).
var kingEndgamePST = [64]int{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
}

var pstByKind = [6]*[64]int{&pawnPST, &knightPST, &bishopPST, &rookPST, &queenPST, &kingMidgamePST}

const isolatedPawnPenalty = -20
const rookOpenFileBonus = 20
const rookSemiOpenFileBonus = 10

// passedPawnBonus is indexed by rank advancement toward promotion, counted
// from the pawn's own back rank (rank 1 = index 0, rank 2 = index 1).
var passedPawnBonus = [8]int{0, 10, 20, 40, 70, 120, 200, 0}

// pawnShieldBonus rewards a friendly pawn standing directly in front of the
// king on a file within its flank.
const pawnShieldBonus = 10
const pawnShieldMissingPenalty = -15

// passedMask[side][sq]: opposing-pawn blocking mask (own file + both
// adjacent files, all squares strictly ahead of sq from side's perspective).
// pathInFront[side][sq]: own-file squares strictly ahead of sq, used to
// check nothing blocks the pawn's own advance.
var passedMask [2][64]board.BitBoard
var pathInFront [2][64]board.BitBoard

// isolatedMask[sq]: the two adjacent files, used to detect isolated pawns
// regardless of side.
var isolatedMask [64]board.BitBoard

func init() {
	for sq := board.A1; sq <= board.H8; sq++ {
		f, r := sq.File(), sq.Rank()

		var isoMask board.BitBoard
		if f > 0 {
			isoMask |= board.FileMask[f-1]
		}
		if f < 7 {
			isoMask |= board.FileMask[f+1]
		}
		isolatedMask[sq] = isoMask

		var whiteAhead, blackAhead board.BitBoard
		for rr := r + 1; rr <= 7; rr++ {
			whiteAhead |= board.RankMask[rr]
		}
		for rr := r - 1; rr >= 0; rr-- {
			blackAhead |= board.RankMask[rr]
		}

		fileSpan := board.FileMask[f]
		if f > 0 {
			fileSpan |= board.FileMask[f-1]
		}
		if f < 7 {
			fileSpan |= board.FileMask[f+1]
		}

		passedMask[board.White][sq] = whiteAhead & fileSpan
		passedMask[board.Black][sq] = blackAhead & fileSpan
		pathInFront[board.White][sq] = whiteAhead & board.FileMask[f]
		pathInFront[board.Black][sq] = blackAhead & board.FileMask[f]
	}
}

// Evaluate returns a centipawn score from the side-to-move's perspective
// (spec §4.5). Deterministic; no randomness, no search, no cached state.
func Evaluate(pos *board.Position) int {
	var score [2]int
	for s := board.White; s <= board.Black; s++ {
		score[s] = materialAndPST(pos, s) +
			passedPawns(pos, s) +
			isolatedPawns(pos, s) +
			rookFiles(pos, s) +
			kingSafety(pos, s)
	}

	total := score[board.White] - score[board.Black]
	if pos.SideToMove == board.Black {
		total = -total
	}
	return total
}

func materialAndPST(pos *board.Position, s board.Side) int {
	total := 0
	for pt := board.Pawn; pt <= board.King; pt++ {
		bb := pos.ByPiece(s, pt)
		for bb != 0 {
			sq := bb.PopLSB()
			pstSq := sq.Mirror()
			if s == board.Black {
				pstSq = sq
			}
			total += board.PieceValue[pt] + pstByKind[pt][pstSq]
		}
	}
	return total
}

func passedPawns(pos *board.Position, s board.Side) int {
	total := 0
	them := s.Opponent()
	enemyPawns := pos.ByPiece(them, board.Pawn)
	ownPawns := pos.ByPiece(s, board.Pawn)
	bb := ownPawns
	for bb != 0 {
		sq := bb.PopLSB()
		if enemyPawns&passedMask[s][sq] != 0 {
			continue
		}
		if ownPawns&pathInFront[s][sq] != 0 {
			continue
		}
		advancement := sq.Rank()
		if s == board.Black {
			advancement = 7 - sq.Rank()
		}
		total += passedPawnBonus[advancement]
	}
	return total
}

func isolatedPawns(pos *board.Position, s board.Side) int {
	total := 0
	ownPawns := pos.ByPiece(s, board.Pawn)
	bb := ownPawns
	for bb != 0 {
		sq := bb.PopLSB()
		if ownPawns&isolatedMask[sq] == 0 {
			total += isolatedPawnPenalty
		}
	}
	return total
}

func rookFiles(pos *board.Position, s board.Side) int {
	total := 0
	them := s.Opponent()
	ownPawns := pos.ByPiece(s, board.Pawn)
	enemyPawns := pos.ByPiece(them, board.Pawn)
	rooks := pos.ByPiece(s, board.Rook)
	for rooks != 0 {
		sq := rooks.PopLSB()
		file := board.FileMask[sq.File()]
		hasOwn := ownPawns&file != 0
		hasEnemy := enemyPawns&file != 0
		switch {
		case !hasOwn && !hasEnemy:
			total += rookOpenFileBonus
		case !hasOwn && hasEnemy:
			total += rookSemiOpenFileBonus
		}
	}
	return total
}

// kingSafety applies the pawn-shield bonus while the opponent still has a
// queen, or king-centralization otherwise (spec §4.5).
func kingSafety(pos *board.Position, s board.Side) int {
	them := s.Opponent()
	if pos.ByPiece(them, board.Queen) != 0 {
		return pawnShield(pos, s)
	}

	ks := pos.KingSquare[s]
	pstSq := ks.Mirror()
	if s == board.Black {
		pstSq = ks
	}
	return kingEndgamePST[pstSq]
}

func pawnShield(pos *board.Position, s board.Side) int {
	ks := pos.KingSquare[s]
	file := ks.File()
	total := 0
	ownPawns := pos.ByPiece(s, board.Pawn)

	shieldRank := ks.Rank() + 1
	if s == board.Black {
		shieldRank = ks.Rank() - 1
	}
	if shieldRank < 0 || shieldRank > 7 {
		return 0
	}

	for f := file - 1; f <= file+1; f++ {
		if f < 0 || f > 7 {
			continue
		}
		if ownPawns.IsSet(board.NewSquare(f, shieldRank)) {
			total += pawnShieldBonus
		} else {
			total += pawnShieldMissingPenalty
		}
	}
	return total
}
