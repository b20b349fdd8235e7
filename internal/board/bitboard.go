package board

import (
	"math/bits"
	"strings"
)

// BitBoard is a 64-bit occupancy mask; bit k set iff square k is occupied.
type BitBoard uint64

// File masks.
const (
	FileA BitBoard = 0x0101010101010101
	FileB BitBoard = 0x0202020202020202
	FileC BitBoard = 0x0404040404040404
	FileD BitBoard = 0x0808080808080808
	FileE BitBoard = 0x1010101010101010
	FileF BitBoard = 0x2020202020202020
	FileG BitBoard = 0x4040404040404040
	FileH BitBoard = 0x8080808080808080
)

// Rank masks.
const (
	Rank1 BitBoard = 0x00000000000000FF
	Rank2 BitBoard = 0x000000000000FF00
	Rank3 BitBoard = 0x0000000000FF0000
	Rank4 BitBoard = 0x00000000FF000000
	Rank5 BitBoard = 0x000000FF00000000
	Rank6 BitBoard = 0x0000FF0000000000
	Rank7 BitBoard = 0x00FF000000000000
	Rank8 BitBoard = 0xFF00000000000000
)

const (
	EmptyBoard BitBoard = 0
	FullBoard  BitBoard = 0xFFFFFFFFFFFFFFFF

	NotFileA BitBoard = ^FileA
	NotFileH BitBoard = ^FileH
)

// FileMask maps a file index (0-7) to its mask.
var FileMask = [8]BitBoard{FileA, FileB, FileC, FileD, FileE, FileF, FileG, FileH}

// RankMask maps a rank index (0-7) to its mask.
var RankMask = [8]BitBoard{Rank1, Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8}

// SquareBB returns a board with only the given square set.
func SquareBB(sq Square) BitBoard { return 1 << BitBoard(sq) }

// Set returns b with sq set.
func (b BitBoard) Set(sq Square) BitBoard { return b | SquareBB(sq) }

// Clear returns b with sq cleared.
func (b BitBoard) Clear(sq Square) BitBoard { return b &^ SquareBB(sq) }

// IsSet reports whether sq is set in b.
func (b BitBoard) IsSet(sq Square) bool { return b&SquareBB(sq) != 0 }

// PopCount returns the number of set bits.
func (b BitBoard) PopCount() int { return bits.OnesCount64(uint64(b)) }

// LSB returns the lowest set square, or NoSquare if b is empty.
func (b BitBoard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLSB clears and returns the lowest set square.
func (b *BitBoard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// Any reports whether any bit is set.
func (b BitBoard) Any() bool { return b != 0 }

// North shifts the board one rank toward rank 8.
func (b BitBoard) North() BitBoard { return b << 8 }

// South shifts the board one rank toward rank 1.
func (b BitBoard) South() BitBoard { return b >> 8 }

// East shifts the board one file toward file h.
func (b BitBoard) East() BitBoard { return (b << 1) & NotFileA }

// West shifts the board one file toward file a.
func (b BitBoard) West() BitBoard { return (b >> 1) & NotFileH }

// NorthEast shifts toward the h8 corner by one diagonal step.
func (b BitBoard) NorthEast() BitBoard { return (b << 9) & NotFileA }

// NorthWest shifts toward the a8 corner by one diagonal step.
func (b BitBoard) NorthWest() BitBoard { return (b << 7) & NotFileH }

// SouthEast shifts toward the h1 corner by one diagonal step.
func (b BitBoard) SouthEast() BitBoard { return (b >> 7) & NotFileA }

// SouthWest shifts toward the a1 corner by one diagonal step.
func (b BitBoard) SouthWest() BitBoard { return (b >> 9) & NotFileH }

// String renders the board as an 8x8 grid with rank 8 on top.
func (b BitBoard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			if b.IsSet(NewSquare(file, rank)) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('.')
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ForEach invokes f once per set square, lowest square first.
func (b BitBoard) ForEach(f func(Square)) {
	for b != 0 {
		f(b.PopLSB())
	}
}
