package board

import "fmt"

// Move packs a chess move into 16 bits:
//
//	bits 0-5:   from square
//	bits 6-11:  to square
//	bits 12-13: promotion kind (0=Knight, 1=Bishop, 2=Rook, 3=Queen)
//	bits 14-15: flag (0=normal, 1=promotion, 2=en passant, 3=castling)
type Move uint16

const (
	flagNormal    uint16 = 0 << 14
	flagPromotion uint16 = 1 << 14
	flagEnPassant uint16 = 2 << 14
	flagCastling  uint16 = 3 << 14
	flagMask      uint16 = 3 << 14
)

// NoMove is the null/invalid move (a1a1 is unreachable as a real move).
const NoMove Move = 0

// NewMove builds a normal (non-promotion, non-capture-special) move.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion builds a promotion move. promo must be Knight, Bishop, Rook or Queen.
func NewPromotion(from, to Square, promo PieceKind) Move {
	idx := Move(promo - Knight)
	return Move(from) | Move(to)<<6 | idx<<12 | Move(flagPromotion)
}

// NewEnPassant builds an en-passant capture move.
func NewEnPassant(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(flagEnPassant)
}

// NewCastling builds a castling move (encodes the king's own movement).
func NewCastling(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(flagCastling)
}

// From returns the origin square.
func (m Move) From() Square { return Square(m & 0x3F) }

// To returns the destination square.
func (m Move) To() Square { return Square((m >> 6) & 0x3F) }

func (m Move) flag() uint16 { return uint16(m) & flagMask }

// Promotion returns the promotion kind; only meaningful if IsPromotion().
func (m Move) Promotion() PieceKind { return PieceKind((m>>12)&3) + Knight }

// IsPromotion reports whether m promotes a pawn.
func (m Move) IsPromotion() bool { return m.flag() == flagPromotion }

// IsCastling reports whether m is a castling move.
func (m Move) IsCastling() bool { return m.flag() == flagCastling }

// IsEnPassant reports whether m is an en-passant capture.
func (m Move) IsEnPassant() bool { return m.flag() == flagEnPassant }

// String renders the move in UCI form, e.g. "e2e4", "e7e8q".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string("nbrq"[m.Promotion()-Knight])
	}
	return s
}

// ParseMove parses a UCI move string against the current position, to
// recover special-move flags (castling, en passant) that the bare squares
// don't carry.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NoMove, fmt.Errorf("invalid move string: %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}
	if len(s) == 5 {
		var promo PieceKind
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		return NewPromotion(from, to, promo), nil
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("no piece on %s", from)
	}
	if piece.Kind() == King && abs(int(to)-int(from)) == 2 {
		return NewCastling(from, to), nil
	}
	if piece.Kind() == Pawn && to == pos.EnPassant && to != NoSquare {
		return NewEnPassant(from, to), nil
	}
	return NewMove(from, to), nil
}

// MoveList is a fixed-capacity move arena slice; capacity matches the
// reference engine's MOVE_STACK bound and avoids per-node heap allocation.
type MoveList struct {
	moves  [256]Move
	scores [256]int32
	count  int
}

// Len returns the number of moves currently stored.
func (ml *MoveList) Len() int { return ml.count }

// Add appends a move with the given ordering score (see spec §4.3).
func (ml *MoveList) Add(m Move, score int32) {
	ml.moves[ml.count] = m
	ml.scores[ml.count] = score
	ml.count++
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move { return ml.moves[i] }

// Score returns the ordering score at index i.
func (ml *MoveList) Score(i int) int32 { return ml.scores[i] }

// SetScore overwrites the ordering score at index i (used to boost the TT move).
func (ml *MoveList) SetScore(i int, score int32) { ml.scores[i] = score }

// Swap exchanges the moves (and their scores) at i and j.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
	ml.scores[i], ml.scores[j] = ml.scores[j], ml.scores[i]
}

// Clear empties the list for reuse.
func (ml *MoveList) Clear() { ml.count = 0 }

// SelectBest scans the unsorted suffix starting at index and swaps the
// highest-scoring move into place — "selection sort at use" (spec §4.3):
// cheaper than a full sort since beta cutoffs usually consume only the
// first few moves.
func (ml *MoveList) SelectBest(index int) {
	best := index
	for j := index + 1; j < ml.count; j++ {
		if ml.scores[j] > ml.scores[best] {
			best = j
		}
	}
	if best != index {
		ml.Swap(index, best)
	}
}
