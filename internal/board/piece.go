package board

// Side is the side to move. White=0, Black=1.
type Side uint8

const (
	White Side = iota
	Black
	NoSide Side = 2
)

// Opponent swaps White and Black.
func (s Side) Opponent() Side { return s ^ 1 }

func (s Side) String() string {
	switch s {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// PieceKind is a piece type without color. Empty is a mailbox sentinel and
// is never hashed.
type PieceKind uint8

const (
	Pawn PieceKind = iota
	Knight
	Bishop
	Rook
	Queen
	King
	Empty PieceKind = 6
)

func (pt PieceKind) String() string {
	switch pt {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "empty"
	}
}

// Char returns the lowercase FEN letter for the piece kind.
func (pt PieceKind) Char() byte {
	chars := [7]byte{'p', 'n', 'b', 'r', 'q', 'k', ' '}
	if pt > Empty {
		return ' '
	}
	return chars[pt]
}

// PieceValue gives the material value baked into piece-square scores.
var PieceValue = [7]int{100, 320, 330, 500, 900, 20000, 0}

// Piece combines a PieceKind and a Side. NoPiece is the mailbox sentinel.
type Piece uint8

const (
	WhitePawn   Piece = Piece(Pawn) + Piece(White)*6
	WhiteKnight Piece = Piece(Knight) + Piece(White)*6
	WhiteBishop Piece = Piece(Bishop) + Piece(White)*6
	WhiteRook   Piece = Piece(Rook) + Piece(White)*6
	WhiteQueen  Piece = Piece(Queen) + Piece(White)*6
	WhiteKing   Piece = Piece(King) + Piece(White)*6
	BlackPawn   Piece = Piece(Pawn) + Piece(Black)*6
	BlackKnight Piece = Piece(Knight) + Piece(Black)*6
	BlackBishop Piece = Piece(Bishop) + Piece(Black)*6
	BlackRook   Piece = Piece(Rook) + Piece(Black)*6
	BlackQueen  Piece = Piece(Queen) + Piece(Black)*6
	BlackKing   Piece = Piece(King) + Piece(Black)*6
	NoPiece     Piece = 12
)

// NewPiece combines a kind and a side into a Piece.
func NewPiece(pt PieceKind, s Side) Piece {
	if pt >= Empty || s >= NoSide {
		return NoPiece
	}
	return Piece(pt) + Piece(s)*6
}

// Kind returns the PieceKind of the piece.
func (p Piece) Kind() PieceKind {
	if p >= NoPiece {
		return Empty
	}
	return PieceKind(p % 6)
}

// Side returns the Side of the piece.
func (p Piece) Side() Side {
	if p >= NoPiece {
		return NoSide
	}
	return Side(p / 6)
}

// String returns the FEN letter for the piece (upper for white, lower for black).
func (p Piece) String() string {
	if p >= NoPiece {
		return " "
	}
	return string("PNBRQKpnbrqk"[p])
}

// PieceFromChar converts a FEN letter to a Piece, or NoPiece if unrecognized.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}

// Value returns the material value of the piece in centipawns.
func (p Piece) Value() int { return PieceValue[p.Kind()] }
