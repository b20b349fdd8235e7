package board

// Move-ordering score bands (spec §4.3). Selection-sort-at-use (see
// MoveList.SelectBest) means only the relative ordering within a band
// matters, not the absolute numbers.
const (
	HashBonus    int32 = 100_000_000
	CaptureBonus int32 = 10_000_000
)

// mvvLvaValue is the per-kind value used by the MVV/LVA table; coarser
// than PieceValue so the victim dominates the attacker term.
var mvvLvaValue = [6]int32{1, 3, 3, 5, 9, 200}

// mvvLva scores a capture: victim value dominates, attacker value is a tiebreaker.
func mvvLva(victim, attacker PieceKind) int32 {
	return mvvLvaValue[victim]*10 - mvvLvaValue[attacker]
}

// GenerateAll appends every pseudo-legal move (quiet and capturing) for the
// side to move, scored for search ordering. ttMove, if not NoMove, receives
// HashBonus. history supplies quiet-move scores.
func (p *Position) GenerateAll(ml *MoveList, ttMove Move, history *[2][64][64]int32) {
	p.generatePawnMoves(ml, true)
	p.generateLeaperMoves(ml, Knight, true)
	p.generateSliderMoves(ml, Bishop, true)
	p.generateSliderMoves(ml, Rook, true)
	p.generateSliderMoves(ml, Queen, true)
	p.generateLeaperMoves(ml, King, true)
	p.generateCastlingMoves(ml)
	p.scoreMoves(ml, ttMove, history)
}

// GenerateCaptures appends only captures and promotions (for quiescence),
// scored by MVV/LVA.
func (p *Position) GenerateCaptures(ml *MoveList) {
	p.generatePawnMoves(ml, false)
	p.generateLeaperMoves(ml, Knight, false)
	p.generateSliderMoves(ml, Bishop, false)
	p.generateSliderMoves(ml, Rook, false)
	p.generateSliderMoves(ml, Queen, false)
	p.generateLeaperMoves(ml, King, false)
	p.scoreMoves(ml, NoMove, nil)
}

func (p *Position) scoreMoves(ml *MoveList, ttMove Move, history *[2][64][64]int32) {
	us := p.SideToMove
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		switch {
		case ttMove != NoMove && m == ttMove:
			ml.SetScore(i, HashBonus)
		case p.isCaptureOrPromotion(m):
			attacker := p.PieceAt(m.From()).Kind()
			var score int32
			if p.IsCapture(m) {
				score = CaptureBonus + mvvLva(p.captureVictimKind(m), attacker)
			} else {
				// A promotion onto an empty square has no victim.
				score = CaptureBonus - mvvLvaValue[attacker]
			}
			if m.IsPromotion() {
				score += mvvLvaValue[m.Promotion()] * 10
			}
			ml.SetScore(i, score)
		default:
			if history != nil {
				ml.SetScore(i, history[us][m.From()][m.To()])
			}
		}
	}
}

func (p *Position) isCaptureOrPromotion(m Move) bool {
	return m.IsEnPassant() || m.IsPromotion() || p.mailbox[m.To()] != NoPiece
}

// IsCapture reports whether m captures a piece (including en passant). Used
// by the search driver to decide whether a beta-cutoff move should update
// the quiet-move history table.
func (p *Position) IsCapture(m Move) bool {
	return m.IsEnPassant() || p.mailbox[m.To()] != NoPiece
}

func (p *Position) captureVictimKind(m Move) PieceKind {
	if m.IsEnPassant() {
		return Pawn
	}
	return p.mailbox[m.To()].Kind()
}

func (p *Position) generatePawnMoves(ml *MoveList, includeQuiet bool) {
	us := p.SideToMove
	them := us.Opponent()
	pawns := p.byPiece[us][Pawn]
	enemies := p.bySide[them]
	empty := ^p.occupied

	var push1, push2, attackLeft, attackRight BitBoard
	var promoRank BitBoard
	var pushDelta int

	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		attackLeft = pawns.NorthWest() & enemies
		attackRight = pawns.NorthEast() & enemies
		promoRank = Rank8
		pushDelta = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		attackLeft = pawns.SouthWest() & enemies
		attackRight = pawns.SouthEast() & enemies
		promoRank = Rank1
		pushDelta = -8
	}

	if includeQuiet {
		quiet := push1 &^ promoRank
		for quiet != 0 {
			to := quiet.PopLSB()
			ml.Add(NewMove(Square(int(to)-pushDelta), to), 0)
		}
		for push2 != 0 {
			to := push2.PopLSB()
			ml.Add(NewMove(Square(int(to)-2*pushDelta), to), 0)
		}
	}

	capturesLeft := attackLeft &^ promoRank
	for capturesLeft != 0 {
		to := capturesLeft.PopLSB()
		ml.Add(NewMove(Square(int(to)-pushDelta+1), to), 0)
	}
	capturesRight := attackRight &^ promoRank
	for capturesRight != 0 {
		to := capturesRight.PopLSB()
		ml.Add(NewMove(Square(int(to)-pushDelta-1), to), 0)
	}

	promoPush := push1 & promoRank
	for promoPush != 0 {
		to := promoPush.PopLSB()
		addPromotions(ml, Square(int(to)-pushDelta), to)
	}
	promoLeft := attackLeft & promoRank
	for promoLeft != 0 {
		to := promoLeft.PopLSB()
		addPromotions(ml, Square(int(to)-pushDelta+1), to)
	}
	promoRight := attackRight & promoRank
	for promoRight != 0 {
		to := promoRight.PopLSB()
		addPromotions(ml, Square(int(to)-pushDelta-1), to)
	}

	if p.EnPassant != NoSquare {
		epBB := SquareBB(p.EnPassant)
		var attackers BitBoard
		if us == White {
			attackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
		} else {
			attackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
		}
		for attackers != 0 {
			from := attackers.PopLSB()
			ml.Add(NewEnPassant(from, p.EnPassant), 0)
		}
	}
}

func addPromotions(ml *MoveList, from, to Square) {
	ml.Add(NewPromotion(from, to, Queen), 0)
	ml.Add(NewPromotion(from, to, Rook), 0)
	ml.Add(NewPromotion(from, to, Bishop), 0)
	ml.Add(NewPromotion(from, to, Knight), 0)
}

func (p *Position) generateLeaperMoves(ml *MoveList, kind PieceKind, includeQuiet bool) {
	us := p.SideToMove
	pieces := p.byPiece[us][kind]
	enemies := p.bySide[us.Opponent()]
	for pieces != 0 {
		from := pieces.PopLSB()
		var targets BitBoard
		if kind == Knight {
			targets = KnightAttacks(from)
		} else {
			targets = KingAttacks(from)
		}
		targets &^= p.bySide[us]
		if !includeQuiet {
			targets &= enemies
		}
		for targets != 0 {
			to := targets.PopLSB()
			ml.Add(NewMove(from, to), 0)
		}
	}
}

func (p *Position) generateSliderMoves(ml *MoveList, kind PieceKind, includeQuiet bool) {
	us := p.SideToMove
	pieces := p.byPiece[us][kind]
	enemies := p.bySide[us.Opponent()]
	for pieces != 0 {
		from := pieces.PopLSB()
		var targets BitBoard
		switch kind {
		case Bishop:
			targets = BishopAttacks(from, p.occupied)
		case Rook:
			targets = RookAttacks(from, p.occupied)
		default:
			targets = QueenAttacks(from, p.occupied)
		}
		targets &^= p.bySide[us]
		if !includeQuiet {
			targets &= enemies
		}
		for targets != 0 {
			to := targets.PopLSB()
			ml.Add(NewMove(from, to), 0)
		}
	}
}

// generateCastlingMoves emits castling moves when the castle bit is set and
// the squares between king and rook are empty (spec §4.3); legality — king
// not in or passing through check — is enforced at make time.
func (p *Position) generateCastlingMoves(ml *MoveList) {
	us := p.SideToMove
	if us == White {
		if p.CastleMask.CanCastle(White, true) && Between(E1, H1)&p.occupied == 0 {
			ml.Add(NewCastling(E1, G1), 0)
		}
		if p.CastleMask.CanCastle(White, false) && Between(E1, A1)&p.occupied == 0 {
			ml.Add(NewCastling(E1, C1), 0)
		}
	} else {
		if p.CastleMask.CanCastle(Black, true) && Between(E8, H8)&p.occupied == 0 {
			ml.Add(NewCastling(E8, G8), 0)
		}
		if p.CastleMask.CanCastle(Black, false) && Between(E8, A8)&p.occupied == 0 {
			ml.Add(NewCastling(E8, C8), 0)
		}
	}
}

// LegalMoves returns every pseudo-legal move that survives the
// make/check-king/unmake legality filter.
func (p *Position) LegalMoves() *MoveList {
	pseudo := &MoveList{}
	p.GenerateAll(pseudo, NoMove, nil)
	legal := &MoveList{}
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		if ok := p.MakeMove(m); ok {
			p.UnmakeMove()
			legal.Add(m, pseudo.Score(i))
		}
	}
	return legal
}

// LegalMoveStrings returns every legal move in UCI form, sorted by
// generation order (used by the CLI `moves` command).
func (p *Position) LegalMoveStrings() []string {
	ml := p.LegalMoves()
	out := make([]string, ml.Len())
	for i := 0; i < ml.Len(); i++ {
		out[i] = ml.Get(i).String()
	}
	return out
}

// HasLegalMoves reports whether the side to move has at least one legal move.
func (p *Position) HasLegalMoves() bool {
	pseudo := &MoveList{}
	p.GenerateAll(pseudo, NoMove, nil)
	for i := 0; i < pseudo.Len(); i++ {
		if p.MakeMove(pseudo.Get(i)) {
			p.UnmakeMove()
			return true
		}
	}
	return false
}

// IsCheckmate reports whether the side to move is checkmated.
func (p *Position) IsCheckmate() bool { return p.InCheck() && !p.HasLegalMoves() }

// IsStalemate reports whether the side to move is stalemated.
func (p *Position) IsStalemate() bool { return !p.InCheck() && !p.HasLegalMoves() }

// IsInsufficientMaterial reports whether neither side has enough material to
// force checkmate.
func (p *Position) IsInsufficientMaterial() bool {
	if p.byPiece[White][Pawn]|p.byPiece[Black][Pawn] != 0 ||
		p.byPiece[White][Rook]|p.byPiece[Black][Rook] != 0 ||
		p.byPiece[White][Queen]|p.byPiece[Black][Queen] != 0 {
		return false
	}
	wMinors := p.byPiece[White][Knight].PopCount() + p.byPiece[White][Bishop].PopCount()
	bMinors := p.byPiece[Black][Knight].PopCount() + p.byPiece[Black][Bishop].PopCount()
	if wMinors == 0 && bMinors == 0 {
		return true
	}
	if wMinors <= 1 && bMinors == 0 {
		return true
	}
	if bMinors <= 1 && wMinors == 0 {
		return true
	}
	return false
}

// IsRepetition reports whether the current hash matches an earlier position
// reached since the last irreversible move (capture, pawn move, castling, or
// loss of castling rights) — spec §4.7's draw-by-repetition check. count=3
// asks for threefold (full draw claim), count=2 for "has occurred before"
// (used by the search's faster two-fold cutoff heuristic).
func (p *Position) IsRepetition(count int) bool {
	occurrences := 1
	// Irreversible moves reset the fifty-move counter, so history further
	// back than that can never repeat the current position.
	limit := len(p.history) - p.FiftyMoveCounter
	if limit < 0 {
		limit = 0
	}
	for i := len(p.history) - 1; i >= limit; i-- {
		if p.history[i].priorHashKey == p.hashKey {
			occurrences++
			if occurrences >= count {
				return true
			}
		}
	}
	return false
}
