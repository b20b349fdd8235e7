package board

// perSquareCastleMask clears the relevant castle bits whenever a king or
// rook square is touched as either origin or destination — spec §4.4 step 3.
var perSquareCastleMask [64]CastleRights

func init() {
	for sq := range perSquareCastleMask {
		perSquareCastleMask[sq] = AllCastleRights
	}
	perSquareCastleMask[E1] &^= WhiteKingSide | WhiteQueenSide
	perSquareCastleMask[H1] &^= WhiteKingSide
	perSquareCastleMask[A1] &^= WhiteQueenSide
	perSquareCastleMask[E8] &^= BlackKingSide | BlackQueenSide
	perSquareCastleMask[H8] &^= BlackKingSide
	perSquareCastleMask[A8] &^= BlackQueenSide
}

// MakeMove applies m and reports whether it was legal (did not leave the
// mover's own king in check). On false, the position is left exactly as it
// was — the caller does not need to call UnmakeMove. On true, the caller
// MUST eventually call UnmakeMove to restore the position (spec §4.4).
func (p *Position) MakeMove(m Move) bool {
	us := p.SideToMove
	them := us.Opponent()
	from, to := m.From(), m.To()
	moving := p.mailbox[from]

	rec := undoRecord{
		from:           from,
		to:             to,
		priorCastle:    p.CastleMask,
		priorFifty:     p.FiftyMoveCounter,
		priorEnPassant: p.EnPassant,
		priorHashKey:   p.hashKey,
		priorHashLock:  p.hashLock,
		wasCastle:      m.IsCastling(),
		wasEnPassant:   m.IsEnPassant(),
	}

	if m.IsCastling() {
		kingTravel := Between(from, to) | SquareBB(from) | SquareBB(to)
		for travel := kingTravel; travel != 0; {
			sq := travel.PopLSB()
			if p.IsSquareAttacked(sq, them) {
				return false
			}
		}
	}

	p.clearEnPassant()

	if m.IsEnPassant() {
		capSq := to
		if us == White {
			capSq = Square(int(to) - 8)
		} else {
			capSq = Square(int(to) + 8)
		}
		rec.captured = p.removePiece(capSq)
		rec.capturedSquare = capSq
	} else if captured := p.mailbox[to]; captured != NoPiece {
		rec.captured = p.removePiece(to)
		rec.capturedSquare = to
	} else {
		rec.captured = NoPiece
		rec.capturedSquare = NoSquare
	}

	p.removePiece(from)
	if m.IsPromotion() {
		rec.promote = m.Promotion()
		p.placePiece(NewPiece(m.Promotion(), us), to)
	} else {
		rec.promote = Empty
		p.placePiece(moving, to)
	}

	if m.IsCastling() {
		var rookFrom, rookTo Square
		if to > from {
			rookFrom, rookTo = NewSquare(7, from.Rank()), NewSquare(5, from.Rank())
		} else {
			rookFrom, rookTo = NewSquare(0, from.Rank()), NewSquare(3, from.Rank())
		}
		rook := p.removePiece(rookFrom)
		p.placePiece(rook, rookTo)
	}

	newCastle := p.CastleMask & perSquareCastleMask[from] & perSquareCastleMask[to]
	p.setCastleMask(newCastle)

	p.FiftyMoveCounter++
	if moving.Kind() == Pawn || rec.captured != NoPiece {
		p.FiftyMoveCounter = 0
	}

	if moving.Kind() == Pawn && abs(int(to)-int(from)) == 16 {
		epSquare := Square((int(from) + int(to)) / 2)
		p.setEnPassant(epSquare)
	}

	p.flipSideToMove()
	p.PlyFromGameStart++
	p.history = append(p.history, rec)

	if p.IsSquareAttacked(p.KingSquare[us], them) {
		p.unmakeLast()
		return false
	}
	return true
}

// UnmakeMove reverses the most recent successful MakeMove.
func (p *Position) UnmakeMove() { p.unmakeLast() }

func (p *Position) unmakeLast() {
	n := len(p.history)
	rec := p.history[n-1]
	p.history = p.history[:n-1]
	p.PlyFromGameStart--

	them := p.SideToMove
	us := them.Opponent()

	if rec.wasCastle {
		var rookFrom, rookTo Square
		if rec.to > rec.from {
			rookFrom, rookTo = NewSquare(7, rec.from.Rank()), NewSquare(5, rec.from.Rank())
		} else {
			rookFrom, rookTo = NewSquare(0, rec.from.Rank()), NewSquare(3, rec.from.Rank())
		}
		rook := p.rawRemove(rookTo)
		p.rawPlace(rook, rookFrom)
	}

	mover := p.rawRemove(rec.to)
	if rec.promote != Empty {
		p.rawPlace(NewPiece(Pawn, us), rec.from)
	} else {
		p.rawPlace(mover, rec.from)
	}

	if rec.captured != NoPiece {
		p.rawPlace(rec.captured, rec.capturedSquare)
	}

	p.SideToMove = us
	p.CastleMask = rec.priorCastle
	p.EnPassant = rec.priorEnPassant
	p.FiftyMoveCounter = rec.priorFifty
	p.hashKey = rec.priorHashKey
	p.hashLock = rec.priorHashLock
}

// rawPlace/rawRemove mutate the board tuple without touching the hash —
// used only by unmake, which restores the hash directly from the undo
// record rather than re-deriving it incrementally.
func (p *Position) rawPlace(piece Piece, sq Square) {
	if piece == NoPiece {
		return
	}
	s, pt := piece.Side(), piece.Kind()
	bb := SquareBB(sq)
	p.mailbox[sq] = piece
	p.byPiece[s][pt] |= bb
	p.bySide[s] |= bb
	p.occupied |= bb
	if pt == King {
		p.KingSquare[s] = sq
	}
}

func (p *Position) rawRemove(sq Square) Piece {
	piece := p.mailbox[sq]
	if piece == NoPiece {
		return NoPiece
	}
	s, pt := piece.Side(), piece.Kind()
	bb := SquareBB(sq)
	p.mailbox[sq] = NoPiece
	p.byPiece[s][pt] &^= bb
	p.bySide[s] &^= bb
	p.occupied &^= bb
	return piece
}
