package board

import "strings"

// SAN renders m in Standard Algebraic Notation relative to pos (supplemented
// feature: the reference distillation only required UCI strings, but a CLI
// move-history display wants the conventional notation).
func (m Move) SAN(pos *Position) string {
	if m == NoMove {
		return "-"
	}
	if m.IsCastling() {
		san := "O-O"
		if m.To() < m.From() {
			san = "O-O-O"
		}
		return san + checkSuffix(pos, m)
	}

	from, to := m.From(), m.To()
	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return m.String()
	}
	pt := piece.Kind()

	var sb strings.Builder
	if pt != Pawn {
		sb.WriteByte("PNBRQK"[pt])
		sb.WriteString(disambiguation(pos, m, pt))
	}

	isCapture := m.IsEnPassant() || pos.PieceAt(to) != NoPiece
	if isCapture {
		if pt == Pawn {
			sb.WriteByte('a' + byte(from.File()))
		}
		sb.WriteByte('x')
	}
	sb.WriteString(to.String())

	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte("PNBRQK"[m.Promotion()])
	}
	sb.WriteString(checkSuffix(pos, m))
	return sb.String()
}

// checkSuffix applies m to a scratch copy to decide between "+" and "#".
func checkSuffix(pos *Position, m Move) string {
	scratch := pos.Clone()
	if !scratch.MakeMove(m) {
		return ""
	}
	if scratch.IsCheckmate() {
		return "#"
	}
	if scratch.InCheck() {
		return "+"
	}
	return ""
}

func disambiguation(pos *Position, m Move, pt PieceKind) string {
	from, to := m.From(), m.To()
	us := pos.SideToMove
	sameKind := pos.byPiece[us][pt]

	var candidates []Square
	legal := pos.LegalMoves()
	for i := 0; i < legal.Len(); i++ {
		cand := legal.Get(i)
		if cand.To() != to || cand.From() == from {
			continue
		}
		if sameKind.IsSet(cand.From()) {
			candidates = append(candidates, cand.From())
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range candidates {
		if sq.File() == from.File() {
			sameFile = true
		}
		if sq.Rank() == from.Rank() {
			sameRank = true
		}
	}
	switch {
	case !sameFile:
		return string(rune('a' + from.File()))
	case !sameRank:
		return string(rune('1' + from.Rank()))
	default:
		return from.String()
	}
}
