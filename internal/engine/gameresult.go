package engine

import "github.com/tmarchant/mateline/internal/board"

// GameResult classifies a position's terminal status, checked once at the
// start of Think so callers get an explicit classification instead of
// having to infer it from a raw centipawn score (spec §8 scenario S5).
type GameResult int

const (
	ResultInProgress GameResult = iota
	ResultCheckmate
	ResultStalemate
	ResultInsufficientMaterial
	ResultFiftyMoveDraw
	ResultRepetitionDraw
)

func (r GameResult) String() string {
	switch r {
	case ResultCheckmate:
		return "Checkmate"
	case ResultStalemate:
		return "Stalemate"
	case ResultInsufficientMaterial:
		return "DrawByInsufficientMaterial"
	case ResultFiftyMoveDraw:
		return "DrawByFiftyMoveRule"
	case ResultRepetitionDraw:
		return "DrawByRepetition"
	default:
		return "InProgress"
	}
}

// classifyGameResult reports pos's terminal status: mate/stalemate first,
// then the material/fifty-move/threefold-repetition draws.
func classifyGameResult(pos *board.Position) GameResult {
	if !pos.HasLegalMoves() {
		if pos.InCheck() {
			return ResultCheckmate
		}
		return ResultStalemate
	}
	if pos.IsInsufficientMaterial() {
		return ResultInsufficientMaterial
	}
	if pos.FiftyMoveCounter >= 100 {
		return ResultFiftyMoveDraw
	}
	if pos.IsRepetition(3) {
		return ResultRepetitionDraw
	}
	return ResultInProgress
}
