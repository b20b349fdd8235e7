package engine

import (
	"time"

	"github.com/tmarchant/mateline/internal/board"
)

const (
	MaxPly    = 128
	MateScore = 1_000_000
	infScore  = MateScore + MaxPly + 1
	drawScore = 0

	nodesPerDeadlineCheck = 256
)

// searchState is the scratch shared across one Think() call's recursion.
// Cancellation is a cooperative sentinel (spec §9): every negamax frame
// that has already made a move unmakes it before propagating the abort, so
// the position is always left exactly as it was once the stack unwinds —
// no panic/recover needed.
type searchState struct {
	pos      *board.Position
	tt       *TranspositionTable
	deadline time.Time
	stop     <-chan struct{}
	nodes    uint64
	aborted  bool

	pv    [MaxPly + 1][MaxPly + 1]board.Move
	pvLen [MaxPly + 1]int
}

func (s *searchState) stopRequested() bool {
	if s.stop == nil {
		return false
	}
	select {
	case <-s.stop:
		return true
	default:
		return false
	}
}

func (s *searchState) checkDeadline() {
	if s.nodes%nodesPerDeadlineCheck != 0 {
		return
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		s.aborted = true
		return
	}
	if s.stopRequested() {
		s.aborted = true
	}
}

// negamax implements spec §4.7's pseudocode, including repetition,
// fifty-move, insufficient-material and TT short-circuits, and mate scores
// offset by ply. A beta cutoff returns beta (fail-hard).
func (s *searchState) negamax(alpha, beta, depth, ply int) int {
	s.pvLen[ply] = ply

	if ply > 0 && s.pos.IsRepetition(2) {
		return drawScore
	}
	if s.pos.FiftyMoveCounter >= 100 {
		return drawScore
	}
	if s.pos.IsInsufficientMaterial() {
		return drawScore
	}
	if depth <= 0 {
		return s.quiescence(alpha, beta, ply)
	}
	if ply >= MaxPly {
		return Evaluate(s.pos)
	}

	key := s.pos.HashKey()
	var ttMove board.Move
	if entry, ok := s.tt.Probe(key); ok {
		ttMove = entry.best
		if entry.depth >= depth {
			switch entry.bound {
			case BoundExact:
				return entry.score
			case BoundLower:
				if entry.score >= beta {
					return entry.score
				}
			case BoundUpper:
				if entry.score <= alpha {
					return entry.score
				}
			}
		}
	}

	inCheck := s.pos.InCheck()

	ml := &board.MoveList{}
	s.pos.GenerateAll(ml, ttMove, &s.pos.HistoryHeuristic)

	bestScore := -infScore
	bestMove := board.NoMove
	legalCount := 0
	origAlpha := alpha

	for i := 0; i < ml.Len(); i++ {
		ml.SelectBest(i)
		m := ml.Get(i)

		if !s.pos.MakeMove(m) {
			continue
		}
		legalCount++
		s.nodes++
		s.checkDeadline()

		score := -s.negamax(-beta, -alpha, depth-1, ply+1)
		s.pos.UnmakeMove()

		if s.aborted {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			s.recordPV(ply, m)
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			if !s.pos.IsCapture(m) {
				s.pos.HistoryHeuristic[s.pos.SideToMove][m.From()][m.To()] += int32(depth * depth)
			}
			s.tt.Store(key, m, depth, beta, BoundLower)
			return beta
		}
	}

	if legalCount == 0 {
		if inCheck {
			return -(MateScore - ply)
		}
		return drawScore
	}

	bound := BoundUpper
	if alpha > origAlpha {
		bound = BoundExact
	}
	s.tt.Store(key, bestMove, depth, bestScore, bound)
	return bestScore
}

func (s *searchState) recordPV(ply int, m board.Move) {
	s.pv[ply][ply] = m
	for next := ply + 1; next < s.pvLen[ply+1]; next++ {
		s.pv[ply][next] = s.pv[ply+1][next]
	}
	s.pvLen[ply] = s.pvLen[ply+1]
	if s.pvLen[ply] <= ply {
		s.pvLen[ply] = ply + 1
	}
}

// quiescence resolves tactical exchanges before handing back a score,
// stand-pat bounded (spec §4.7).
func (s *searchState) quiescence(alpha, beta, ply int) int {
	s.nodes++
	s.checkDeadline()
	if s.aborted {
		return 0
	}
	if ply >= MaxPly {
		return Evaluate(s.pos)
	}

	standPat := Evaluate(s.pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	ml := &board.MoveList{}
	s.pos.GenerateCaptures(ml)

	for i := 0; i < ml.Len(); i++ {
		ml.SelectBest(i)
		m := ml.Get(i)
		if !s.pos.MakeMove(m) {
			continue
		}
		score := -s.quiescence(-beta, -alpha, ply+1)
		s.pos.UnmakeMove()

		if s.aborted {
			return 0
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}
