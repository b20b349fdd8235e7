package engine

import (
	"fmt"
	"time"

	"github.com/tmarchant/mateline/internal/board"
	"github.com/tmarchant/mateline/internal/book"
)

// ErrNoLegalMoves is returned by Think when the position is mate or
// stalemate (spec §7).
var ErrNoLegalMoves = fmt.Errorf("engine: no legal moves in this position")

// Engine is the one canonical search driver (spec §9 Open Question 3):
// an iterative-deepening negamax over a transposition table, with an
// optional Polyglot opening book consulted only at the root.
type Engine struct {
	TT   *TranspositionTable
	Book *book.Book

	// Difficulty caps the search depth directly (spec §9 Open Question 2:
	// a pure depth cap, no move randomization).
	Difficulty int
}

// NewEngine builds an Engine with a transposition table sized ttSizeMB.
func NewEngine(ttSizeMB int) *Engine {
	return &Engine{
		TT:         NewTranspositionTable(ttSizeMB),
		Difficulty: MaxPly,
	}
}

// NewGame clears the transposition table ahead of a new UCI game. It does
// not touch history-heuristic scores: those live on the position clone each
// Think call searches.
func (e *Engine) NewGame() {
	e.TT.Clear()
}

// ThinkResult is the output of one Think call (spec §6 Analysis API).
type ThinkResult struct {
	Best         board.Move
	Ponder       board.Move
	ScoreCP      int
	DepthReached int
	Nodes        uint64
	PV           []board.Move
	Elapsed      time.Duration

	// Result classifies pos's terminal status (spec §8 scenario S5); it is
	// ResultInProgress for any ordinary position still being played out.
	Result GameResult
}

// Think runs iterative deepening from pos under tc and returns the best
// move found. pos is not mutated — search runs on a clone so the caller's
// position survives cancellation untouched regardless of how the search
// stack unwound (spec §9). onInfo, if non-nil, is called with the result
// of every completed iteration (the UCI adapter turns this into `info`
// lines). stop, if non-nil, lets the caller cancel early (UCI `stop`);
// closing it has the same effect as the deadline elapsing.
func (e *Engine) Think(pos *board.Position, tc TimeControl, onInfo func(ThinkResult), stop <-chan struct{}) (ThinkResult, error) {
	if e.Book != nil {
		if m, ok := e.Book.Probe(pos); ok {
			return ThinkResult{Best: m, PV: []board.Move{m}}, nil
		}
	}

	if !pos.HasLegalMoves() {
		return ThinkResult{}, ErrNoLegalMoves
	}
	outcome := classifyGameResult(pos)

	scratch := pos.Clone()
	soft, hard := tc.budget(pos.SideToMove)

	start := time.Now()
	s := &searchState{pos: scratch, tt: e.TT, stop: stop}
	if hard > 0 {
		s.deadline = start.Add(hard)
	}

	maxDepth := tc.Depth
	if maxDepth <= 0 || maxDepth > e.Difficulty {
		maxDepth = e.Difficulty
	}
	if maxDepth <= 0 || maxDepth > MaxPly {
		maxDepth = MaxPly
	}

	result := ThinkResult{}
	for depth := 1; depth <= maxDepth; depth++ {
		// stop and the soft deadline are checked here only before depth 2
		// onward, so the depth-1 iteration is always started. The in-search
		// polling (checkDeadline) can still cut it short; the fallback
		// below covers that case.
		if depth > 1 {
			if soft > 0 && time.Since(start) > soft {
				break
			}
			if s.stopRequested() {
				break
			}
		}

		score := s.negamax(-infScore, infScore, depth, 0)
		if s.aborted {
			break
		}

		pv := make([]board.Move, s.pvLen[0])
		copy(pv, s.pv[0][:s.pvLen[0]])

		result = ThinkResult{
			Best:         firstOrNoMove(pv),
			ScoreCP:      score,
			DepthReached: depth,
			Nodes:        s.nodes,
			PV:           pv,
			Elapsed:      time.Since(start),
			Result:       outcome,
		}
		if len(pv) > 1 {
			result.Ponder = pv[1]
		}

		if onInfo != nil {
			onInfo(result)
		}

		if score >= MateScore-MaxPly || score <= -(MateScore-MaxPly) {
			break
		}
	}

	if result.Best == board.NoMove {
		// No iteration produced a PV: either depth 1 was cut short by a
		// deadline/stop, or negamax returned a root draw score (fifty-move
		// rule or insufficient material) before searching any move. pos
		// is known to have a legal move (checked above), so fall back to
		// the first one in generation order with score 0 (spec §5)
		// instead of reporting ErrNoLegalMoves.
		result = ThinkResult{
			Best:         pos.LegalMoves().Get(0),
			DepthReached: 0,
			Elapsed:      time.Since(start),
			Result:       outcome,
		}
	}
	return result, nil
}

func firstOrNoMove(pv []board.Move) board.Move {
	if len(pv) == 0 {
		return board.NoMove
	}
	return pv[0]
}
