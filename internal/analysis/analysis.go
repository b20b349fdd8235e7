// Package analysis wraps engine.Engine in the synchronous Analysis API
// (spec §6): one call in, one result or error out, with no streaming
// `info` output (that belongs to the uci adapter).
package analysis

import (
	"errors"
	"fmt"
	"time"

	"github.com/tmarchant/mateline/internal/board"
	"github.com/tmarchant/mateline/internal/engine"
)

// ErrMalformedFEN wraps a FEN parse failure (spec §7).
var ErrMalformedFEN = errors.New("analysis: malformed fen")

// Request is the Analysis API's input.
type Request struct {
	FEN string

	WTime, BTime time.Duration
	WInc, BInc   time.Duration
	MoveTime     time.Duration
	Depth        int
}

// Result is the Analysis API's output.
type Result struct {
	BestMoveUCI   string
	PonderMoveUCI string
	EvaluationCP  int
	DepthReached  int
	Nodes         uint64
	PV            []string
	TimeMS        int64
	FENAfterMove  string

	// GameResult names pos's terminal status (e.g. "DrawByInsufficientMaterial"),
	// or "InProgress" for an ordinary position (spec §8 scenario S5).
	GameResult string
}

// Run parses req.FEN, searches under the given time control, and returns
// the result. The only error conditions are ErrMalformedFEN and
// engine.ErrNoLegalMoves (spec §7); the caller disambiguates mate from
// stalemate via Result.FENAfterMove / board state, not via the error.
func Run(eng *engine.Engine, req Request) (Result, error) {
	pos, err := board.ParseFEN(req.FEN)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformedFEN, err)
	}

	tc := engine.TimeControl{
		WTime: req.WTime, BTime: req.BTime,
		WInc: req.WInc, BInc: req.BInc,
		MoveTime: req.MoveTime,
		Depth:    req.Depth,
	}

	think, err := eng.Think(pos, tc, nil, nil)
	if err != nil {
		return Result{}, err
	}

	pv := make([]string, len(think.PV))
	for i, m := range think.PV {
		pv[i] = m.String()
	}

	after := pos.Clone()
	after.MakeMove(think.Best)

	result := Result{
		BestMoveUCI:  think.Best.String(),
		EvaluationCP: think.ScoreCP,
		DepthReached: think.DepthReached,
		Nodes:        think.Nodes,
		PV:           pv,
		TimeMS:       think.Elapsed.Milliseconds(),
		FENAfterMove: after.FEN(),
		GameResult:   think.Result.String(),
	}
	if think.Ponder != board.NoMove {
		result.PonderMoveUCI = think.Ponder.String()
	}
	return result, nil
}
