package engine

import (
	"time"

	"github.com/tmarchant/mateline/internal/board"
)

// TimeControl mirrors the UCI `go` clock fields (spec §6).
type TimeControl struct {
	WTime, BTime   time.Duration
	WInc, BInc     time.Duration
	MoveTime       time.Duration // overrides the formula exactly when set
	Depth          int           // 0 means unlimited (bounded by MaxPly)
	Infinite       bool
}

// budget computes the per-move soft/hard deadlines (spec §6):
// budget = min(remaining/4, remaining/30 + increment); soft = 75%, hard = 100%.
// When movetime overrides the formula, it binds the hard limit exactly (the
// search must not run longer), and soft keeps the same 75% proportion so
// callers of budget never see soft == hard.
func (tc TimeControl) budget(side board.Side) (soft, hard time.Duration) {
	if tc.MoveTime > 0 {
		return tc.MoveTime * 3 / 4, tc.MoveTime
	}
	if tc.Infinite {
		return 0, 0
	}

	remaining, inc := tc.WTime, tc.WInc
	if side == board.Black {
		remaining, inc = tc.BTime, tc.BInc
	}
	if remaining <= 0 {
		return 0, 0
	}

	byQuarter := remaining / 4
	byIncrement := remaining/30 + inc
	total := byQuarter
	if byIncrement < total {
		total = byIncrement
	}
	if total < 0 {
		total = 0
	}
	soft = total * 3 / 4
	hard = total
	return soft, hard
}
