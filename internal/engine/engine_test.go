package engine

import (
	"testing"
	"time"

	"github.com/tmarchant/mateline/internal/board"
)

// TestThinkReturnsLegalMove exercises spec §8 scenario S1: a shallow search
// from the starting position returns some legal move with nodes > 0 and a
// resulting FEN different from the input.
func TestThinkReturnsLegalMove(t *testing.T) {
	eng := NewEngine(1)
	pos := board.NewPosition()

	result, err := eng.Think(pos, TimeControl{Depth: 3}, nil, nil)
	if err != nil {
		t.Fatalf("Think: %v", err)
	}
	if result.Best == board.NoMove {
		t.Fatalf("Think returned no move")
	}
	if result.Nodes == 0 {
		t.Fatalf("Think visited zero nodes")
	}

	after := pos.Clone()
	if !after.MakeMove(result.Best) {
		t.Fatalf("Think returned illegal move %s", result.Best)
	}
	if after.FEN() == pos.FEN() {
		t.Fatalf("fenAfterMove equals input FEN")
	}
}

// TestThinkDepthTwoAfterTwoPlies exercises spec §8 scenario S6's shape: a
// short, fixed-depth search from a non-initial position returns a legal
// move with a non-empty PV.
func TestThinkDepthTwoAfterTwoPlies(t *testing.T) {
	pos := board.NewPosition()
	for _, moveStr := range []string{"e2e4", "e7e5"} {
		m, err := board.ParseMove(moveStr, pos)
		if err != nil || !pos.MakeMove(m) {
			t.Fatalf("setup move %q failed: %v", moveStr, err)
		}
	}

	eng := NewEngine(1)
	result, err := eng.Think(pos, TimeControl{Depth: 2}, nil, nil)
	if err != nil {
		t.Fatalf("Think: %v", err)
	}
	if result.Best == board.NoMove {
		t.Fatalf("Think returned no move")
	}
	if result.DepthReached < 1 {
		t.Fatalf("DepthReached = %d, want >= 1", result.DepthReached)
	}
	if len(result.PV) == 0 {
		t.Fatalf("PV is empty")
	}

	legal := pos.LegalMoveStrings()
	found := false
	for _, s := range legal {
		if s == result.Best.String() {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("bestmove %s is not in the legal move list %v", result.Best, legal)
	}
}

// TestThinkCheckmateReturnsNoLegalMoves exercises spec §8 scenario S4: a
// position where the side to move is already checkmated returns
// ErrNoLegalMoves.
func TestThinkCheckmateReturnsNoLegalMoves(t *testing.T) {
	pos, err := board.ParseFEN("r1bqkb1r/pppp1Qpp/2n2n2/4p3/2B1P3/8/PPPP1PPP/RNB1K1NR b KQkq - 0 4")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !pos.IsCheckmate() {
		t.Fatalf("test position is not actually checkmate")
	}

	eng := NewEngine(1)
	_, err = eng.Think(pos, TimeControl{Depth: 1}, nil, nil)
	if err != ErrNoLegalMoves {
		t.Fatalf("Think = %v, want ErrNoLegalMoves", err)
	}
}

// TestThinkStopCancelsSearch exercises cooperative cancellation (spec §9):
// with stop already closed when Think starts, the search still returns the
// completed depth-1 result, and the position passed in is left untouched.
func TestThinkStopCancelsSearch(t *testing.T) {
	eng := NewEngine(1)
	pos := board.NewPosition()
	before := pos.FEN()

	stop := make(chan struct{})
	close(stop)

	result, err := eng.Think(pos, TimeControl{Depth: 64}, nil, stop)
	if err != nil {
		t.Fatalf("Think: %v", err)
	}
	if result.Best == board.NoMove {
		t.Fatalf("Think returned no move despite a depth-1 result being available before cancellation")
	}
	if pos.FEN() != before {
		t.Fatalf("Think mutated the caller's position: got %q, want %q", pos.FEN(), before)
	}
}

func TestTimeControlBudget(t *testing.T) {
	tc := TimeControl{WTime: 60 * time.Second, WInc: 1 * time.Second}
	soft, hard := tc.budget(board.White)
	if hard <= 0 || soft <= 0 || soft >= hard {
		t.Fatalf("budget(White) = (%v, %v), want 0 < soft < hard", soft, hard)
	}

	tc = TimeControl{MoveTime: 500 * time.Millisecond}
	soft, hard = tc.budget(board.White)
	if hard != 500*time.Millisecond {
		t.Fatalf("movetime override: hard = %v, want 500ms", hard)
	}
	if soft != 375*time.Millisecond {
		t.Fatalf("movetime override: soft = %v, want 375ms (75%% of hard)", soft)
	}
}

// TestThinkInsufficientMaterial exercises spec §8 scenario S5: a K+B vs K
// position is classified DrawByInsufficientMaterial, and Think still
// returns a legal move rather than erroring.
func TestThinkInsufficientMaterial(t *testing.T) {
	pos, err := board.ParseFEN("8/8/8/4k3/8/3KB3/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	eng := NewEngine(1)
	result, err := eng.Think(pos, TimeControl{Depth: 3}, nil, nil)
	if err != nil {
		t.Fatalf("Think: %v", err)
	}
	if result.Result != ResultInsufficientMaterial {
		t.Fatalf("Result = %v, want ResultInsufficientMaterial", result.Result)
	}
	if result.Result.String() != "DrawByInsufficientMaterial" {
		t.Errorf("Result.String() = %q, want %q", result.Result.String(), "DrawByInsufficientMaterial")
	}
	if result.Best == board.NoMove {
		t.Fatalf("Think returned no move for a drawn-but-not-mated position")
	}
}
