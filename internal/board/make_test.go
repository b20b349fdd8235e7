package board

import "testing"

// snapshot captures every field make/unmake must restore bit-identically
// (spec §8 item 1).
type snapshot struct {
	mailbox  [64]Piece
	byPiece  [2][6]BitBoard
	bySide   [2]BitBoard
	occupied BitBoard
	hashKey  uint64
	hashLock uint64
	side     Side
	castle   CastleRights
	ep       Square
	fifty    int
}

func snapshotOf(p *Position) snapshot {
	return snapshot{
		mailbox:  p.mailbox,
		byPiece:  p.byPiece,
		bySide:   p.bySide,
		occupied: p.occupied,
		hashKey:  p.hashKey,
		hashLock: p.hashLock,
		side:     p.SideToMove,
		castle:   p.CastleMask,
		ep:       p.EnPassant,
		fifty:    p.FiftyMoveCounter,
	}
}

func TestMakeUnmakeRoundTrip(t *testing.T) {
	positions := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}

	for _, fen := range positions {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}

		before := snapshotOf(pos)
		var ml MoveList
		pos.GenerateAll(&ml, NoMove, nil)

		for i := 0; i < ml.Len(); i++ {
			m := ml.Get(i)
			if !pos.MakeMove(m) {
				continue
			}
			pos.UnmakeMove()

			after := snapshotOf(pos)
			if after != before {
				t.Fatalf("fen %q: move %s: round-trip mismatch\nbefore=%+v\nafter=%+v", fen, m, before, after)
			}
		}
	}
}
