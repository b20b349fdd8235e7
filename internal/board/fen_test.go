package board

import "testing"

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := pos.FEN(); got != fen {
			t.Errorf("FEN() round-trip: got %q, want %q", got, fen)
		}
	}
}

// TestHashIncrementality exercises spec §8 item 2: after a sequence of
// legal moves, the incrementally maintained hashKey/hashLock must equal a
// from-scratch recomputation over the final board state.
func TestHashIncrementality(t *testing.T) {
	pos := NewPosition()
	moves := []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5", "a7a6"}

	for _, moveStr := range moves {
		m, err := ParseMove(moveStr, pos)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", moveStr, err)
		}
		if !pos.MakeMove(m) {
			t.Fatalf("MakeMove(%q) rejected as illegal", moveStr)
		}

		wantKey, wantLock := pos.computeHashFromScratch()
		if pos.hashKey != wantKey {
			t.Errorf("after %q: hashKey = %#x, want %#x", moveStr, pos.hashKey, wantKey)
		}
		if pos.hashLock != wantLock {
			t.Errorf("after %q: hashLock = %#x, want %#x", moveStr, pos.hashLock, wantLock)
		}
	}
}

// TestHashIncrementalityEnPassant exercises the Zobrist-minimal EP policy
// (Open Question 1) across a capture-capable en-passant position.
func TestHashIncrementalityEnPassant(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 3")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m, err := ParseMove("d4e3", pos)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if !pos.MakeMove(m) {
		t.Fatalf("en passant capture rejected as illegal")
	}
	wantKey, wantLock := pos.computeHashFromScratch()
	if pos.hashKey != wantKey || pos.hashLock != wantLock {
		t.Errorf("after en passant capture: hash mismatch: got (%#x,%#x), want (%#x,%#x)",
			pos.hashKey, pos.hashLock, wantKey, wantLock)
	}
}
