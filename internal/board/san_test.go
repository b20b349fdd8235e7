package board

import "testing"

// TestSANBasic covers quiet moves, captures, castling, promotion, and the
// check/mate suffixes.
func TestSANBasic(t *testing.T) {
	cases := []struct {
		fen  string
		move string
		want string
	}{
		{StartFEN, "e2e4", "e4"},
		{StartFEN, "g1f3", "Nf3"},
		{"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2", "f1c4", "Bc4"},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", "e1g1", "O-O"},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", "e1c1", "O-O-O"},
		// the new queen on a8 checks the king on e8 along the empty back rank.
		{"4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7a8q", "a8=Q+"},
		{"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2", "d1h5", "Qh5"},
		// a pawn capture includes the origin file.
		{"rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2", "e4d5", "exd5"},
	}

	for _, tc := range cases {
		pos, err := ParseFEN(tc.fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", tc.fen, err)
		}
		m, err := ParseMove(tc.move, pos)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", tc.move, err)
		}
		if got := m.SAN(pos); got != tc.want {
			t.Errorf("fen %q move %q: SAN = %q, want %q", tc.fen, tc.move, got, tc.want)
		}
	}
}

// TestSANCheckAndMateSuffixes exercises the "+"/"#" suffix logic.
func TestSANCheckAndMateSuffixes(t *testing.T) {
	// King on h8 has an escape square at h7: check, not mate.
	pos, err := ParseFEN("7k/5pp1/8/8/8/8/8/R5K1 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m, err := ParseMove("a1a8", pos)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if got, want := m.SAN(pos), "Ra8+"; got != want {
		t.Errorf("SAN = %q, want %q", got, want)
	}

	// King on g8 is boxed in by its own pawns on f7/g7/h7: back-rank mate.
	mate, err := ParseFEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	mm, err := ParseMove("a1a8", mate)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if got, want := mm.SAN(mate), "Ra8#"; got != want {
		t.Errorf("SAN = %q, want %q", got, want)
	}
}

// TestSANDisambiguation exercises file/rank disambiguation when two
// identical pieces can reach the same destination square.
func TestSANDisambiguation(t *testing.T) {
	pos, err := ParseFEN("8/8/8/3k4/8/8/3K4/R6R w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m, err := ParseMove("a1c1", pos)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if got, want := m.SAN(pos), "Rac1"; got != want {
		t.Errorf("SAN = %q, want %q", got, want)
	}
}
