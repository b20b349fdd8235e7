package board

import (
	"sort"
	"strings"
	"testing"
)

// TestLegalityAgreesWithAttackCheck exercises spec §8 item 3 in one
// direction: every move that survives MakeMove's legality filter leaves the
// mover's own king unattacked. Rejected moves and the castling
// traversed-square rule are not checked here.
func TestLegalityAgreesWithAttackCheck(t *testing.T) {
	positions := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		// White's rook on e2 is pinned to its king by the black rook on e8.
		"k3r3/8/8/8/8/8/4R3/4K3 w - - 0 1",
	}

	for _, fen := range positions {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}

		var pseudo MoveList
		pos.GenerateAll(&pseudo, NoMove, nil)

		for i := 0; i < pseudo.Len(); i++ {
			m := pseudo.Get(i)
			ok := pos.MakeMove(m)
			if !ok {
				continue
			}
			us := pos.SideToMove.Opponent()
			inCheck := pos.IsSquareAttacked(pos.KingSquare[us], pos.SideToMove)
			pos.UnmakeMove()
			if inCheck {
				t.Errorf("fen %q: move %s accepted as legal but leaves %s's king in check", fen, m, us)
			}
		}
	}
}

func mirrorFEN(t *testing.T, fen string) string {
	t.Helper()
	fields := strings.Fields(fen)
	ranks := strings.Split(fields[0], "/")

	swapCase := func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z':
			return r + 32
		case r >= 'a' && r <= 'z':
			return r - 32
		default:
			return r
		}
	}
	reversed := make([]string, 8)
	for i, rank := range ranks {
		var sb strings.Builder
		for _, c := range rank {
			sb.WriteRune(swapCase(c))
		}
		reversed[7-i] = sb.String()
	}
	placement := strings.Join(reversed, "/")

	side := "b"
	if fields[1] == "b" {
		side = "w"
	}

	castle := "-"
	if fields[2] != "-" {
		var sb strings.Builder
		for _, c := range fields[2] {
			sb.WriteRune(swapCase(c))
		}
		castle = sb.String()
	}

	ep := "-"
	if fields[3] != "-" {
		file := fields[3][0]
		rank := fields[3][1]
		mirroredRank := byte('1' + ('8' - rank))
		ep = string(file) + string(mirroredRank)
	}

	rest := strings.Join(fields[4:], " ")
	return strings.Join([]string{placement, side, castle, ep, rest}, " ")
}

// TestGeneratorMirrorSymmetry exercises spec §8 item 4: the set of
// generated moves at a Zobrist-mirrored position is the mirror of the
// moves generated at the original.
func TestGeneratorMirrorSymmetry(t *testing.T) {
	positions := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}

	for _, fen := range positions {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		mirrored, err := ParseFEN(mirrorFEN(t, fen))
		if err != nil {
			t.Fatalf("ParseFEN(mirror of %q): %v", fen, err)
		}

		got := mirrorMoveStrings(pos.LegalMoveStrings())
		want := sortedLegalMoveStrings(mirrored)

		if len(got) != len(want) {
			t.Fatalf("fen %q: mirrored move count = %d, want %d\ngot=%v\nwant=%v", fen, len(got), len(want), got, want)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("fen %q: mirrored move set mismatch at %d: got %s, want %s", fen, i, got[i], want[i])
			}
		}
	}
}

func sortedLegalMoveStrings(pos *Position) []string {
	moves := pos.LegalMoveStrings()
	sort.Strings(moves)
	return moves
}

// mirrorMoveStrings mirrors every UCI move string (files unchanged, ranks
// flipped 1<->8) and sorts the result for order-independent comparison.
func mirrorMoveStrings(moves []string) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = mirrorSquareStr(m[0:2]) + mirrorSquareStr(m[2:4]) + m[4:]
	}
	sort.Strings(out)
	return out
}

func mirrorSquareStr(s string) string {
	rank := byte('1' + ('8' - s[1]))
	return string(s[0]) + string(rank)
}

// TestRepetitionDetection exercises spec §8 item 7: a position reached a
// third time with identical (board, side, castle, EP) is detectable.
func TestRepetitionDetection(t *testing.T) {
	pos := NewPosition()
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}

	if pos.IsRepetition(3) {
		t.Fatalf("starting position incorrectly flagged as a repetition")
	}

	// One full shuffle cycle returns to the start position's hash (2nd
	// occurrence); a second cycle gives the 3rd occurrence.
	for cycle := 0; cycle < 2; cycle++ {
		for _, moveStr := range shuffle {
			m, err := ParseMove(moveStr, pos)
			if err != nil {
				t.Fatalf("ParseMove(%q): %v", moveStr, err)
			}
			if !pos.MakeMove(m) {
				t.Fatalf("MakeMove(%q) rejected as illegal", moveStr)
			}
		}
	}

	if !pos.IsRepetition(3) {
		t.Errorf("expected threefold repetition after two shuffle cycles")
	}
}
