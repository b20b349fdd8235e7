package engine

import (
	"strings"
	"testing"

	"github.com/tmarchant/mateline/internal/board"
)

// mirrorFEN flips the board top-to-bottom and swaps piece colors, producing
// the side-mirrored twin of a position (spec §8 item 6).
func mirrorFEN(fen string) string {
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
		mirroredRank := byte('1' + ('8' - fields[3][1]))
		ep = string(fields[3][0]) + string(mirroredRank)
	}

	return strings.Join([]string{strings.Join(reversed, "/"), side, castle, ep, strings.Join(fields[4:], " ")}, " ")
}

// TestEvaluatorAntisymmetry exercises spec §8 item 6: eval(P) == -eval(P').
func TestEvaluatorAntisymmetry(t *testing.T) {
	positions := []string{
		board.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}

	for _, fen := range positions {
		pos, err := board.ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		mirrored, err := board.ParseFEN(mirrorFEN(fen))
		if err != nil {
			t.Fatalf("ParseFEN(mirror of %q): %v", fen, err)
		}

		got, want := Evaluate(pos), -Evaluate(mirrored)
		if got != want {
			t.Errorf("fen %q: Evaluate = %d, want %d (= -Evaluate(mirror))", fen, got, want)
		}
	}
}
