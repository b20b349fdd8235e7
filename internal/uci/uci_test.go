package uci

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/tmarchant/mateline/internal/engine"
)

// TestUCISequenceProducesLegalBestmove exercises spec §8 scenario S6:
// `position startpos moves e2e4 e7e5` followed by `go depth 2` produces a
// legal bestmove and `info` lines at depths 1 and 2.
func TestUCISequenceProducesLegalBestmove(t *testing.T) {
	var out, errBuf bytes.Buffer
	u := New(engine.NewEngine(1), &out, &errBuf)

	u.Run(strings.NewReader("position startpos moves e2e4 e7e5\ngo depth 2\n"))

	// handleGo runs the search on a background goroutine; wait for it to
	// finish writing its `info`/`bestmove` lines before inspecting output.
	if u.doneCh != nil {
		<-u.doneCh
	}

	output := out.String()
	if errBuf.Len() != 0 {
		t.Fatalf("unexpected stderr output: %q", errBuf.String())
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	var infoDepths []int
	var bestmove string
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "info":
			for i, f := range fields {
				if f == "depth" && i+1 < len(fields) {
					d, err := strconv.Atoi(fields[i+1])
					if err != nil {
						t.Fatalf("info line depth not an integer: %q", line)
					}
					infoDepths = append(infoDepths, d)
				}
			}
		case "bestmove":
			if len(fields) < 2 {
				t.Fatalf("malformed bestmove line: %q", line)
			}
			bestmove = fields[1]
		}
	}

	if bestmove == "" || bestmove == "0000" {
		t.Fatalf("no usable bestmove produced; output=%q", output)
	}

	wantDepths := map[int]bool{1: false, 2: false}
	for _, d := range infoDepths {
		if _, ok := wantDepths[d]; ok {
			wantDepths[d] = true
		}
	}
	for depth, seen := range wantDepths {
		if !seen {
			t.Errorf("missing info line at depth %d; got depths %v", depth, infoDepths)
		}
	}

	pos := u.pos
	legal := pos.LegalMoveStrings()
	found := false
	for _, m := range legal {
		if m == bestmove {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("bestmove %s is not a legal move in %v", bestmove, legal)
	}
}

// TestUCIHandshake exercises the `uci`/`isready` handshake.
func TestUCIHandshake(t *testing.T) {
	var out, errBuf bytes.Buffer
	u := New(engine.NewEngine(1), &out, &errBuf)

	u.Run(strings.NewReader("uci\nisready\n"))

	output := out.String()
	if !strings.Contains(output, "id name Mateline") {
		t.Errorf("missing id name line; got %q", output)
	}
	if !strings.Contains(output, "uciok") {
		t.Errorf("missing uciok; got %q", output)
	}
	if !strings.Contains(output, "readyok") {
		t.Errorf("missing readyok; got %q", output)
	}
}

// TestUCIInvalidMoveReportsInfoString exercises spec §7: a malformed
// position command reports an `info string`, not a crash.
func TestUCIInvalidMoveReportsInfoString(t *testing.T) {
	var out, errBuf bytes.Buffer
	u := New(engine.NewEngine(1), &out, &errBuf)

	u.Run(strings.NewReader("position startpos moves e2e9\n"))

	if !strings.Contains(errBuf.String(), "info string") {
		t.Errorf("expected an info string diagnostic, got stderr=%q", errBuf.String())
	}
}
