// Package uci implements the line-oriented UCI protocol adapter over
// stdin/stdout (spec §6). Unknown commands are silently ignored per the
// UCI spec.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tmarchant/mateline/internal/board"
	"github.com/tmarchant/mateline/internal/engine"
)

// UCI drives one engine instance over a text stream.
type UCI struct {
	eng *engine.Engine
	pos *board.Position

	out io.Writer
	err io.Writer

	mu       sync.Mutex
	stopCh   chan struct{}
	doneCh   chan struct{}
	thinking bool
}

// New builds a UCI adapter writing engine output to stdout (and UCI
// "info string" diagnostics to stderr).
func New(eng *engine.Engine, stdout, stderr io.Writer) *UCI {
	return &UCI{
		eng: eng,
		pos: board.NewPosition(),
		out: stdout,
		err: stderr,
	}
}

// Run reads commands from r until EOF or "quit".
func (u *UCI) Run(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			fmt.Fprintln(u.out, "readyok")
		case "ucinewgame":
			u.eng.NewGame()
			u.pos = board.NewPosition()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.handleStop()
		case "quit":
			u.handleStop()
			return
		case "d":
			fmt.Fprintln(u.out, u.pos.String())
		}
	}
}

func (u *UCI) handleUCI() {
	fmt.Fprintln(u.out, "id name Mateline")
	fmt.Fprintln(u.out, "id author the Mateline contributors")
	fmt.Fprintln(u.out, "option name Hash type spin default 64 min 1 max 4096")
	fmt.Fprintln(u.out, "option name OwnBook type check default true")
	fmt.Fprintln(u.out, "uciok")
}

// handlePosition implements `position [startpos|fen <FEN>] [moves <uci>*]`.
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	var moveStart int
	switch args[0] {
	case "startpos":
		u.pos = board.NewPosition()
		moveStart = 1
	case "fen":
		end := len(args)
		for i := 1; i < len(args); i++ {
			if args[i] == "moves" {
				end = i
				break
			}
		}
		pos, err := board.ParseFEN(strings.Join(args[1:end], " "))
		if err != nil {
			fmt.Fprintf(u.err, "info string invalid fen: %v\n", err)
			return
		}
		u.pos = pos
		moveStart = end
	default:
		return
	}

	for i := moveStart; i < len(args); i++ {
		if args[i] == "moves" {
			continue
		}
		m, err := board.ParseMove(args[i], u.pos)
		if err != nil || !u.pos.MakeMove(m) {
			fmt.Fprintf(u.err, "info string invalid move: %s\n", args[i])
			return
		}
	}
}

type goOptions struct {
	depth    int
	moveTime time.Duration
	infinite bool
	wtime, btime time.Duration
	winc, binc   time.Duration
}

func parseGoOptions(args []string) goOptions {
	var o goOptions
	for i := 0; i < len(args); i++ {
		next := func() string {
			if i+1 < len(args) {
				i++
				return args[i]
			}
			return ""
		}
		switch args[i] {
		case "depth":
			o.depth, _ = strconv.Atoi(next())
		case "movetime":
			ms, _ := strconv.Atoi(next())
			o.moveTime = time.Duration(ms) * time.Millisecond
		case "infinite":
			o.infinite = true
		case "wtime":
			ms, _ := strconv.Atoi(next())
			o.wtime = time.Duration(ms) * time.Millisecond
		case "btime":
			ms, _ := strconv.Atoi(next())
			o.btime = time.Duration(ms) * time.Millisecond
		case "winc":
			ms, _ := strconv.Atoi(next())
			o.winc = time.Duration(ms) * time.Millisecond
		case "binc":
			ms, _ := strconv.Atoi(next())
			o.binc = time.Duration(ms) * time.Millisecond
		}
	}
	return o
}

// handleGo starts a search in the background; results stream as `info`
// lines and a final `bestmove` once the search returns.
func (u *UCI) handleGo(args []string) {
	o := parseGoOptions(args)
	tc := engine.TimeControl{
		WTime: o.wtime, BTime: o.btime,
		WInc: o.winc, BInc: o.binc,
		MoveTime: o.moveTime,
		Depth:    o.depth,
		Infinite: o.infinite,
	}

	u.mu.Lock()
	if u.thinking {
		u.mu.Unlock()
		return
	}
	u.thinking = true
	u.stopCh = make(chan struct{})
	u.doneCh = make(chan struct{})
	stopCh, doneCh := u.stopCh, u.doneCh
	pos := u.pos
	u.mu.Unlock()

	go func() {
		defer close(doneCh)
		result, err := u.eng.Think(pos, tc, u.sendInfo, stopCh)

		u.mu.Lock()
		u.thinking = false
		u.mu.Unlock()

		if err != nil || result.Best == board.NoMove {
			fmt.Fprintln(u.out, "bestmove 0000")
			return
		}
		if result.Ponder != board.NoMove {
			fmt.Fprintf(u.out, "bestmove %s ponder %s\n", result.Best.String(), result.Ponder.String())
			return
		}
		fmt.Fprintf(u.out, "bestmove %s\n", result.Best.String())
	}()
}

func (u *UCI) sendInfo(r engine.ThinkResult) {
	var score string
	if r.ScoreCP >= engine.MateScore-engine.MaxPly {
		score = fmt.Sprintf("mate %d", (engine.MateScore-r.ScoreCP+1)/2)
	} else if r.ScoreCP <= -(engine.MateScore - engine.MaxPly) {
		score = fmt.Sprintf("mate %d", -(engine.MateScore+r.ScoreCP+1)/2)
	} else {
		score = fmt.Sprintf("cp %d", r.ScoreCP)
	}

	pvStrings := make([]string, len(r.PV))
	for i, m := range r.PV {
		pvStrings[i] = m.String()
	}

	fmt.Fprintf(u.out, "info depth %d score %s nodes %d time %d pv %s\n",
		r.DepthReached, score, r.Nodes, r.Elapsed.Milliseconds(), strings.Join(pvStrings, " "))
}

func (u *UCI) handleStop() {
	u.mu.Lock()
	thinking, stopCh, doneCh := u.thinking, u.stopCh, u.doneCh
	u.mu.Unlock()

	if !thinking || stopCh == nil {
		return
	}
	close(stopCh)
	<-doneCh
}
