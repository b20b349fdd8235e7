// Command mateline-cli is a minimal interactive terminal front-end:
// it accepts a FEN or a move sequence, asks the engine to move, and
// prints the resulting board. It is a thin consumer of internal/analysis.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tmarchant/mateline/internal/analysis"
	"github.com/tmarchant/mateline/internal/board"
	"github.com/tmarchant/mateline/internal/engine"
	"github.com/tmarchant/mateline/internal/store"
)

var (
	hashMB    = flag.Int("hash", 64, "transposition table size in MB")
	moveTime  = flag.Duration("movetime", 2*time.Second, "time to think per move")
	noHistory = flag.Bool("no-history", false, "disable the on-disk analysis history log")
)

func main() {
	flag.Parse()

	eng := engine.NewEngine(*hashMB)
	pos := board.NewPosition()

	var hist *store.History
	if !*noHistory {
		if dbDir, err := store.DatabaseDir(); err == nil {
			if st, err := store.Open(dbDir); err == nil {
				defer st.Close()
				hist = st.History()
			} else {
				log.Printf("mateline-cli: history log unavailable: %v", err)
			}
		}
	}

	fmt.Println(pos.String())
	fmt.Println("commands: fen <FEN> | move <uci> | moves | go [depth N] | history | quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "quit", "exit":
			return

		case "fen":
			parsed, err := board.ParseFEN(strings.Join(args, " "))
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			pos = parsed
			fmt.Println(pos.String())

		case "move":
			if len(args) != 1 {
				fmt.Println("usage: move <uci>")
				continue
			}
			m, err := board.ParseMove(args[0], pos)
			if err != nil || !pos.MakeMove(m) {
				fmt.Println("illegal move:", args[0])
				continue
			}
			fmt.Println(pos.String())

		case "moves":
			fmt.Println(strings.Join(pos.LegalMoveStrings(), " "))

		case "go":
			depth := 0
			if len(args) >= 2 && args[0] == "depth" {
				depth, _ = strconv.Atoi(args[1])
			}
			think(eng, pos, depth, hist)

		case "history":
			printHistory(hist)

		default:
			fmt.Println("unknown command:", cmd)
		}
	}
}

func think(eng *engine.Engine, pos *board.Position, depth int, hist *store.History) {
	req := analysis.Request{
		FEN:      pos.FEN(),
		MoveTime: *moveTime,
		Depth:    depth,
	}
	result, err := analysis.Run(eng, req)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("bestmove %s (cp %d, depth %d, nodes %d, %dms)\n",
		result.BestMoveUCI, result.EvaluationCP, result.DepthReached, result.Nodes, result.TimeMS)

	m, err := board.ParseMove(result.BestMoveUCI, pos)
	if err == nil {
		pos.MakeMove(m)
	}
	fmt.Println(pos.String())

	if hist != nil {
		entry := store.HistoryEntry{
			FEN:          req.FEN,
			BestMoveUCI:  result.BestMoveUCI,
			EvaluationCP: result.EvaluationCP,
			DepthReached: result.DepthReached,
			Nodes:        result.Nodes,
			TimeMS:       result.TimeMS,
		}
		if err := hist.Append(entry); err != nil {
			log.Printf("mateline-cli: failed to append history: %v", err)
		}
	}
}

func printHistory(hist *store.History) {
	if hist == nil {
		fmt.Println("history log disabled")
		return
	}
	entries, err := hist.Recent(20)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, e := range entries {
		fmt.Printf("%s -> %s (cp %d, depth %d, nodes %d)\n", e.FEN, e.BestMoveUCI, e.EvaluationCP, e.DepthReached, e.Nodes)
	}
}
