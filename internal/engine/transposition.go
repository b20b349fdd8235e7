package engine

import "github.com/tmarchant/mateline/internal/board"

// BoundKind classifies a stored transposition score relative to the
// alpha-beta window it was produced in (spec §4.6).
type BoundKind uint8

const (
	BoundExact BoundKind = iota
	BoundLower
	BoundUpper
)

// ttEntry is one slot of the transposition table.
type ttEntry struct {
	verifier uint64
	best     board.Move
	depth    int
	score    int
	bound    BoundKind
	used     bool
}

// TranspositionTable is a fixed-size, open-addressed, always-replace table
// indexed by hashKey mod N (spec §4.6). Not safe for concurrent use — the
// engine is single-threaded (spec §5 Non-goals).
type TranspositionTable struct {
	slots []ttEntry
}

// NewTranspositionTable allocates a table sized for roughly sizeMB
// megabytes of entries.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	if sizeMB <= 0 {
		sizeMB = 1
	}
	const bytesPerEntry = 32
	count := (sizeMB * 1024 * 1024) / bytesPerEntry
	if count < 1024 {
		count = 1024
	}
	return &TranspositionTable{slots: make([]ttEntry, count)}
}

func (tt *TranspositionTable) index(key uint64) uint64 {
	return key % uint64(len(tt.slots))
}

// Probe reports whether key is present and, if so, returns its entry.
func (tt *TranspositionTable) Probe(key uint64) (ttEntry, bool) {
	e := tt.slots[tt.index(key)]
	if !e.used || e.verifier != key {
		return ttEntry{}, false
	}
	return e, true
}

// Store writes an entry unconditionally (always-replace policy).
func (tt *TranspositionTable) Store(key uint64, best board.Move, depth, score int, bound BoundKind) {
	tt.slots[tt.index(key)] = ttEntry{
		verifier: key,
		best:     best,
		depth:    depth,
		score:    score,
		bound:    bound,
		used:     true,
	}
}

// Clear empties every slot (used by ucinewgame).
func (tt *TranspositionTable) Clear() {
	for i := range tt.slots {
		tt.slots[i] = ttEntry{}
	}
}
