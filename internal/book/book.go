// Package book reads Polyglot opening books and serves weighted-random
// root moves (spec §6: "the opening book ... is read-only and consulted
// only at the root before search; it is optional").
package book

import (
	"encoding/binary"
	"io"
	"math/rand"
	"os"
	"sort"

	"github.com/tmarchant/mateline/internal/board"
	"github.com/tmarchant/mateline/internal/store"
)

// Entry is one weighted move for a given position key.
type Entry struct {
	Move   board.Move
	Weight uint16
}

// Book is an in-memory index of Polyglot position keys to weighted moves.
type Book struct {
	entries map[uint64][]Entry
}

// New returns an empty book.
func New() *Book {
	return &Book{entries: make(map[uint64][]Entry)}
}

// Load reads a Polyglot book file, decoding through an optional decode
// cache (store.BookCache) so repeated loads of the same book skip the
// binary parse.
func Load(path string, cache *store.BookCache) (*Book, error) {
	if cache != nil {
		if entries, ok := cache.Get(path); ok {
			return fromCachedEntries(entries), nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, raw, err := loadReader(f)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		_ = cache.Put(path, raw)
	}
	return b, nil
}

// fromCachedEntries rebuilds a Book from the flat records a BookCache returns.
func fromCachedEntries(records []store.BookRecord) *Book {
	b := New()
	for _, r := range records {
		m := decodePolyglotMove(r.MoveData)
		if m != board.NoMove {
			b.entries[r.Key] = append(b.entries[r.Key], Entry{Move: m, Weight: r.Weight})
		}
	}
	return b
}

// loadReader parses 16-byte big-endian Polyglot records (spec §6) and also
// returns the flat record list for the caller to persist via BookCache.
func loadReader(r io.Reader) (*Book, []store.BookRecord, error) {
	b := New()
	var raw []store.BookRecord
	var buf [16]byte

	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			if err == io.EOF {
				break
			}
			return nil, nil, err
		}
		key := binary.BigEndian.Uint64(buf[0:8])
		moveData := binary.BigEndian.Uint16(buf[8:10])
		weight := binary.BigEndian.Uint16(buf[10:12])

		raw = append(raw, store.BookRecord{Key: key, MoveData: moveData, Weight: weight})

		if m := decodePolyglotMove(moveData); m != board.NoMove {
			b.entries[key] = append(b.entries[key], Entry{Move: m, Weight: weight})
		}
	}
	return b, raw, nil
}

// decodePolyglotMove converts the Polyglot 16-bit move encoding (bits 0-5
// to-square, 6-11 from-square, 12-14 promotion) into a board.Move, folding
// its king-captures-rook castling notation into this engine's king-moves-
// two-squares convention.
func decodePolyglotMove(data uint16) board.Move {
	toFile := int(data & 7)
	toRank := int((data >> 3) & 7)
	fromFile := int((data >> 6) & 7)
	fromRank := int((data >> 9) & 7)
	promo := (data >> 12) & 7

	from := board.NewSquare(fromFile, fromRank)
	to := board.NewSquare(toFile, toRank)

	switch {
	case from == board.E1 && to == board.H1:
		to = board.G1
	case from == board.E1 && to == board.A1:
		to = board.C1
	case from == board.E8 && to == board.H8:
		to = board.G8
	case from == board.E8 && to == board.A8:
		to = board.C8
	}

	if promo > 0 {
		promoKinds := [5]board.PieceKind{board.Pawn, board.Knight, board.Bishop, board.Rook, board.Queen}
		return board.NewPromotion(from, to, promoKinds[promo])
	}
	return board.NewMove(from, to)
}

// ProbeKey performs weighted-random selection among the entries stored
// under key, without verifying legality against any position. Probe calls
// it with the position's Polyglot hash and then checks legality.
func (b *Book) ProbeKey(key uint64) (board.Move, bool) {
	if b == nil {
		return board.NoMove, false
	}
	entries, ok := b.entries[key]
	if !ok || len(entries) == 0 {
		return board.NoMove, false
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Weight > sorted[j].Weight })

	var total uint32
	for _, e := range sorted {
		total += uint32(e.Weight)
	}
	if total == 0 {
		return sorted[0].Move, true
	}

	r := rand.Uint32() % total
	var cumulative uint32
	for _, e := range sorted {
		cumulative += uint32(e.Weight)
		if r < cumulative {
			return e.Move, true
		}
	}
	return sorted[0].Move, true
}

// Probe looks up pos in the book and returns a legal move with the correct
// special-move flags (castling/en passant), verified against pos's actual
// legal move list.
func (b *Book) Probe(pos *board.Position) (board.Move, bool) {
	if b == nil {
		return board.NoMove, false
	}
	m, ok := b.ProbeKey(pos.PolyglotHash())
	if !ok {
		return board.NoMove, false
	}
	return verifyAndConvert(pos, m)
}

func verifyAndConvert(pos *board.Position, move board.Move) (board.Move, bool) {
	legal := pos.LegalMoves()
	from, to := move.From(), move.To()
	for i := 0; i < legal.Len(); i++ {
		lm := legal.Get(i)
		if lm.From() != from || lm.To() != to {
			continue
		}
		if move.IsPromotion() != lm.IsPromotion() {
			continue
		}
		if move.IsPromotion() && move.Promotion() != lm.Promotion() {
			continue
		}
		return lm, true
	}
	return board.NoMove, false
}

// Size returns the number of distinct positions indexed in the book.
func (b *Book) Size() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}
