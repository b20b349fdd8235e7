// Package store provides Badger-backed persistence for ambient,
// non-core engine state: a decoded opening-book cache and an append-only
// analysis-session history log consumed by the CLI front-end's `history`
// command. It never holds search state — the transposition table stays
// in-memory for the lifetime of one Engine (spec §5/§7).
package store

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const (
	bookCacheKeyPrefix = "book:"
	historyKeyPrefix   = "analysis:"
)

// Store wraps a single Badger database shared by BookCache and the
// analysis history log.
type Store struct {
	db *badger.DB
}

// Open opens (creating if necessary) the Badger database at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// BookCache exposes the decoded-Polyglot-record cache half of Store.
func (s *Store) BookCache() *BookCache {
	return &BookCache{db: s.db}
}

// History exposes the analysis-session log half of Store.
func (s *Store) History() *History {
	return &History{db: s.db}
}

// BookRecord is one decoded Polyglot entry: the position key, the raw
// 16-bit move encoding (still encoded — decoding to board.Move happens in
// package book, which owns that convention), and its weight.
type BookRecord struct {
	Key      uint64
	MoveData uint16
	Weight   uint16
}

// BookCache persists the result of parsing a Polyglot book file, keyed by
// filesystem path, so repeated loads of the same book skip the binary scan.
type BookCache struct {
	db *badger.DB
}

// Get returns the cached records for path, if present.
func (c *BookCache) Get(path string) ([]BookRecord, bool) {
	var records []BookRecord
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(bookCacheKeyPrefix + path))
		if err == badger.ErrKeyNotFound {
			return err
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &records)
		})
	})
	if err != nil {
		return nil, false
	}
	return records, true
}

// Put stores records under path, overwriting any prior entry.
func (c *BookCache) Put(path string, records []BookRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(bookCacheKeyPrefix+path), data)
	})
}

// HistoryEntry is one completed Analysis API call (spec §6), recorded for
// the CLI front-end's `history` command.
type HistoryEntry struct {
	FEN          string
	BestMoveUCI  string
	EvaluationCP int
	DepthReached int
	Nodes        uint64
	TimeMS       int64
	At           time.Time
}

// History is an append-only log of analysis results.
type History struct {
	db *badger.DB
}

// Append records entry under a monotonically increasing key so Recent can
// replay entries in insertion order. entry.At is stamped with the current
// time if the caller left it zero.
func (h *History) Append(entry HistoryEntry) error {
	if entry.At.IsZero() {
		entry.At = time.Now()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return h.db.Update(func(txn *badger.Txn) error {
		seq, err := nextSeq(txn)
		if err != nil {
			return err
		}
		return txn.Set(historyKey(seq), data)
	})
}

// Recent returns up to limit of the most recently appended entries, newest
// first. limit<=0 returns every entry.
func (h *History) Recent(limit int) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	err := h.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(historyKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		seekKey := append([]byte(historyKeyPrefix), 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF)
		for it.Seek(seekKey); it.ValidForPrefix([]byte(historyKeyPrefix)); it.Next() {
			if limit > 0 && len(entries) >= limit {
				break
			}
			var entry HistoryEntry
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			})
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		return nil
	})
	return entries, err
}

const seqCounterKey = "analysis-seq"

func nextSeq(txn *badger.Txn) (uint64, error) {
	var seq uint64
	item, err := txn.Get([]byte(seqCounterKey))
	if err == nil {
		err = item.Value(func(val []byte) error {
			seq = decodeUint64(val)
			return nil
		})
		if err != nil {
			return 0, err
		}
	} else if err != badger.ErrKeyNotFound {
		return 0, err
	}
	seq++
	if err := txn.Set([]byte(seqCounterKey), encodeUint64(seq)); err != nil {
		return 0, err
	}
	return seq, nil
}

func historyKey(seq uint64) []byte {
	return append([]byte(historyKeyPrefix), encodeUint64(seq)...)
}

func encodeUint64(v uint64) []byte {
	b := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return b
}

func decodeUint64(b []byte) uint64 {
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v
}
