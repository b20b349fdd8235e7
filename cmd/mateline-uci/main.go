package main

import (
	"flag"
	"log"
	"os"

	"github.com/tmarchant/mateline/internal/book"
	"github.com/tmarchant/mateline/internal/engine"
	"github.com/tmarchant/mateline/internal/store"
	"github.com/tmarchant/mateline/internal/uci"
)

var (
	hashMB   = flag.Int("hash", 64, "transposition table size in MB")
	bookPath = flag.String("book", "", "path to a Polyglot opening book")
)

func main() {
	flag.Parse()

	eng := engine.NewEngine(*hashMB)

	if *bookPath != "" {
		var cache *store.BookCache
		if dbDir, err := store.DatabaseDir(); err == nil {
			if st, err := store.Open(dbDir); err == nil {
				defer st.Close()
				cache = st.BookCache()
			} else {
				log.Printf("mateline-uci: store unavailable, book decode cache disabled: %v", err)
			}
		}

		b, err := book.Load(*bookPath, cache)
		if err != nil {
			log.Printf("mateline-uci: failed to load book %s: %v", *bookPath, err)
		} else {
			eng.Book = b
		}
	}

	protocol := uci.New(eng, os.Stdout, os.Stderr)
	protocol.Run(os.Stdin)
}
