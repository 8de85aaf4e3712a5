package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strconv"

	"bookcatalog/internal/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	count := flag.Int("count", 100, "number of books to insert")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.Database.ConnString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	log.Printf("Generating %d books...", *count)
	rows := seedRows(rand.New(rand.NewSource(42)), *count)

	// Use COPY for bulk insert (much faster than individual inserts)
	n, err := pool.CopyFrom(ctx,
		pgx.Identifier{"books"},
		[]string{"isbn", "title", "author", "publication_year", "description"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		log.Fatalf("Failed to insert books: %v", err)
	}
	log.Printf("Successfully inserted %d books!", n)

	var total int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM books").Scan(&total); err != nil {
		log.Fatalf("Failed to count books: %v", err)
	}
	log.Printf("Total books in database: %d", total)
}

var (
	authors = []string{"Gabriel García Márquez", "Isabel Allende", "Jorge Luis Borges", "Julio Cortázar", "Mario Vargas Llosa", "Octavio Paz", "Laura Esquivel", "Carlos Fuentes"}
	words   = []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Nature", "History", "Future", "Wisdom", "Light",
		"Darkness", "World", "Time", "Space", "Mind", "Soul",
	}
)

// seedRows builds count rows in books column order.
func seedRows(rng *rand.Rand, count int) [][]any {
	rows := make([][]any, 0, count)
	for i := 0; i < count; i++ {
		word := words[rng.Intn(len(words))]
		rows = append(rows, []any{
			fmt.Sprintf("978-%010d", i+1),
			fmt.Sprintf("Book Title %d - %s", i+1, word),
			authors[rng.Intn(len(authors))],
			strconv.Itoa(1950 + rng.Intn(75)),
			fmt.Sprintf("This is a book about %s.", word),
		})
	}
	return rows
}
