// +build ignore

package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// One-off backfill for databases created before the hands column existed.
// Rows written in that era carry NULL hands; the current schema treats every
// record as belonging to a (practicer, hands) slot, so NULLs must become the
// historical default "both" in both the current and history tables.
func main() {
	dryRun := flag.Bool("dry-run", false, "Preview backfill without executing")
	flag.Parse()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting home dir: %v\n", err)
		os.Exit(1)
	}
	dbPath := filepath.Join(homeDir, ".barline", "barline.db")

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	for _, table := range []string{"song_measure", "song_measure_history"} {
		var count int
		err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE hands IS NULL OR hands = ''", table)).Scan(&count)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error counting %s rows: %v\n", table, err)
			os.Exit(1)
		}

		if count == 0 {
			fmt.Printf("%s: nothing to backfill\n", table)
			continue
		}

		if *dryRun {
			fmt.Printf("%s: would set hands='both' on %d rows\n", table, count)
			continue
		}

		res, err := db.Exec(fmt.Sprintf("UPDATE %s SET hands = 'both' WHERE hands IS NULL OR hands = ''", table))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error backfilling %s: %v\n", table, err)
			os.Exit(1)
		}
		affected, _ := res.RowsAffected()
		fmt.Printf("%s: backfilled %d rows\n", table, affected)
	}
}
