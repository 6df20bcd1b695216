package calibre

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ozmodiar/md-to-calibre/log"
)

// LibraryBook is one row of the calibre library's books table.
type LibraryBook struct {
	ID    int64
	Title string
}

// openLibrary opens the library's metadata.db read-only. The importer
// never touches this database directly; these queries exist so that
// --verify can show what calibredb actually wrote.
func openLibrary(dir string) (*sql.DB, error) {
	path := filepath.Join(dir, "metadata.db")
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open library database: %w", err)
	}
	return db, nil
}

// CountBooks returns the number of records in the library.
func CountBooks(dir string) (int, error) {
	db, err := openLibrary(dir)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return n, nil
}

// RecentBooks returns the most recently created records, newest first.
// Rows that fail to scan are logged and skipped.
func RecentBooks(dir string, limit int, logger log.Logger) ([]LibraryBook, error) {
	db, err := openLibrary(dir)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`SELECT id, title FROM books ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var books []LibraryBook
	for rows.Next() {
		var b LibraryBook
		if err := rows.Scan(&b.ID, &b.Title); err != nil {
			logger.Errorf("failed to scan row: %v", err)
			continue
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return books, nil
}
