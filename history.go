package tiffview

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// History records which source images have been opened.
type History struct {
	db  *sql.DB
	now func() time.Time
}

// Entry is a single opened source image.
type Entry struct {
	SHA1       string
	Path       string
	Format     string
	Width      int
	Height     int
	Opened     int
	LastOpened time.Time
}

// NewHistory opens, creating if necessary, the sqlite database in file.
func NewHistory(file string) (*History, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS source (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, format TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS visit (source_id INTEGER NOT NULL, path TEXT NOT NULL, opened INTEGER NOT NULL DEFAULT 0, last_opened INTEGER NOT NULL, UNIQUE(source_id, path), FOREIGN KEY(source_id) REFERENCES source(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &History{
		db:  db,
		now: time.Now,
	}, nil
}

// Close closes the underlying database.
func (h *History) Close() error {
	return h.db.Close()
}

func (h *History) addSource(src *Source) (int64, error) {
	var id int64
	switch err := h.db.QueryRow("SELECT id FROM source WHERE sha1 = ?", src.SHA1).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := h.db.Exec("INSERT INTO source (sha1, format, width, height) VALUES (?, ?, ?, ?)", src.SHA1, src.Format, src.Buffer.Width, src.Buffer.Height)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// Record notes that src has been opened from its path.
func (h *History) Record(src *Source) error {
	id, err := h.addSource(src)
	if err != nil {
		return err
	}

	if _, err := h.db.Exec("INSERT INTO visit (source_id, path, opened, last_opened) VALUES (?, ?, 1, ?) ON CONFLICT(source_id, path) DO UPDATE SET opened = opened + 1, last_opened = excluded.last_opened", id, src.Path, h.now().UnixNano()); err != nil {
		return err
	}

	return nil
}

// Recent returns up to limit entries, most recently opened first.
func (h *History) Recent(limit int) ([]Entry, error) {
	rows, err := h.db.Query("SELECT s.sha1, o.path, s.format, s.width, s.height, o.opened, o.last_opened FROM visit AS o JOIN source AS s ON o.source_id = s.id ORDER BY o.last_opened DESC, o.rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var last int64
		if err := rows.Scan(&e.SHA1, &e.Path, &e.Format, &e.Width, &e.Height, &e.Opened, &last); err != nil {
			return nil, err
		}
		e.LastOpened = time.Unix(0, last)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
