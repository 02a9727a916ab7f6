package nuru

import (
	"database/sql"
	"fmt"

	"github.com/bodgit/nuru/format"
	"github.com/bodgit/nuru/palette"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3"
)

// Content ids are name-based UUIDs in this namespace
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/bodgit/nuru"))

var errBadName = fmt.Errorf("palette name must be between 1 and %d printable ASCII characters", format.TagSize)

// Library is a collection of named palettes stored in a sqlite database.
// Identical palettes stored under different names share the same data.
type Library struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// Entry describes a palette held in the library.
type Entry struct {
	Name      string
	Kind      Kind
	EntrySize uint8
	UUID      uuid.UUID
	Builtin   bool
}

func contentID(b []byte) uuid.UUID {
	return uuid.NewSHA1(namespace, b)
}

// NewLibrary opens, creating if necessary, the library stored in file.
func NewLibrary(file string) (*Library, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS blob (id INTEGER PRIMARY KEY NOT NULL, uuid TEXT NOT NULL UNIQUE, data BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS palette (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, kind INTEGER NOT NULL, entry_size INTEGER NOT NULL, blob_id INTEGER NOT NULL, FOREIGN KEY(blob_id) REFERENCES blob(id))"); err != nil {
		db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithLowerEncoderMem(true),
	)
	if err != nil {
		db.Close()
		return nil, err
	}

	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
	)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, err
	}

	return &Library{
		db:  db,
		enc: enc,
		dec: dec,
	}, nil
}

// Close closes the library.
func (l *Library) Close() error {
	l.dec.Close()
	if err := l.enc.Close(); err != nil {
		l.db.Close()
		return err
	}
	return l.db.Close()
}

func validName(name string) bool {
	if len(name) < 1 || len(name) > format.TagSize {
		return false
	}
	for i := 0; i < len(name); i++ {
		if name[i] <= ' ' || name[i] > '~' {
			return false
		}
	}
	return true
}

func addBlob(tx *sql.Tx, id uuid.UUID, data []byte) (int64, error) {
	if _, err := tx.Exec("INSERT OR IGNORE INTO blob (uuid, data) VALUES (?, ?)", id.String(), data); err != nil {
		return 0, err
	}

	var blob int64
	if err := tx.QueryRow("SELECT id FROM blob WHERE uuid = ?", id.String()).Scan(&blob); err != nil {
		return 0, err
	}
	return blob, nil
}

func removeOrphans(tx *sql.Tx) error {
	_, err := tx.Exec("DELETE FROM blob WHERE id NOT IN (SELECT blob_id FROM palette)")
	return err
}

// AddPalette stores p under name, replacing any palette already using that
// name. A zero kind is guessed from the entry size.
func (l *Library) AddPalette(name string, kind Kind, p *palette.Palette) (uuid.UUID, error) {
	if !validName(name) {
		return uuid.Nil, errBadName
	}

	b, err := p.MarshalBinary()
	if err != nil {
		return uuid.Nil, err
	}
	id := contentID(b)

	if kind == 0 {
		kind = guessKind(p)
	}

	tx, err := l.db.Begin()
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	blob, err := addBlob(tx, id, l.enc.EncodeAll(b, nil))
	if err != nil {
		return uuid.Nil, err
	}

	if _, err := tx.Exec("INSERT OR REPLACE INTO palette (name, kind, entry_size, blob_id) VALUES (?, ?, ?, ?)", name, kind, p.EntrySize, blob); err != nil {
		return uuid.Nil, err
	}

	if err := removeOrphans(tx); err != nil {
		return uuid.Nil, err
	}

	return id, tx.Commit()
}

// FindPalette returns the palette stored under name, or nil if there isn't
// one.
func (l *Library) FindPalette(name string) (*palette.Palette, error) {
	var data []byte
	switch err := l.db.QueryRow("SELECT b.data FROM palette AS p JOIN blob AS b ON p.blob_id = b.id WHERE p.name = ?", name).Scan(&data); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		b, err := l.dec.DecodeAll(data, nil)
		if err != nil {
			return nil, err
		}
		p := new(palette.Palette)
		if err := p.UnmarshalBinary(b); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, err
	}
}

// DeletePalette removes the palette stored under name and reports whether
// there was one.
func (l *Library) DeletePalette(name string) (bool, error) {
	tx, err := l.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	result, err := tx.Exec("DELETE FROM palette WHERE name = ?", name)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	if err := removeOrphans(tx); err != nil {
		return false, err
	}

	return n > 0, tx.Commit()
}

// Palettes lists every palette in the library ordered by name.
func (l *Library) Palettes() ([]Entry, error) {
	rows, err := l.db.Query("SELECT p.name, p.kind, p.entry_size, b.uuid FROM palette AS p JOIN blob AS b ON p.blob_id = b.id ORDER BY p.name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var id string
		if err := rows.Scan(&e.Name, &e.Kind, &e.EntrySize, &id); err != nil {
			return nil, err
		}
		if e.UUID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// Count returns the number of palettes in the library.
func (l *Library) Count() (int, error) {
	var n int
	if err := l.db.QueryRow("SELECT COUNT(*) FROM palette").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
