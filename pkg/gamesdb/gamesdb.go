package gamesdb

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/synrais/padmap/pkg/hook"
)

const (
	BucketGames    = "games"
	BucketMeta     = "meta"
	importedSrcKey = "importedSources"
)

var (
	ErrNotFound = errors.New("game not found")
	ErrLocked   = errors.New("game store locked by another process")
)

// LockTimeout bounds the wait for the store's file lock, held for example
// by a running import. Open and OpenReadOnly then fail with ErrLocked.
var LockTimeout = 2 * time.Second

// Lookup yields the recommended hook mask for an executable name. A game
// that is not listed yields 0.
type Lookup interface {
	HookMask(exe string) (hook.Mask, error)
}

// Entry is one game database record.
type Entry struct {
	Exe      string    `json:"exe" yaml:"exe"`
	HookMask hook.Mask `json:"hookMask" yaml:"hookMask"`
}

//
// ---------------------------------------------------
// Helpers
// ---------------------------------------------------
//

// ExeKey normalizes an executable name or path to its lowercased base name.
// Both slash styles are accepted since paths often come from Windows.
func ExeKey(exe string) string {
	exe = strings.TrimSpace(exe)
	if i := strings.LastIndexAny(exe, `/\`); i >= 0 {
		exe = exe[i+1:]
	}
	return strings.ToLower(exe)
}

// Exists reports whether a store file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Store is a bbolt cache of the game database, filled from x360ce.gdb or
// CSV and queried by executable name.
type Store struct {
	db *bolt.DB
}

// Open opens the store at path, creating it and its buckets if needed.
func Open(path string) (*Store, error) {
	return open(path, &bolt.Options{Timeout: LockTimeout})
}

// OpenReadOnly opens an existing store for lookups only.
func OpenReadOnly(path string) (*Store, error) {
	if !Exists(path) {
		return nil, fmt.Errorf("open store %s: %w", path, os.ErrNotExist)
	}
	return open(path, &bolt.Options{ReadOnly: true, Timeout: LockTimeout})
}

func open(path string, options *bolt.Options) (*Store, error) {
	readOnly := options != nil && options.ReadOnly
	if !readOnly {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
	}

	db, err := bolt.Open(path, 0600, options)
	if errors.Is(err, bolt.ErrTimeout) {
		return nil, fmt.Errorf("open store %s: %w", path, ErrLocked)
	}
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	if readOnly {
		return &Store{db: db}, nil
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range []string{BucketGames, BucketMeta} {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

//
// ---------------------------------------------------
// Records
// ---------------------------------------------------
//

// Put inserts or replaces entries in a single transaction.
func (s *Store) Put(entries ...Entry) error {
	if len(entries) == 0 {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketGames))
		for _, e := range entries {
			key := ExeKey(e.Exe)
			if key == "" {
				continue
			}
			if err := b.Put([]byte(key), []byte(FormatMask(e.HookMask))); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get returns the entry for exe or ErrNotFound.
func (s *Store) Get(exe string) (Entry, error) {
	key := ExeKey(exe)
	var e Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketGames))
		if b == nil {
			return ErrNotFound
		}
		v := b.Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		e = Entry{Exe: key, HookMask: ParseMask(string(v))}
		return nil
	})
	return e, err
}

// HookMask implements Lookup.
func (s *Store) HookMask(exe string) (hook.Mask, error) {
	e, err := s.Get(exe)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return e.HookMask, nil
}

// Delete removes exe. Deleting a missing entry is not an error.
func (s *Store) Delete(exe string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketGames)).Delete([]byte(ExeKey(exe)))
	})
}

// All returns every entry in key order.
func (s *Store) All() ([]Entry, error) {
	return s.search(func(string) bool { return true })
}

// SearchPartial returns entries whose name contains query (case-insensitive).
func (s *Store) SearchPartial(query string) ([]Entry, error) {
	q := strings.ToLower(query)
	return s.search(func(name string) bool {
		return strings.Contains(name, q)
	})
}

// SearchPrefix returns entries whose name starts with prefix, using a cursor seek.
func (s *Store) SearchPrefix(prefix string) ([]Entry, error) {
	pre := []byte(strings.ToLower(prefix))
	var out []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketGames))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.Seek(pre); k != nil && bytes.HasPrefix(k, pre); k, v = c.Next() {
			out = append(out, Entry{Exe: string(k), HookMask: ParseMask(string(v))})
		}
		return nil
	})
	return out, err
}

func (s *Store) search(test func(string) bool) ([]Entry, error) {
	var out []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketGames))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			if test(string(k)) {
				out = append(out, Entry{Exe: string(k), HookMask: ParseMask(string(v))})
			}
			return nil
		})
	})
	return out, err
}

//
// ---------------------------------------------------
// Imports
// ---------------------------------------------------
//

// ImportIni copies every entry of an x360ce.gdb into the store and records
// the source path.
func (s *Store) ImportIni(src *IniDB) (int, error) {
	entries := src.Entries()
	if err := s.Put(entries...); err != nil {
		return 0, err
	}
	if err := s.recordSource(src.Path); err != nil {
		return 0, err
	}
	return len(entries), s.db.Sync()
}

// Sources lists the files imported so far, sorted.
func (s *Store) Sources() ([]string, error) {
	var sources []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketMeta))
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(importedSrcKey)); v != nil {
			sources = strings.Split(string(v), "\n")
		}
		return nil
	})
	sort.Strings(sources)
	return sources, err
}

func (s *Store) recordSource(path string) error {
	if path == "" {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketMeta))
		v := b.Get([]byte(importedSrcKey))
		if v == nil {
			return b.Put([]byte(importedSrcKey), []byte(path))
		}
		existing := strings.Split(string(v), "\n")
		for _, e := range existing {
			if e == path {
				return nil
			}
		}
		existing = append(existing, path)
		return b.Put([]byte(importedSrcKey), []byte(strings.Join(existing, "\n")))
	})
}
