// Package storage persists finished games in a BadgerDB key-value store so
// they can be fetched back after the in-memory game registry forgets them.
package storage

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const gameKeyPrefix = "game:"

// ErrNotFound is returned when no record exists under the requested ID.
var ErrNotFound = errors.New("game record not found")

// GameRecord is the archived form of one finished game.
type GameRecord struct {
	ID         string    `json:"id"`
	White      string    `json:"white"`
	Black      string    `json:"black"`
	Resolution string    `json:"resolution"`
	FinalScore int       `json:"finalScore"`
	Turns      int       `json:"turns"`
	Moves      []string  `json:"moves"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Store wraps BadgerDB for game archiving.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the archive under dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame writes the record under its game ID, overwriting any previous
// record for the same game.
func (s *Store) SaveGame(rec *GameRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(gameKeyPrefix+rec.ID), data)
	})
}

// LoadGame fetches one archived game by ID.
func (s *Store) LoadGame(id string) (*GameRecord, error) {
	rec := &GameRecord{}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(gameKeyPrefix + id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListGames returns the IDs of every archived game.
func (s *Store) ListGames() ([]string, error) {
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(gameKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().Key()
			ids = append(ids, string(key[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
