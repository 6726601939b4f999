package storage

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	. "github.com/cricklet/chessrules/internal/game"
	. "github.com/cricklet/chessrules/internal/helpers"
	"github.com/dgraph-io/badger/v4"
)

var ErrGameNotFound = errors.New("game not found")

const gameKeyPrefix = "game/"

// SavedGame is everything needed to resume a game: the state string and the side to move.
type SavedGame struct {
	State   string    `json:"state"`
	Player  Player    `json:"player"`
	SavedAt time.Time `json:"saved_at"`
}

// Storage keeps saved games in badger, keyed by name.
type Storage struct {
	db *badger.DB
}

// Open uses dir for the database, or keeps everything in memory when dir is empty.
func Open(dir string) (*Storage, Error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, Errorf("opening storage in '%v': %w", dir, err)
	}

	return &Storage{db: db}, NilError
}

func (s *Storage) Close() Error {
	if s.db != nil {
		return Wrap(s.db.Close())
	}
	return NilError
}

func gameKey(name string) []byte {
	return []byte(gameKeyPrefix + name)
}

func validateName(name string) Error {
	if name == "" {
		return Errorf("game name is empty")
	}
	return NilError
}

func (s *Storage) Save(name string, game SavedGame) Error {
	if err := validateName(name); !IsNil(err) {
		return err
	}
	if err := ValidateStateString(game.State); !IsNil(err) {
		return Errorf("saving '%v': %w", name, err)
	}
	if game.SavedAt.IsZero() {
		game.SavedAt = time.Now()
	}

	data, err := json.Marshal(game)
	if err != nil {
		return Wrap(err)
	}

	return Wrap(s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(name), data)
	}))
}

func (s *Storage) Load(name string) (SavedGame, Error) {
	game := SavedGame{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(name))
		if err == badger.ErrKeyNotFound {
			return Errorf("loading '%v': %w", name, ErrGameNotFound)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &game)
		})
	})
	if err != nil {
		return SavedGame{}, Wrap(err)
	}

	if err := ValidateStateString(game.State); !IsNil(err) {
		return SavedGame{}, Errorf("loading '%v': %w", name, err)
	}
	if game.Player != White && game.Player != Black {
		return SavedGame{}, Errorf("loading '%v': invalid player %v", name, int(game.Player))
	}

	return game, NilError
}

// List returns the saved names in order.
func (s *Storage) List() ([]string, Error) {
	names := []string{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(gameKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().KeyCopy(nil))
			names = append(names, strings.TrimPrefix(key, gameKeyPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, Wrap(err)
	}

	sort.Strings(names)
	return names, NilError
}

func (s *Storage) Delete(name string) Error {
	return Wrap(s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(gameKey(name))
		if err == badger.ErrKeyNotFound {
			return Errorf("deleting '%v': %w", name, ErrGameNotFound)
		}
		if err != nil {
			return err
		}
		return txn.Delete(gameKey(name))
	}))
}
