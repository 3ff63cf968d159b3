package db

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"

	"insightiq/models"
)

const (
	historyPrefix   = "history:"
	selectionPrefix = "selection:"
)

type DB struct {
	badgerDB *badger.DB
	now      func() time.Time
}

func New(dbPath string) (*DB, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil

	return open(opts)
}

// NewInMemory opens a store that lives only as long as the process.
func NewInMemory() (*DB, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	return open(opts)
}

func open(opts badger.Options) (*DB, error) {
	badgerDB, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &DB{badgerDB: badgerDB, now: time.Now}, nil
}

func (d *DB) Close() error {
	return d.badgerDB.Close()
}

// sessionSegment hex-encodes the id so a ':' inside it cannot extend into another
// session's key range.
func sessionSegment(sessionID string) string {
	return hex.EncodeToString([]byte(sessionID))
}

func historyKey(sessionID string, ts time.Time) []byte {
	// fixed width keeps lexical and chronological order aligned
	return []byte(fmt.Sprintf("%s:%020d", historyPrefix+sessionSegment(sessionID), ts.UnixNano()))
}

func selectionKey(sessionID string) []byte {
	return []byte(selectionPrefix + sessionSegment(sessionID))
}

func (d *DB) AppendHistory(sessionID string, entry models.HistoryEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return d.badgerDB.Update(func(txn *badger.Txn) error {
		return txn.Set(historyKey(sessionID, d.now()), data)
	})
}

// RecentHistory returns up to limit entries for the session, newest first.
func (d *DB) RecentHistory(sessionID string, limit int) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	prefix := []byte(historyPrefix + sessionSegment(sessionID) + ":")

	err := d.badgerDB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		seek := append(append([]byte{}, prefix...), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(entries) >= limit {
				break
			}
			err := it.Item().Value(func(val []byte) error {
				var e models.HistoryEntry
				if err := json.Unmarshal(val, &e); err != nil {
					return err
				}
				entries = append(entries, e)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	return entries, err
}

func (d *DB) SaveSelection(sessionID string, datasetID int64) error {
	return d.badgerDB.Update(func(txn *badger.Txn) error {
		return txn.Set(selectionKey(sessionID), []byte(strconv.FormatInt(datasetID, 10)))
	})
}

// LoadSelection returns the persisted dataset id for the session, if any.
func (d *DB) LoadSelection(sessionID string) (int64, bool, error) {
	var (
		id    int64
		found bool
	)
	err := d.badgerDB.View(func(txn *badger.Txn) error {
		item, err := txn.Get(selectionKey(sessionID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			v, err := strconv.ParseInt(string(val), 10, 64)
			if err != nil {
				return err
			}
			id, found = v, true
			return nil
		})
	})
	return id, found, err
}

func (d *DB) ClearSelection(sessionID string) error {
	return d.badgerDB.Update(func(txn *badger.Txn) error {
		return txn.Delete(selectionKey(sessionID))
	})
}
