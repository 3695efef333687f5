package dataset

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/vmihailenco/msgpack/v5"
)

func openBadger(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable BadgerDB logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB: %w", err)
	}
	return db, nil
}

// LoadBadger reads every day stored in the Badger database at dir into
// memory. Keys are YYYY-MM-DD strings, values are MessagePack-encoded
// DailySamples.
func LoadBadger(dir string) (*Dataset, error) {
	db, err := openBadger(dir)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	days := make(map[string]DailySamples)
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := string(item.KeyCopy(nil))

			var samples DailySamples
			err := item.Value(func(val []byte) error {
				return msgpack.Unmarshal(val, &samples)
			})
			if err != nil {
				return fmt.Errorf("decode day %s: %w", key, err)
			}
			days[key] = samples
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return New(days)
}

// WriteBadger stores ds into the Badger database at dir, one key per day.
func WriteBadger(dir string, ds *Dataset) error {
	db, err := openBadger(dir)
	if err != nil {
		return err
	}
	defer db.Close()

	wb := db.NewWriteBatch()
	defer wb.Cancel()

	for _, key := range ds.keys {
		val, err := msgpack.Marshal(ds.days[key])
		if err != nil {
			return fmt.Errorf("encode day %s: %w", key, err)
		}
		if err := wb.Set([]byte(key), val); err != nil {
			return fmt.Errorf("write day %s: %w", key, err)
		}
	}

	return wb.Flush()
}
