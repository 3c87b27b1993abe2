package cachestore

import (
	"encoding/json"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/rustyhook/rustyhook/internal/fingerprint"
	"github.com/rustyhook/rustyhook/internal/hook"
)

// IndexEntry is what the badger index stores per fingerprint, so `list` and
// `doctor` can report cache status without walking the directory tree.
type IndexEntry struct {
	Spec     hook.EnvSpec `json:"spec"`
	LastUsed time.Time    `json:"last_used"`
}

// Index is a rebuildable cache of Store's on-disk state. The .ready marker
// on disk remains the single source of truth; a corrupt or stale Index can
// always be regenerated by Rebuild, so its correctness is never load-bearing
// for whether a hook is safe to dispatch against a given environment.
type Index struct {
	db *badger.DB
}

// OpenIndex opens (creating if absent) the badger index at dir.
func OpenIndex(dir string) (*Index, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening cache index: %w", err)
	}
	return &Index{db: db}, nil
}

// Close releases the underlying badger handles.
func (idx *Index) Close() error {
	if idx == nil || idx.db == nil {
		return nil
	}
	return idx.db.Close()
}

// Touch records that digest was used, storing spec for later inspection.
func (idx *Index) Touch(digest fingerprint.Digest, spec hook.EnvSpec) error {
	entry := IndexEntry{Spec: spec, LastUsed: time.Now().UTC()}
	buf, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling index entry: %w", err)
	}
	return idx.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(digest.String()), buf)
	})
}

// Get returns the recorded entry for digest, if any.
func (idx *Index) Get(digest fingerprint.Digest) (*IndexEntry, error) {
	var entry IndexEntry
	err := idx.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(digest.String()))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading index entry: %w", err)
	}
	return &entry, nil
}

// Remove drops the index entry for digest (used by `clean`).
func (idx *Index) Remove(digest fingerprint.Digest) error {
	return idx.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(digest.String()))
	})
}

// All returns every indexed digest, for `list`.
func (idx *Index) All() (map[fingerprint.Digest]IndexEntry, error) {
	out := make(map[fingerprint.Digest]IndexEntry)
	err := idx.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := fingerprint.Digest(string(item.Key()))
			var entry IndexEntry
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			}); err != nil {
				return err
			}
			out[key] = entry
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing index: %w", err)
	}
	return out, nil
}

// Rebuild clears the index and repopulates it by scanning Store's on-disk
// ready environments. Used by `doctor --reindex`.
func Rebuild(idx *Index, store *Store, specOf func(fingerprint.Digest) (hook.EnvSpec, bool)) error {
	if err := idx.db.DropAll(); err != nil {
		return fmt.Errorf("clearing cache index: %w", err)
	}
	digests, err := store.List()
	if err != nil {
		return fmt.Errorf("scanning cache store: %w", err)
	}
	for _, d := range digests {
		spec, ok := specOf(d)
		if !ok {
			continue
		}
		if err := idx.Touch(d, spec); err != nil {
			return fmt.Errorf("reindexing %s: %w", d, err)
		}
	}
	return nil
}
