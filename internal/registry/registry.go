// Package registry persists named DAV server configurations.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/cyp0633/davkit/davclient"
)

const serverPrefix = "server:"

// ErrNotFound is returned when no server is registered under a name.
var ErrNotFound = errors.New("server not found")

// Store maps server names to their configs in a BadgerDB database.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the store in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	return open(opts)
}

// OpenInMemory opens a store that lives only as long as the process.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put validates cfg and stores it under cfg.Name, replacing any previous
// entry.
func (s *Store) Put(cfg davclient.ServerConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal server config: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(serverKey(cfg.Name), data)
	})
}

// Get returns the config registered under name.
func (s *Store) Get(name string) (davclient.ServerConfig, error) {
	var cfg davclient.ServerConfig

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(serverKey(name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &cfg)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return cfg, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to get server config: %w", err)
	}
	return cfg, nil
}

// List returns every registered config ordered by name.
func (s *Store) List() ([]davclient.ServerConfig, error) {
	configs := make([]davclient.ServerConfig, 0)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		iter := txn.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(serverPrefix)
		for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				var cfg davclient.ServerConfig
				if err := json.Unmarshal(val, &cfg); err != nil {
					return err
				}
				configs = append(configs, cfg)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list server configs: %w", err)
	}
	return configs, nil
}

// Delete removes the config registered under name.
func (s *Store) Delete(name string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		key := serverKey(name)
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("failed to delete server config: %w", err)
	}
	return nil
}

func serverKey(name string) []byte {
	return []byte(serverPrefix + name)
}
