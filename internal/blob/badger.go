package blob

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
)

// generationSize is the length of the big-endian generation stored in front of
// every badger value.
const generationSize = 8

var _ Store = (*BadgerStore)(nil)

type BadgerConfig struct {
	Path     string // directory of the database, ignored when InMemory is set
	InMemory bool
	Logger   *logrus.Logger
}

// BadgerStore keeps objects in an embedded badger database.
type BadgerStore struct {
	db  *badger.DB
	log *logrus.Logger
}

func NewBadgerStore(config BadgerConfig) (*BadgerStore, error) {
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger()
	}

	if !config.InMemory && config.Path == "" {
		return nil, errors.New("badger store needs a path or in-memory mode")
	}

	opts := badger.DefaultOptions(config.Path)
	if config.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("error opening badger store: %w", err)
	}

	return &BadgerStore{db: db, log: config.Logger}, nil
}

func (b *BadgerStore) Get(ctx context.Context, key string) (*Object, error) {
	var obj *Object

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}

		value, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}

		generation, data, err := splitValue(value)
		if err != nil {
			return fmt.Errorf("key %s: %w", key, err)
		}

		obj = &Object{Key: key, Data: data, Generation: generation}
		return nil
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return obj, nil
}

func (b *BadgerStore) Put(ctx context.Context, key string, data []byte, ifGeneration int64) (int64, error) {
	var generation int64

	err := b.db.Update(func(txn *badger.Txn) error {
		current, err := b.currentGeneration(txn, key)
		if err != nil {
			return err
		}

		if err := checkGeneration(current, ifGeneration); err != nil {
			return err
		}

		generation = current + 1
		return txn.Set([]byte(key), joinValue(generation, data))
	})
	if errors.Is(err, badger.ErrConflict) {
		b.log.Warnf("badger transaction conflict on %s", key)
		return 0, ErrConflict
	}
	if err != nil {
		return 0, err
	}

	return generation, nil
}

func (b *BadgerStore) currentGeneration(txn *badger.Txn, key string) (int64, error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	value, err := item.ValueCopy(nil)
	if err != nil {
		return 0, err
	}

	generation, _, err := splitValue(value)
	return generation, err
}

func (b *BadgerStore) List(ctx context.Context, prefix string) ([]string, error) {
	keys := make([]string, 0)

	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}

		return nil
	})

	return keys, err
}

func (b *BadgerStore) Delete(ctx context.Context, key string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(key)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}

		return txn.Delete([]byte(key))
	})
}

func (b *BadgerStore) Close() error {
	return b.db.Close()
}

func joinValue(generation int64, data []byte) []byte {
	value := make([]byte, generationSize+len(data))
	binary.BigEndian.PutUint64(value, uint64(generation))
	copy(value[generationSize:], data)
	return value
}

func splitValue(value []byte) (int64, []byte, error) {
	if len(value) < generationSize {
		return 0, nil, errors.New("badger value is shorter than its generation header")
	}

	return int64(binary.BigEndian.Uint64(value)), value[generationSize:], nil
}
