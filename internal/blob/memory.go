package blob

import (
	"context"
	"sort"
	"strings"
	"sync"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps objects in a map. Lists are returned in key order.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]Object
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects: make(map[string]Object),
	}
}

func (m *MemoryStore) Get(ctx context.Context, key string) (*Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[key]
	if !ok {
		return nil, ErrNotFound
	}

	data := make([]byte, len(obj.Data))
	copy(data, obj.Data)

	return &Object{Key: key, Data: data, Generation: obj.Generation}, nil
}

func (m *MemoryStore) Put(ctx context.Context, key string, data []byte, ifGeneration int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.objects[key].Generation
	if err := checkGeneration(current, ifGeneration); err != nil {
		return 0, err
	}

	stored := make([]byte, len(data))
	copy(stored, data)
	m.objects[key] = Object{Key: key, Data: stored, Generation: current + 1}

	return current + 1, nil
}

func (m *MemoryStore) List(ctx context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0)
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	return keys, nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[key]; !ok {
		return ErrNotFound
	}
	delete(m.objects, key)

	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
