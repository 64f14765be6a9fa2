// ABOUTME: Mock Store implementation for testing
// ABOUTME: Allows tests to run without SQLite

package store

import (
	"context"
	"sort"
	"sync"
)

// MockStore is an in-memory Store implementation for testing.
// UIDs are assigned from a monotonically increasing counter and are
// never reused, matching the AUTOINCREMENT behavior of SQLiteStore.
type MockStore struct {
	mu      sync.RWMutex
	items   map[int64]*Item
	nextUID int64

	// Err, when set, is returned by every operation. Tests use it to
	// exercise the storage-failure path without a broken database.
	Err error
}

// NewMockStore creates a new MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		items:   make(map[int64]*Item),
		nextUID: 1,
	}
}

func copyItem(item *Item) *Item {
	c := *item
	if item.Description != nil {
		d := *item.Description
		c.Description = &d
	}
	return &c
}

// ListItems returns every stored item ordered by uid.
func (m *MockStore) ListItems(ctx context.Context) ([]*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}

	var items []*Item
	for _, item := range m.items {
		items = append(items, copyItem(item))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].UID < items[j].UID })
	return items, nil
}

// GetItem retrieves an item by uid.
func (m *MockStore) GetItem(ctx context.Context, uid int64) (*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}

	item, ok := m.items[uid]
	if !ok {
		return nil, ErrNotFound
	}
	return copyItem(item), nil
}

// CreateItem stores a new item and assigns its uid.
func (m *MockStore) CreateItem(ctx context.Context, item *Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	item.UID = m.nextUID
	m.nextUID++
	m.items[item.UID] = copyItem(item)
	return nil
}

// UpdateItem replaces the stored item matching item.UID.
func (m *MockStore) UpdateItem(ctx context.Context, item *Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	if _, ok := m.items[item.UID]; !ok {
		return ErrNotFound
	}
	m.items[item.UID] = copyItem(item)
	return nil
}

// PatchItem merges the patch over the stored item.
func (m *MockStore) PatchItem(ctx context.Context, uid int64, patch ItemPatch) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	item, ok := m.items[uid]
	if !ok {
		return nil, ErrNotFound
	}

	merged := copyItem(item)
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Description != nil {
		d := *patch.Description
		merged.Description = &d
	}
	if patch.Completed != nil {
		merged.Completed = *patch.Completed
	}

	m.items[uid] = copyItem(merged)
	return merged, nil
}

// DeleteItem removes the item matching uid.
func (m *MockStore) DeleteItem(ctx context.Context, uid int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	if _, ok := m.items[uid]; !ok {
		return ErrNotFound
	}
	delete(m.items, uid)
	return nil
}

// Close is a no-op for the mock store.
func (m *MockStore) Close() error {
	return nil
}

// Ensure MockStore implements Store interface
var _ Store = (*MockStore)(nil)
