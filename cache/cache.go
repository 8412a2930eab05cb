// Package cache keeps the client-local list of submitted employees.
package cache

import (
	"encoding/json"
	"fmt"

	"iris_registry/models"
)

// Key is the storage key holding the JSON encoded list.
const Key = "employeeEntries"

// StorageError reports a failed read or write of the persisted list. The
// in-memory list stays usable.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("cache %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Cache is an append-only, insertion ordered list of employee records
// mirrored into a Storage.
type Cache struct {
	store   Storage
	records []models.Employee

	// stale is set while the persisted list could not be read. Writing the
	// in-memory list over it would drop the unread entries.
	stale bool
}

func New(store Storage) *Cache {
	return &Cache{store: store}
}

// Load replaces the in-memory list with the persisted one. A missing key
// yields an empty list.
func (c *Cache) Load() error {
	records, err := c.read()
	if err != nil {
		c.records = nil
		c.stale = true
		return &StorageError{Op: "load", Err: err}
	}
	c.records = records
	c.stale = false
	return nil
}

func (c *Cache) read() ([]models.Employee, error) {
	raw, found, err := c.store.Get(Key)
	if err != nil {
		return nil, err
	}
	if !found || raw == "" {
		return nil, nil
	}

	var records []models.Employee
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("failed to decode entries: %w", err)
	}
	return records, nil
}

// Append adds one record and rewrites the persisted list. After a failed
// Load the persisted list is read again and the new records are merged
// behind it; if it is still unreadable nothing is written.
func (c *Cache) Append(rec models.Employee) error {
	c.records = append(c.records, rec)

	if c.stale {
		persisted, err := c.read()
		if err != nil {
			return &StorageError{Op: "append", Err: fmt.Errorf("persisted entries unreadable, not overwriting: %w", err)}
		}
		c.records = append(persisted, c.records...)
		c.stale = false
	}

	data, err := json.Marshal(c.records)
	if err != nil {
		return &StorageError{Op: "append", Err: fmt.Errorf("failed to encode entries: %w", err)}
	}
	if err := c.store.Set(Key, string(data)); err != nil {
		return &StorageError{Op: "append", Err: err}
	}
	return nil
}

// Clear drops both the persisted and the in-memory list.
func (c *Cache) Clear() error {
	c.records = nil
	c.stale = false
	if err := c.store.Remove(Key); err != nil {
		return &StorageError{Op: "clear", Err: err}
	}
	return nil
}

// Records returns a copy of the cached list.
func (c *Cache) Records() []models.Employee {
	out := make([]models.Employee, len(c.records))
	copy(out, c.records)
	return out
}

func (c *Cache) Len() int { return len(c.records) }
