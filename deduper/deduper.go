// Package deduper provides an optional seen-set used to drop businesses that
// were already collected by an earlier, overlapping category search.
package deduper

import (
	"context"
	"sync"
)

type Deduper interface {
	// AddIfNotExists records the key and reports whether it was unseen.
	AddIfNotExists(ctx context.Context, key string) bool
	Close() error
}

// New returns an in-memory Deduper that lives for a single run.
func New() Deduper {
	return &memoryDeduper{
		seen: make(map[string]struct{}),
	}
}

type memoryDeduper struct {
	mux  sync.Mutex
	seen map[string]struct{}
}

func (d *memoryDeduper) AddIfNotExists(_ context.Context, key string) bool {
	if key == "" {
		return true
	}

	d.mux.Lock()
	defer d.mux.Unlock()

	if _, ok := d.seen[key]; ok {
		return false
	}

	d.seen[key] = struct{}{}

	return true
}

func (d *memoryDeduper) Close() error {
	return nil
}
