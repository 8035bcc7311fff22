package audit

import (
	"context"
	"sync"
)

// MemoryRepo is a simple in-memory append-only repository useful for tests.
// It is not intended for production use.
type MemoryRepo struct {
	mu      sync.Mutex
	entries []Entry
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) Append(ctx context.Context, e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, q Query) ([]Entry, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var filtered []Entry
	for _, e := range r.entries {
		if q.Username != "" && e.Username != q.Username {
			continue
		}
		if q.Action != "" && string(e.Action) != q.Action {
			continue
		}
		filtered = append(filtered, e)
	}

	total := len(filtered)
	start := (q.Current - 1) * q.PageSize
	if start >= total {
		return nil, total, nil
	}
	end := start + q.PageSize
	if end > total {
		end = total
	}
	out := make([]Entry, end-start)
	copy(out, filtered[start:end])
	return out, total, nil
}

// Entries returns a copy of everything appended so far.
func (r *MemoryRepo) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
