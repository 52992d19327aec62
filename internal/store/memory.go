package store

import "sync"

// MemoryBackend holds the snapshot in process memory. Used by tests
// and by ephemeral runs that should not touch disk.
type MemoryBackend struct {
	mu   sync.Mutex
	data []byte
	ok   bool
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) Load() ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.ok {
		return nil, false, nil
	}
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out, true, nil
}

func (b *MemoryBackend) Save(data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = make([]byte, len(data))
	copy(b.data, data)
	b.ok = true
	return nil
}
