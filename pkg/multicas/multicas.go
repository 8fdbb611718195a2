package multicas

import (
	"sync"
)

// MultiCAS hands out at most one in-flight permission per key. The cache uses
// it so a single goroutine recomputes a missing code while the rest back off.
type MultiCAS interface {
	// Set will guarantee there is only one of concurrent goroutines can set successfully.
	Set(key string) bool
	Unset(key string)
}

func NewMultiCAS() MultiCAS {
	return &multicas{
		table: make(map[string]bool),
	}
}

type multicas struct {
	mu    sync.RWMutex
	table map[string]bool
}

func (m *multicas) Set(key string) (ok bool) {
	m.mu.RLock()
	isSet := m.table[key]
	m.mu.RUnlock()
	if isSet {
		return false
	}

	m.mu.Lock()
	if !m.table[key] {
		m.table[key] = true
		ok = true
	}
	m.mu.Unlock()
	return ok
}

func (m *multicas) Unset(key string) {
	m.mu.Lock()
	if m.table[key] {
		delete(m.table, key)
	}
	m.mu.Unlock()
}
