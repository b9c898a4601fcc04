package storage

import (
	"context"
	"sync"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
)

var _ ports.StorageProvider = (*Memory)(nil)

// Memory almacenamiento en memoria del proceso. Se pierde al reiniciar.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

// NewMemory crea un proveedor vacío.
func NewMemory() *Memory {
	return &Memory{data: map[string]map[string]string{}}
}

// Scope devuelve el namespace ns.
func (m *Memory) Scope(ns string) ports.Storage { return &memoryScope{m: m, ns: ns} }

// Close no hace nada.
func (m *Memory) Close() error { return nil }

type memoryScope struct {
	m  *Memory
	ns string
}

func (s *memoryScope) Get(_ context.Context, key string) (string, bool, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	v, ok := s.m.data[s.ns][key]
	return v, ok, nil
}

func (s *memoryScope) Set(_ context.Context, key, value string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.data[s.ns] == nil {
		s.m.data[s.ns] = map[string]string{}
	}
	s.m.data[s.ns][key] = value
	return nil
}

func (s *memoryScope) Delete(_ context.Context, keys ...string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, k := range keys {
		delete(s.m.data[s.ns], k)
	}
	return nil
}

func (s *memoryScope) Clear(_ context.Context) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.data, s.ns)
	return nil
}
