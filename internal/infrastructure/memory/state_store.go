// Package memory implementa el almacén de estado en memoria del proceso.
// Se usa en tests y con STORE_DRIVER=memory (estado efímero).
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-hojas/internal/domain/repository"
)

var _ repository.StateStore = (*StateStore)(nil)

// StateStore mapa clave-valor protegido por mutex.
type StateStore struct {
	mu     sync.RWMutex
	values map[string]string
	// FailSet si no es nil se devuelve en cada Set (simula un almacén que rechaza escrituras).
	FailSet error
}

// NewStateStore construye un almacén vacío.
func NewStateStore() *StateStore {
	return &StateStore{values: make(map[string]string)}
}

// Get implementa repository.StateStore.
func (s *StateStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set implementa repository.StateStore.
func (s *StateStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSet != nil {
		return s.FailSet
	}
	s.values[key] = value
	return nil
}
