// Package redis guarda el estado de la aplicación en Redis (una cadena por clave).
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-hojas/internal/domain/repository"
)

var _ repository.StateStore = (*StateStore)(nil)

// StateStore implementa repository.StateStore sobre un cliente go-redis.
// Las claves se guardan sin TTL con el prefijo configurado.
type StateStore struct {
	client *redis.Client
	prefix string
}

// NewStateStore abre el cliente y verifica la conexión con PING.
func NewStateStore(ctx context.Context, opts *redis.Options, prefix string) (*StateStore, error) {
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return &StateStore{client: client, prefix: prefix}, nil
}

// Get lee la clave. Ausente => found=false sin error.
func (s *StateStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

// Set reemplaza el valor completo de la clave.
func (s *StateStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Close cierra el cliente.
func (s *StateStore) Close() error {
	return s.client.Close()
}
