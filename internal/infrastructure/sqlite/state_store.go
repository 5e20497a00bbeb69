// Package sqlite es el almacén local por defecto: un archivo SQLite con una tabla clave-valor.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/jhoicas/inventario-hojas/internal/domain/repository"
)

var _ repository.StateStore = (*StateStore)(nil)

// kvEntry fila de la tabla kv_store.
type kvEntry struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (kvEntry) TableName() string { return "kv_store" }

// StateStore implementa repository.StateStore con gorm sobre SQLite.
type StateStore struct {
	db *gorm.DB
}

// Open abre (o crea) la base en path y migra la tabla. ":memory:" sirve para tests.
func Open(path string) (*StateStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite %s: %w", path, err)
	}
	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, fmt.Errorf("migrar kv_store: %w", err)
	}
	// SQLite admite un solo escritor; el Workbook ya serializa las escrituras.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	return &StateStore{db: db}, nil
}

// Get lee la clave. Ausente => found=false sin error.
func (s *StateStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry kvEntry
	err := s.db.WithContext(ctx).Where(&kvEntry{Key: key}).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlite get %s: %w", key, err)
	}
	return entry.Value, true, nil
}

// Set inserta o reemplaza el valor (upsert por clave).
func (s *StateStore) Set(ctx context.Context, key, value string) error {
	entry := kvEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("sqlite set %s: %w", key, err)
	}
	return nil
}

// Close cierra la conexión subyacente.
func (s *StateStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
