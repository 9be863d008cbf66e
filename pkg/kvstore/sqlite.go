package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is the row shape shared by the SQL backends.
type Entry struct {
	Key       string `gorm:"primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

// SQLiteBackend stores entries through GORM, typically on an embedded SQLite file.
type SQLiteBackend struct {
	db    *gorm.DB
	table string
}

// NewSQLiteBackend migrates the entry table and returns the backend.
func NewSQLiteBackend(db *gorm.DB, table string) (*SQLiteBackend, error) {
	if table == "" {
		table = "kv_entries"
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid store table name %q", table)
	}
	if err := db.Table(table).AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate store table: %w", err)
	}
	return &SQLiteBackend{db: db, table: table}, nil
}

func (b *SQLiteBackend) Get(ctx context.Context, key string) (string, bool, error) {
	var entry Entry
	err := b.db.WithContext(ctx).Table(b.table).Where(map[string]interface{}{"key": key}).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get store entry: %w", err)
	}
	return entry.Value, true, nil
}

func (b *SQLiteBackend) Set(ctx context.Context, key, value string) error {
	entry := Entry{Key: key, Value: value}
	err := b.db.WithContext(ctx).Table(b.table).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("set store entry: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) Delete(ctx context.Context, key string) error {
	if err := b.db.WithContext(ctx).Table(b.table).Where(map[string]interface{}{"key": key}).Delete(&Entry{}).Error; err != nil {
		return fmt.Errorf("delete store entry: %w", err)
	}
	return nil
}
