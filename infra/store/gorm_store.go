package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Preference is one stored key.
type Preference struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (Preference) TableName() string { return "preferences" }

// GormStore keeps preferences in a SQL table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates the preferences table if needed.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&Preference{})
}

func (s *GormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var p Preference
	err := s.db.WithContext(ctx).Where("key = ?", key).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference %s: %w", key, err)
	}
	return p.Value, true, nil
}

func (s *GormStore) Set(ctx context.Context, key, value string) error {
	p := Preference{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&p).Error
	if err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}
