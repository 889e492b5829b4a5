package db

import (
	"context"
	"errors"
	"time"

	"github.com/terraincognita07/nutrilog/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KeyValueRepository is the string-keyed JSON store backing the journal.
type KeyValueRepository struct {
	database *gorm.DB
}

func NewKeyValueRepository(database *gorm.DB) *KeyValueRepository {
	return &KeyValueRepository{database: database}
}

func (repo *KeyValueRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var entry models.KeyValueEntry
	err := repo.database.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (repo *KeyValueRepository) Set(ctx context.Context, key string, value string) error {
	entry := models.KeyValueEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	return repo.database.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (repo *KeyValueRepository) Remove(ctx context.Context, key string) error {
	return repo.database.WithContext(ctx).Where("key = ?", key).Delete(&models.KeyValueEntry{}).Error
}
