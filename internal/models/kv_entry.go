package models

import "time"

type KeyValueEntry struct {
	Key       string    `gorm:"primaryKey"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (KeyValueEntry) TableName() string {
	return "kv_entries"
}
