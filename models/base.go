package models

import "time"

// Base carries the columns every entity shares. The id and both timestamps
// are assigned by the store, never by callers.
type Base struct {
	ID        uint      `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" gorm:"not null;autoUpdateTime"`
}
