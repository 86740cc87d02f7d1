// Package models contains database model definitions.
package models

import (
	"time"

	"gorm.io/datatypes"
)

// AppSetting is the stored record of one settings entity type.
// Values holds a JSON object with only the fields that differ from their
// declared default; a field missing from the object is unset.
type AppSetting struct {
	// ID is the row key, unrelated to the settings identity reported to callers.
	ID uint64 `gorm:"primaryKey"`
	// EntityType is the name of the settings entity type.
	EntityType string `gorm:"index;size:128;not null"`
	// Values is the JSON object of concrete field values.
	Values datatypes.JSON
	// CreatedAt is the timestamp when the row was created.
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the row was last updated.
	UpdatedAt time.Time
}

// TableName overrides the table name used by gorm.
func (AppSetting) TableName() string {
	return "app_settings"
}
