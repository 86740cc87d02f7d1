// Package appsetting provides CRUD operations on stored settings records.
package appsetting

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/GoPowerDNS-Admin/appsettings/internal/db/models"
)

const (
	entityTypeQueryPattern = "entity_type = ?"
)

var (
	// ErrSettingNotFound is returned when a settings row is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrEntityTypeEmpty is returned when the entity type of a row is empty.
	ErrEntityTypeEmpty = errors.New("setting entity type cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetAllByType retrieves every row of an entity type ordered by ID.
func GetAllByType(db *gorm.DB, entityType string) ([]models.AppSetting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if entityType == "" {
		return nil, ErrEntityTypeEmpty
	}

	settings := []models.AppSetting{}
	result := db.Where(entityTypeQueryPattern, entityType).Order("id").Find(&settings)
	if result.Error != nil {
		return nil, result.Error
	}

	return settings, nil
}

// GetByID retrieves a row by its ID.
func GetByID(db *gorm.DB, id uint64) (*models.AppSetting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var setting models.AppSetting
	result := db.First(&setting, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, result.Error
	}

	return &setting, nil
}

// Create inserts a new row. Several rows of one entity type are allowed at
// this level; keeping a single one is up to the caller.
func Create(db *gorm.DB, entityType string, values []byte) (*models.AppSetting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if entityType == "" {
		return nil, ErrEntityTypeEmpty
	}

	setting := &models.AppSetting{
		EntityType: entityType,
		Values:     datatypes.JSON(values),
	}

	result := db.Create(setting)
	if result.Error != nil {
		return nil, result.Error
	}

	return setting, nil
}

// Update replaces the values of an existing row.
func Update(db *gorm.DB, id uint64, values []byte) (*models.AppSetting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var setting models.AppSetting
	result := db.First(&setting, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, result.Error
	}

	setting.Values = datatypes.JSON(values)
	result = db.Save(&setting)
	if result.Error != nil {
		return nil, result.Error
	}

	return &setting, nil
}

// Delete deletes a row by ID.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.AppSetting{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}

	return nil
}
