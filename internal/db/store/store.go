// Package store implements appsettings.RecordStore on top of gorm.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoPowerDNS-Admin/appsettings/internal/appsettings"
	"github.com/GoPowerDNS-Admin/appsettings/internal/db/controller/appsetting"
	"github.com/GoPowerDNS-Admin/appsettings/internal/db/models"
)

var (
	// ErrCatalogNil is returned by New without a catalog.
	ErrCatalogNil = errors.New("catalog is nil")
)

// Store keeps settings records in the app_settings table.
type Store struct {
	db      *gorm.DB
	catalog *appsettings.Catalog
}

// New creates a gorm backed record store. The catalog is needed to decode
// stored values back into their field kinds.
func New(db *gorm.DB, catalog *appsettings.Catalog) (*Store, error) {
	if db == nil {
		return nil, appsetting.ErrDBNil
	}

	if catalog == nil {
		return nil, ErrCatalogNil
	}

	return &Store{db: db, catalog: catalog}, nil
}

// FindAllByType returns the records of an entity type ordered by row ID.
func (s *Store) FindAllByType(ctx context.Context, entityType string) ([]*appsettings.Record, error) {
	rows, err := appsetting.GetAllByType(s.db.WithContext(ctx), entityType)
	if err != nil {
		return nil, err
	}

	records := make([]*appsettings.Record, 0, len(rows))

	for i := range rows {
		rec, err := s.decode(&rows[i])
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	return records, nil
}

// Create inserts rec as a new row.
func (s *Store) Create(ctx context.Context, rec *appsettings.Record) (*appsettings.Record, error) {
	values, err := encode(rec)
	if err != nil {
		return nil, err
	}

	row, err := appsetting.Create(s.db.WithContext(ctx), rec.Type(), values)
	if err != nil {
		return nil, err
	}

	created := rec.Clone()
	created.StoreKey = row.ID

	return created, nil
}

// Update overwrites the row identified by rec.StoreKey. Unset fields are
// removed from the stored values.
func (s *Store) Update(ctx context.Context, rec *appsettings.Record) error {
	values, err := encode(rec)
	if err != nil {
		return err
	}

	_, err = appsetting.Update(s.db.WithContext(ctx), rec.StoreKey, values)

	return err
}

// Delete removes the row identified by rec.StoreKey.
func (s *Store) Delete(ctx context.Context, rec *appsettings.Record) error {
	return appsetting.Delete(s.db.WithContext(ctx), rec.StoreKey)
}

// InTransaction runs fn against a store bound to a single database transaction.
func (s *Store) InTransaction(ctx context.Context, fn func(appsettings.RecordStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, catalog: s.catalog})
	})
}

func encode(rec *appsettings.Record) ([]byte, error) {
	return json.Marshal(rec.Values())
}

// decode turns a row into a record. Stored values for fields the schema no
// longer declares, or that no longer fit the field kind, are dropped.
func (s *Store) decode(row *models.AppSetting) (*appsettings.Record, error) {
	rec, err := s.catalog.NewRecord(row.EntityType)
	if err != nil {
		return nil, err
	}

	rec.StoreKey = row.ID

	if len(row.Values) == 0 {
		return rec, nil
	}

	var values map[string]any

	dec := json.NewDecoder(bytes.NewReader(row.Values))
	dec.UseNumber()

	if err = dec.Decode(&values); err != nil {
		return nil, err
	}

	for name, raw := range values {
		if err = rec.SetJSON(name, raw); err != nil {
			log.Warn().
				Err(err).
				Str("entity", row.EntityType).
				Uint64("row", row.ID).
				Msg("dropping stored settings value")
		}
	}

	return rec, nil
}
