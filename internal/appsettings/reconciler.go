package appsettings

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Reconciler loads settings merged with their defaults and saves them back
// keeping at most one minimal record per entity type.
type Reconciler struct {
	catalog *Catalog
	store   RecordStore

	// locks holds one *sync.Mutex per entity type.
	locks sync.Map
}

// NewReconciler creates a reconciler over a catalog and a record store.
func NewReconciler(catalog *Catalog, store RecordStore) (*Reconciler, error) {
	if catalog == nil {
		return nil, ErrCatalogNil
	}

	if store == nil {
		return nil, ErrStoreNil
	}

	return &Reconciler{catalog: catalog, store: store}, nil
}

// Catalog returns the defaults catalog the reconciler resolves against.
func (r *Reconciler) Catalog() *Catalog {
	return r.catalog
}

// Load returns the settings of an entity type with every field concrete.
// The stored record, if any, provides the set fields and the declared
// defaults fill the rest. Load never writes to the store.
func (r *Reconciler) Load(ctx context.Context, entityType string) (*Record, error) {
	resolved, err := r.Stored(ctx, entityType)
	if err != nil {
		return nil, err
	}

	for _, f := range resolved.schema.Fields {
		if _, ok := resolved.values[f.Name]; !ok {
			resolved.values[f.Name] = f.resolvedDefault()
		}
	}

	return resolved, nil
}

// Stored returns only the set fields of an entity type, without defaults.
// Read-modify-write callers should use Update instead, which holds the
// entity lock between the read and the write.
func (r *Reconciler) Stored(ctx context.Context, entityType string) (*Record, error) {
	et, err := r.catalog.Schema(entityType)
	if err != nil {
		return nil, err
	}

	return stored(ctx, r.store, et)
}

// Save persists rec. Fields equal to their declared default are stored
// unset, a record with every field unset is not stored at all, and
// duplicate stored records are collapsed into one. rec itself is not
// modified.
func (r *Reconciler) Save(ctx context.Context, rec *Record) error {
	if rec == nil {
		return ErrRecordNil
	}

	if rec.schema == nil {
		return &SchemaError{Reason: "record has no entity type"}
	}

	et, err := r.catalog.Schema(rec.schema.Name)
	if err != nil {
		return err
	}

	normalized, err := normalize(et, rec)
	if err != nil {
		return err
	}

	return r.commit(ctx, et, func(RecordStore) (*Record, error) {
		return normalized, nil
	})
}

// Update applies fn to the stored fields of an entity type and saves the
// result. The read, fn and the write run under the entity lock and, when
// the store supports it, in one transaction, so concurrent updates of
// different fields do not overwrite each other. An error from fn aborts
// the update and is returned as is.
func (r *Reconciler) Update(ctx context.Context, entityType string, fn func(rec *Record) error) error {
	et, err := r.catalog.Schema(entityType)
	if err != nil {
		return err
	}

	return r.commit(ctx, et, func(s RecordStore) (*Record, error) {
		rec, err := stored(ctx, s, et)
		if err != nil {
			return nil, err
		}

		if err = fn(rec); err != nil {
			return nil, err
		}

		return normalize(et, rec)
	})
}

func (r *Reconciler) lock(entityType string) *sync.Mutex {
	mu, _ := r.locks.LoadOrStore(entityType, &sync.Mutex{})
	return mu.(*sync.Mutex) //nolint:forcetypeassert
}

// commit runs build and reconciles its record against the store, holding
// the entity lock. Errors from build are returned unwrapped. Metrics are
// recorded only once the write is committed.
func (r *Reconciler) commit(
	ctx context.Context,
	et *EntityType,
	build func(s RecordStore) (*Record, error),
) error {
	mu := r.lock(et.Name)
	mu.Lock()
	defer mu.Unlock()

	var (
		buildErr error
		result   reconcileResult
	)

	run := func(s RecordStore) error {
		normalized, err := build(s)
		if err != nil {
			buildErr = err
			return err
		}

		result, err = reconcile(ctx, s, normalized)

		return err
	}

	var err error

	if tx, ok := r.store.(Transactor); ok {
		err = tx.InTransaction(ctx, run)
		if err != nil && buildErr == nil {
			err = storageError("transaction", et.Name, err)
		}
	} else {
		err = run(r.store)
	}

	if buildErr != nil {
		return buildErr
	}

	if err != nil {
		return err
	}

	result.record(et.Name)

	return nil
}

// stored reads the first stored record of et from s, keeping only values
// that still match the schema.
func stored(ctx context.Context, s RecordStore, et *EntityType) (*Record, error) {
	records, err := s.FindAllByType(ctx, et.Name)
	if err != nil {
		return nil, storageError("find", et.Name, err)
	}

	out := newRecord(et)

	if len(records) > 1 {
		log.Warn().
			Str("entity", et.Name).
			Int("records", len(records)).
			Msg("multiple settings records found, using the first one")
	}

	if len(records) > 0 {
		for name, v := range records[0].values {
			if f, ok := et.Field(name); ok && f.Kind.accepts(v) {
				out.values[name] = v
			}
		}
	}

	return out, nil
}

// normalize copies rec against et, dropping every value equal to its
// declared default.
func normalize(et *EntityType, rec *Record) (*Record, error) {
	out := newRecord(et)

	for name, v := range rec.values {
		f, ok := et.Field(name)
		if !ok {
			return nil, &SchemaError{Entity: et.Name, Field: name, Reason: "unknown field"}
		}

		if !f.Kind.accepts(v) {
			return nil, &TypeMismatchError{Entity: et.Name, Field: name, Kind: f.Kind, Got: v}
		}

		if f.HasDefault && v == f.Default {
			continue
		}

		out.values[name] = v
	}

	return out, nil
}

type reconcileResult struct {
	outcome   string
	collapsed int
	fields    int
}

func (res reconcileResult) record(entity string) {
	if res.collapsed > 0 {
		collapsedCounter.WithLabelValues(entity).Add(float64(res.collapsed))
		log.Warn().
			Str("entity", entity).
			Int("deleted", res.collapsed).
			Msg("collapsed duplicate settings records")
	}

	saveCounter.WithLabelValues(entity, res.outcome).Inc()
	log.Debug().
		Str("entity", entity).
		Str("outcome", res.outcome).
		Int("fields", res.fields).
		Msg("settings saved")
}

// reconcile brings the stored records of one entity type in line with the
// normalized record.
func reconcile(ctx context.Context, s RecordStore, normalized *Record) (reconcileResult, error) {
	entity := normalized.Type()
	res := reconcileResult{fields: len(normalized.values)}

	existing, err := s.FindAllByType(ctx, entity)
	if err != nil {
		return res, storageError("find", entity, err)
	}

	if len(existing) > 1 {
		for _, dup := range existing[1:] {
			if err = s.Delete(ctx, dup); err != nil {
				return res, storageError("delete duplicate", entity, err)
			}
		}

		res.collapsed = len(existing) - 1
		existing = existing[:1]
	}

	switch {
	case len(existing) == 0 && normalized.Empty():
		res.outcome = outcomeNoop
	case len(existing) == 0:
		normalized.ID = FixedID
		if _, err = s.Create(ctx, normalized); err != nil {
			return res, storageError("create", entity, err)
		}

		res.outcome = outcomeCreated
	case normalized.Empty():
		if err = s.Delete(ctx, existing[0]); err != nil {
			return res, storageError("delete", entity, err)
		}

		res.outcome = outcomeDeleted
	default:
		normalized.StoreKey = existing[0].StoreKey
		if err = s.Update(ctx, normalized); err != nil {
			return res, storageError("update", entity, err)
		}

		res.outcome = outcomeUpdated
	}

	return res, nil
}
