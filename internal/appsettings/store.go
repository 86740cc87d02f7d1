package appsettings

import "context"

// RecordStore persists settings records. FindAllByType must return records
// in a stable order so that the first one can be picked deterministically.
type RecordStore interface {
	FindAllByType(ctx context.Context, entityType string) ([]*Record, error)
	Create(ctx context.Context, rec *Record) (*Record, error)
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, rec *Record) error
}

// Transactor is implemented by stores that can run several operations in
// one storage transaction. Save uses it for its read-reconcile-write step.
type Transactor interface {
	InTransaction(ctx context.Context, fn func(RecordStore) error) error
}
