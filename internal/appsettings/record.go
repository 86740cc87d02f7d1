package appsettings

// FixedID is the identity every settings record reports to callers.
const FixedID int64 = 1

// Record is an instance of a settings entity type. A field missing from the
// value set is unset.
type Record struct {
	// ID is the settings identity, always FixedID.
	ID int64
	// StoreKey is the backend row key. It is not part of the settings identity
	// and may change whenever the row is recreated.
	StoreKey uint64

	schema *EntityType
	values map[string]any
}

func newRecord(et *EntityType) *Record {
	return &Record{
		ID:     FixedID,
		schema: et,
		values: make(map[string]any, len(et.Fields)),
	}
}

// Type returns the entity type name.
func (r *Record) Type() string {
	return r.schema.Name
}

// Schema returns the entity schema of the record.
func (r *Record) Schema() *EntityType {
	return r.schema
}

// Set assigns a field. A nil value unsets it.
func (r *Record) Set(field string, value any) error {
	f, ok := r.schema.Field(field)
	if !ok {
		return &SchemaError{Entity: r.schema.Name, Field: field, Reason: "unknown field"}
	}

	if value == nil {
		delete(r.values, field)
		return nil
	}

	if !f.Kind.accepts(value) {
		return &TypeMismatchError{Entity: r.schema.Name, Field: field, Kind: f.Kind, Got: value}
	}

	r.values[field] = value

	return nil
}

// Unset marks a field unset. Unknown fields are ignored.
func (r *Record) Unset(field string) {
	delete(r.values, field)
}

// IsSet reports whether a field holds a concrete value.
func (r *Record) IsSet(field string) bool {
	_, ok := r.values[field]
	return ok
}

// Value returns a field's concrete value.
func (r *Record) Value(field string) (any, bool) {
	v, ok := r.values[field]
	return v, ok
}

// Values returns a copy of the concrete values.
func (r *Record) Values() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}

	return out
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	return &Record{
		ID:       r.ID,
		StoreKey: r.StoreKey,
		schema:   r.schema,
		values:   r.Values(),
	}
}

// Empty reports whether every field is unset.
func (r *Record) Empty() bool {
	return len(r.values) == 0
}

// Bool returns a boolean field.
func (r *Record) Bool(field string) (bool, bool) {
	v, ok := r.values[field].(bool)
	return v, ok
}

// Int returns an integer field.
func (r *Record) Int(field string) (int32, bool) {
	v, ok := r.values[field].(int32)
	return v, ok
}

// Long returns a long field.
func (r *Record) Long(field string) (int64, bool) {
	v, ok := r.values[field].(int64)
	return v, ok
}

// Double returns a double field.
func (r *Record) Double(field string) (float64, bool) {
	v, ok := r.values[field].(float64)
	return v, ok
}

// Float returns a float field.
func (r *Record) Float(field string) (float32, bool) {
	v, ok := r.values[field].(float32)
	return v, ok
}

// String returns a string field.
func (r *Record) String(field string) (string, bool) {
	v, ok := r.values[field].(string)
	return v, ok
}
