// Package appsettings resolves and persists single-record settings entities.
//
// A settings entity is described by an EntityType: an ordered set of typed
// fields, each with a declared default. Load merges the stored record (if
// any) with those defaults, Save strips values equal to their default before
// writing and keeps at most one stored record per entity type.
package appsettings

import (
	"fmt"
	"math"
)

// Kind is the value kind of a settings field.
type Kind int

// Supported field kinds.
const (
	KindBoolean Kind = iota + 1
	KindInteger
	KindLong
	KindDouble
	KindFloat
	KindString
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindLong:
		return "long"
	case KindDouble:
		return "double"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// zero returns the Go zero value used when a field declares no default.
func (k Kind) zero() any {
	switch k {
	case KindBoolean:
		return false
	case KindInteger:
		return int32(0)
	case KindLong:
		return int64(0)
	case KindDouble:
		return float64(0)
	case KindFloat:
		return float32(0)
	case KindString:
		return ""
	default:
		return nil
	}
}

// accepts reports whether v has the Go type backing kind k. NaN and the
// infinities are rejected since no storage encoding round-trips them.
func (k Kind) accepts(v any) bool {
	switch v := v.(type) {
	case bool:
		return k == KindBoolean
	case int32:
		return k == KindInteger
	case int64:
		return k == KindLong
	case float64:
		return k == KindDouble && finite(v)
	case float32:
		return k == KindFloat && finite(float64(v))
	case string:
		return k == KindString
	default:
		return false
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Field declares one settings field.
type Field struct {
	Name       string
	Kind       Kind
	Default    any
	HasDefault bool
}

// EntityType is the schema of one settings entity.
type EntityType struct {
	Name   string
	Fields []Field

	index map[string]int
}

// NewEntityType builds an entity schema from its field declarations.
func NewEntityType(name string, fields ...Field) EntityType {
	return EntityType{Name: name, Fields: fields}
}

// Bool declares a boolean field with a default.
func Bool(name string, def bool) Field {
	return Field{Name: name, Kind: KindBoolean, Default: def, HasDefault: true}
}

// Int declares an integer field with a default.
func Int(name string, def int32) Field {
	return Field{Name: name, Kind: KindInteger, Default: def, HasDefault: true}
}

// Long declares a long field with a default.
func Long(name string, def int64) Field {
	return Field{Name: name, Kind: KindLong, Default: def, HasDefault: true}
}

// Double declares a double field with a default.
func Double(name string, def float64) Field {
	return Field{Name: name, Kind: KindDouble, Default: def, HasDefault: true}
}

// Float declares a float field with a default.
func Float(name string, def float32) Field {
	return Field{Name: name, Kind: KindFloat, Default: def, HasDefault: true}
}

// String declares a string field with a default.
func String(name, def string) Field {
	return Field{Name: name, Kind: KindString, Default: def, HasDefault: true}
}

// NoDefault declares a field without a default. It resolves to the kind's
// zero value and is always stored as given.
func NoDefault(name string, kind Kind) Field {
	return Field{Name: name, Kind: kind}
}

// Field returns the declaration of the named field.
func (e *EntityType) Field(name string) (Field, bool) {
	i, ok := e.index[name]
	if !ok {
		return Field{}, false
	}

	return e.Fields[i], true
}

// resolvedDefault returns the declared default or the kind's zero value.
func (f Field) resolvedDefault() any {
	if f.HasDefault {
		return f.Default
	}

	return f.Kind.zero()
}

func (e *EntityType) validate() error {
	if e.Name == "" {
		return &SchemaError{Reason: "entity type name is empty"}
	}

	if len(e.Fields) == 0 {
		return &SchemaError{Entity: e.Name, Reason: "entity type declares no fields"}
	}

	index := make(map[string]int, len(e.Fields))

	for i, f := range e.Fields {
		if f.Name == "" {
			return &SchemaError{Entity: e.Name, Reason: fmt.Sprintf("field #%d has no name", i)}
		}

		if _, dup := index[f.Name]; dup {
			return &SchemaError{Entity: e.Name, Field: f.Name, Reason: "duplicate field"}
		}

		if f.Kind.zero() == nil {
			return &SchemaError{Entity: e.Name, Field: f.Name, Reason: "unsupported kind " + f.Kind.String()}
		}

		if f.HasDefault && !f.Kind.accepts(f.Default) {
			return &SchemaError{
				Entity: e.Name,
				Field:  f.Name,
				Reason: fmt.Sprintf("default %v (%T) does not match kind %s", f.Default, f.Default, f.Kind),
			}
		}

		index[f.Name] = i
	}

	e.index = index

	return nil
}
