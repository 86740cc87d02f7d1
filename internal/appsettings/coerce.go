package appsettings

import (
	"encoding/json"
	"math"

	"github.com/spf13/cast"
)

// Coerce converts loosely typed input such as command line arguments into the
// Go type of kind. Integral kinds reject fractional numbers.
func Coerce(kind Kind, raw any) (any, error) {
	if n, ok := raw.(json.Number); ok {
		raw = n.String()
	}

	switch kind {
	case KindBoolean:
		return cast.ToBoolE(raw)
	case KindInteger:
		if err := checkIntegral(raw); err != nil {
			return nil, err
		}

		v, err := cast.ToInt64E(raw)
		if err != nil {
			return nil, err
		}

		if v < math.MinInt32 || v > math.MaxInt32 {
			return nil, errOutOfRange
		}

		return int32(v), nil
	case KindLong:
		if err := checkIntegral(raw); err != nil {
			return nil, err
		}

		return cast.ToInt64E(raw)
	case KindDouble:
		return cast.ToFloat64E(raw)
	case KindFloat:
		return cast.ToFloat32E(raw)
	case KindString:
		return cast.ToStringE(raw)
	default:
		return nil, errUnsupportedKind
	}
}

// CoerceJSON converts a value decoded from JSON into the Go type of kind.
// Unlike Coerce it does not convert between JSON types: numeric kinds take
// only numbers, booleans only true or false and strings only strings.
func CoerceJSON(kind Kind, raw any) (any, error) {
	switch kind {
	case KindBoolean:
		if v, ok := raw.(bool); ok {
			return v, nil
		}
	case KindString:
		if v, ok := raw.(string); ok {
			return v, nil
		}
	case KindInteger, KindLong, KindDouble, KindFloat:
		switch raw.(type) {
		case json.Number, float64:
			return Coerce(kind, raw)
		}
	default:
		return nil, errUnsupportedKind
	}

	return nil, errWrongJSONType
}

// SetJSON assigns a value decoded from JSON, see CoerceJSON. A nil raw
// value unsets the field.
func (r *Record) SetJSON(field string, raw any) error {
	return r.setWith(CoerceJSON, field, raw)
}

// SetFrom coerces raw into the field's kind and assigns it, converting
// leniently between strings, numbers and booleans. It serves command line
// input. A nil raw value unsets the field.
func (r *Record) SetFrom(field string, raw any) error {
	return r.setWith(Coerce, field, raw)
}

func (r *Record) setWith(coerce func(Kind, any) (any, error), field string, raw any) error {
	f, ok := r.schema.Field(field)
	if !ok {
		return &SchemaError{Entity: r.schema.Name, Field: field, Reason: "unknown field"}
	}

	if raw == nil {
		r.Unset(field)
		return nil
	}

	v, err := coerce(f.Kind, raw)
	if err != nil {
		return &TypeMismatchError{Entity: r.schema.Name, Field: field, Kind: f.Kind, Got: raw}
	}

	return r.Set(field, v)
}

func checkIntegral(raw any) error {
	var f float64

	switch v := raw.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	default:
		return nil
	}

	if f != math.Trunc(f) {
		return errNotIntegral
	}

	return nil
}
