// Package document models the loosely-structured invoice documents returned
// by the extraction service.
//
// An extracted document has no fixed schema: every field is optional, values
// can be scalars or nested objects, and unrecognized keys must survive a
// round trip back to the bookkeeping service untouched. Value is therefore a
// tagged union over the JSON data model rather than a struct, and mappings
// keep their original key order so the rendered view and the forwarded
// payload match what the extractor produced.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Kind discriminates the shape of a Value.
type Kind int

const (
	// KindAbsent marks a value that does not exist, e.g. a missing field.
	KindAbsent Kind = iota

	// KindScalar covers JSON strings, numbers, booleans and null.
	KindScalar

	// KindMapping is a JSON object with its key order preserved.
	KindMapping

	// KindSequence is a JSON array.
	KindSequence
)

// Value is one node of a document tree. The zero Value is absent.
type Value struct {
	kind Kind

	// scalar holds string, json.Number, bool or nil when kind is KindScalar.
	scalar any

	fields []Field
	items  []Value
}

// Field is one key/value entry of a mapping, in source order.
type Field struct {
	Key   string
	Value Value
}

// Absent returns the absent value.
func Absent() Value { return Value{} }

// String returns a scalar string value.
func String(s string) Value { return Value{kind: KindScalar, scalar: s} }

// Number returns a scalar numeric value from its literal JSON form.
func Number(lit string) Value { return Value{kind: KindScalar, scalar: json.Number(lit)} }

// Bool returns a scalar boolean value.
func Bool(b bool) Value { return Value{kind: KindScalar, scalar: b} }

// Null returns the JSON null scalar.
func Null() Value { return Value{kind: KindScalar, scalar: nil} }

// Object builds a mapping from fields, keeping the given order.
func Object(fields ...Field) Value { return Value{kind: KindMapping, fields: fields} }

// Array builds a sequence from items.
func Array(items ...Value) Value { return Value{kind: KindSequence, items: items} }

// Kind reports the shape of the value.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether the value does not exist.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsMapping reports whether the value is a JSON object.
func (v Value) IsMapping() bool { return v.kind == KindMapping }

// IsSequence reports whether the value is a JSON array.
func (v Value) IsSequence() bool { return v.kind == KindSequence }

// Get returns the value of the named field. It is total: looking up a key on
// anything that is not a mapping, or a key that does not exist, returns the
// absent value.
func (v Value) Get(key string) Value {
	if v.kind != KindMapping {
		return Absent()
	}
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value
		}
	}
	return Absent()
}

// Fields returns the mapping entries in source order, or nil for non-mappings.
func (v Value) Fields() []Field {
	if v.kind != KindMapping {
		return nil
	}
	return v.fields
}

// Items returns the sequence elements, or nil for non-sequences.
func (v Value) Items() []Value {
	if v.kind != KindSequence {
		return nil
	}
	return v.items
}

// Len returns the number of entries of a mapping or sequence, zero otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindMapping:
		return len(v.fields)
	case KindSequence:
		return len(v.items)
	}
	return 0
}

// Text returns the display form of a scalar: strings verbatim, numbers with
// their original digits, booleans as "true"/"false". Null, absent and
// non-scalar values render as the empty string.
func (v Value) Text() string {
	if v.kind != KindScalar {
		return ""
	}
	switch s := v.scalar.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case bool:
		if s {
			return "true"
		}
		return "false"
	}
	return ""
}

// Parse decodes a JSON document, preserving mapping key order.
func Parse(data []byte) (Value, error) {
	return Decode(bytes.NewReader(data))
}

// Decode decodes a JSON document from r, preserving mapping key order.
// Numbers keep their literal form.
func Decode(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Absent(), fmt.Errorf("decoding document: %w", err)
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var fields []Field
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("unexpected object key token %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				fields = append(fields, Field{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil { // closing '}'
				return Value{}, err
			}
			return Value{kind: KindMapping, fields: fields}, nil
		case '[':
			var items []Value
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, val)
			}
			if _, err := dec.Token(); err != nil { // closing ']'
				return Value{}, err
			}
			return Value{kind: KindSequence, items: items}, nil
		}
		return Value{}, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return Value{kind: KindScalar, scalar: t}, nil
	case json.Number:
		return Value{kind: KindScalar, scalar: t}, nil
	case bool:
		return Value{kind: KindScalar, scalar: t}, nil
	case nil:
		return Value{kind: KindScalar, scalar: nil}, nil
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

// MarshalJSON encodes the value back to JSON with mapping keys in their
// original order. Absent values encode as null so a Value can be embedded in
// outbound request payloads.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf strings.Builder
	if err := encodeValue(&buf, v); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// UnmarshalJSON decodes in place, preserving key order.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func encodeValue(buf *strings.Builder, v Value) error {
	switch v.kind {
	case KindMapping:
		buf.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(f.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := encodeValue(buf, f.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindSequence:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindScalar:
		switch s := v.scalar.(type) {
		case json.Number:
			// Emit the literal digits unchanged.
			buf.WriteString(s.String())
		default:
			raw, err := json.Marshal(v.scalar)
			if err != nil {
				return err
			}
			buf.Write(raw)
		}
	default:
		buf.WriteString("null")
	}
	return nil
}
