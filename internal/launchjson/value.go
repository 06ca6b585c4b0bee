package launchjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is a tagged union over the JSON value kinds. Configuration entries
// carry fields this tool knows nothing about, so every field round-trips
// through this type unchanged, including object key order and the exact
// textual form of numbers.
type Value struct {
	kind Kind
	b    bool
	num  json.Number
	str  string
	arr  []*Value
	obj  *Object
}

// Null returns the JSON null value.
func Null() *Value { return &Value{kind: KindNull} }

// Bool returns a JSON boolean value.
func Bool(b bool) *Value { return &Value{kind: KindBool, b: b} }

// Number returns a JSON number value carrying its original text.
func Number(n json.Number) *Value { return &Value{kind: KindNumber, num: n} }

// String returns a JSON string value.
func String(s string) *Value { return &Value{kind: KindString, str: s} }

// Array returns a JSON array value holding the given items.
func Array(items ...*Value) *Value { return &Value{kind: KindArray, arr: items} }

// ObjectValue wraps an Object as a Value.
func ObjectValue(o *Object) *Value { return &Value{kind: KindObject, obj: o} }

// Kind reports which variant the value holds.
func (v *Value) Kind() Kind { return v.kind }

// AsString returns the string payload; ok is false for any other kind.
func (v *Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsObject returns the object payload; ok is false for any other kind.
func (v *Value) AsObject() (*Object, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// Items returns the array items, or nil for non-array values.
func (v *Value) Items() []*Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// SetItems replaces the items of an array value.
func (v *Value) SetItems(items []*Value) {
	if v.kind != KindArray {
		panic("launchjson: SetItems on non-array value")
	}
	v.arr = items
}

// Append adds items to the end of an array value.
func (v *Value) Append(items ...*Value) {
	if v.kind != KindArray {
		panic("launchjson: Append on non-array value")
	}
	v.arr = append(v.arr, items...)
}

// Object is a JSON object that preserves key insertion order. Keys already
// present keep their position when re-set; new keys are appended.
type Object struct {
	keys   []string
	values map[string]*Value
}

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return &Object{values: make(map[string]*Value)}
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (*Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Set stores a value under key, appending the key if it is new.
func (o *Object) Set(key string, v *Value) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Keys returns the object's keys in insertion order.
func (o *Object) Keys() []string { return o.keys }

// Len returns the number of keys.
func (o *Object) Len() int { return len(o.keys) }

// Parse decodes document text into a Value tree.
func Parse(text string) (*Value, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}

	// Exactly one top-level value is allowed.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected trailing data after document")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // closing '}'
				return nil, err
			}
			return ObjectValue(obj), nil
		case '[':
			arr := &Value{kind: KindArray}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr.arr = append(arr.arr, item)
			}
			if _, err := dec.Token(); err != nil { // closing ']'
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

const indentUnit = "  "

// Encode serializes a Value tree with two-space indentation, keys in
// insertion order. Output is deterministic for a given tree.
func Encode(v *Value) string {
	var b strings.Builder
	encodeValue(&b, v, 0)
	return b.String()
}

func encodeValue(b *strings.Builder, v *Value, depth int) {
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		if v.b {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindNumber:
		b.WriteString(v.num.String())
	case KindString:
		b.Write(encodeString(v.str))
	case KindArray:
		if len(v.arr) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for i, item := range v.arr {
			writeIndent(b, depth+1)
			encodeValue(b, item, depth+1)
			if i < len(v.arr)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		writeIndent(b, depth)
		b.WriteString("]")
	case KindObject:
		if v.obj.Len() == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		keys := v.obj.Keys()
		for i, key := range keys {
			writeIndent(b, depth+1)
			b.Write(encodeString(key))
			b.WriteString(": ")
			val, _ := v.obj.Get(key)
			encodeValue(b, val, depth+1)
			if i < len(keys)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		writeIndent(b, depth)
		b.WriteString("}")
	}
}

func writeIndent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString(indentUnit)
	}
}

// encodeString renders s as a JSON string without HTML escaping, so URL
// values keep their original characters.
func encodeString(s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		panic(err) // strings always encode
	}
	return bytes.TrimRight(buf.Bytes(), "\n")
}
