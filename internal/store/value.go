package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind identifies which scalar a Value holds.
type Kind int

// Scalar kinds representable in the shared variable file.
const (
	Int Kind = iota
	Float
	String
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a tagged scalar union: an integer, a floating-point number, or a
// string. It is the only value shape the shared variable file can hold.
// The zero Value is the integer 0.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// IntValue returns a Value holding an integer.
func IntValue(i int64) Value {
	return Value{kind: Int, i: i}
}

// FloatValue returns a Value holding a floating-point number.
func FloatValue(f float64) Value {
	return Value{kind: Float, f: f}
}

// StringValue returns a Value holding a string.
func StringValue(s string) Value {
	return Value{kind: String, s: s}
}

// Kind reports which scalar the Value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// Int returns the integer payload. The second return is false if the Value
// does not hold an integer.
func (v Value) Int() (int64, bool) {
	return v.i, v.kind == Int
}

// Float returns the floating-point payload. The second return is false if
// the Value does not hold a float.
func (v Value) Float() (float64, bool) {
	return v.f, v.kind == Float
}

// Text returns the string payload. The second return is false if the Value
// does not hold a string.
func (v Value) Text() (string, bool) {
	return v.s, v.kind == String
}

// Number returns the Value as a float64 if it is numeric (integer or float).
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case Int:
		return float64(v.i), true
	case Float:
		return v.f, true
	default:
		return 0, false
	}
}

// String renders the Value for display. Integers and floats use their
// shortest decimal form; strings are returned as-is, unquoted.
func (v Value) String() string {
	switch v.kind {
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return v.s
	}
}

// Equal reports whether two Values hold the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Int:
		return v.i == o.i
	case Float:
		return v.f == o.f
	default:
		return v.s == o.s
	}
}

// Add returns the sum used by increment updates: the receiver is treated as
// 0 if it is not numeric, and the result is an integer only when both
// operands are integers. A non-numeric delta falls back to plain
// assignment, since there is nothing meaningful to add.
func (v Value) Add(delta Value) Value {
	dn, ok := delta.Number()
	if !ok {
		return delta
	}

	base, ok := v.Number()
	if !ok {
		// 0 + delta
		return delta
	}

	if v.kind == Int && delta.kind == Int {
		return IntValue(v.i + delta.i)
	}
	return FloatValue(base + dn)
}

// MarshalJSON encodes the Value as a bare JSON number or string.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Int:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case Float:
		return json.Marshal(v.f)
	default:
		return json.Marshal(v.s)
	}
}

// UnmarshalJSON decodes a JSON number or string. Numbers without a
// fractional part or exponent stay integers; anything else numeric becomes
// a float. Objects, arrays, booleans, and null are rejected.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	switch t := raw.(type) {
	case string:
		*v = StringValue(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			*v = IntValue(i)
			return nil
		}
		f, err := t.Float64()
		if err != nil {
			return err
		}
		*v = FloatValue(f)
	default:
		return fmt.Errorf("unsupported value %s (only numbers and strings are allowed)", data)
	}
	return nil
}

// ParseValue interprets a command-line token as the most specific scalar it
// can hold: integer, then float, then string.
func ParseValue(s string) Value {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntValue(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return FloatValue(f)
	}
	return StringValue(s)
}
