package source

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// Kind identifies which scalar a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindText
	KindBytes
)

// Value is a tagged scalar as stored in a SQLite cell: null, integer, real,
// text, or blob. Rows are ordered sequences of Values, one per column.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    []byte
}

// Row is the positional values of one source row.
type Row []Value

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating-point Value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Text returns a text Value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Bytes returns a blob Value.
func Bytes(b []byte) Value { return Value{kind: KindBytes, b: b} }

// FromAny converts a value scanned from a database driver into a Value.
// Both database/sql (SQLite) and pgx surface the scalar types below for the
// column types this tool produces.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case int64:
		return Int(x), nil
	case int32:
		return Int(int64(x)), nil
	case int:
		return Int(int64(x)), nil
	case float64:
		return Float(x), nil
	case float32:
		return Float(float64(x)), nil
	case bool:
		if x {
			return Int(1), nil
		}
		return Int(0), nil
	case string:
		return Text(x), nil
	case []byte:
		b := make([]byte, len(x))
		copy(b, x)
		return Bytes(b), nil
	case time.Time:
		return Text(x.Format(time.RFC3339Nano)), nil
	default:
		return Value{}, fmt.Errorf("unsupported scan type %T", v)
	}
}

// Kind returns the scalar kind.
func (v Value) Kind() Kind { return v.kind }

// Arg returns the value in the form a database driver accepts as a query
// argument. Null becomes nil.
func (v Value) Arg() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindText:
		return v.s
	case KindBytes:
		return v.b
	default:
		return nil
	}
}

// Key returns a canonical string form used for dedup membership tests.
// Integers and integral floats share a representation, so a value written to
// a DOUBLE PRECISION column and read back compares equal to the SQLite
// original even when the drivers disagree on int64 vs float64.
func (v Value) Key() string {
	switch v.kind {
	case KindInt:
		return "n:" + strconv.FormatInt(v.i, 10)
	case KindFloat:
		return "n:" + strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return "t:" + v.s
	case KindBytes:
		return "b:" + hex.EncodeToString(v.b)
	default:
		return "null"
	}
}

// String renders the value for log lines.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return strconv.Quote(v.s)
	case KindBytes:
		return fmt.Sprintf("0x%x", v.b)
	default:
		return "NULL"
	}
}

// Args converts a row to driver arguments, truncated to n values.
func (r Row) Args(n int) []any {
	args := make([]any, n)
	for i := 0; i < n; i++ {
		args[i] = r[i].Arg()
	}
	return args
}

// String renders the row for log lines.
func (r Row) String() string {
	out := "("
	for i, v := range r {
		if i > 0 {
			out += ", "
		}
		out += v.String()
	}
	return out + ")"
}
