package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which scalar a Value holds.
type Kind int

const (
	// KindString holds the token text unchanged.
	KindString Kind = iota
	// KindInt holds a base-10 integer.
	KindInt
	// KindFloat holds a floating-point number.
	KindFloat
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "string"
	}
}

// Value is one typed command parameter.
// Exactly one of the payload fields is meaningful, selected by Kind.
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
	Str   string
}

// IntValue creates an integer Value.
func IntValue(n int64) Value {
	return Value{Kind: KindInt, Int: n}
}

// FloatValue creates a floating-point Value.
func FloatValue(f float64) Value {
	return Value{Kind: KindFloat, Float: f}
}

// StringValue creates a string Value.
func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Coerce converts a single token to its most specific scalar.
// Integers are tried first, then floats; anything else is kept as the original text.
// Digit groups may be separated by single underscores ("1_000"). An integer literal
// beyond 64 bits stays a string rather than losing precision as a float.
// Coerce never fails.
func Coerce(token string) Value {
	if digits, ok := integerDigits(token); ok {
		if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
			return IntValue(n)
		}
		return StringValue(token)
	}
	if !strings.Contains(strings.ToLower(token), "0x") {
		if f, err := strconv.ParseFloat(token, 64); err == nil {
			return FloatValue(f)
		}
	}
	return StringValue(token)
}

// integerDigits reports whether token is a signed base-10 integer literal and
// returns it with digit-group underscores removed.
func integerDigits(token string) (string, bool) {
	sign, body := "", token
	if body != "" && (body[0] == '+' || body[0] == '-') {
		sign, body = body[:1], body[1:]
	}
	if body == "" {
		return "", false
	}

	var b strings.Builder
	prevDigit := false
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c >= '0' && c <= '9':
			b.WriteByte(c)
			prevDigit = true
		case c == '_' && prevDigit && i+1 < len(body):
			prevDigit = false
		default:
			return "", false
		}
	}
	if !prevDigit {
		return "", false
	}
	return sign + b.String(), true
}

// Arg returns the value as an OSC argument.
// Integers within int32 range map to 'i', wider ones to 'h'; floats map to 'f'.
func (v Value) Arg() any {
	switch v.Kind {
	case KindInt:
		if v.Int >= math.MinInt32 && v.Int <= math.MaxInt32 {
			return int32(v.Int)
		}
		return v.Int
	case KindFloat:
		return float32(v.Float)
	default:
		return v.Str
	}
}

// String renders the value the way the operator typed it, with strings quoted.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	default:
		return strconv.Quote(v.Str)
	}
}

// Args converts a parameter sequence into OSC arguments, preserving order.
func Args(params []Value) []any {
	args := make([]any, len(params))
	for i, p := range params {
		args[i] = p.Arg()
	}
	return args
}

// GoString implements fmt.GoStringer for readable test failures.
func (v Value) GoString() string {
	return fmt.Sprintf("parser.Value{%s %s}", v.Kind, v.String())
}
