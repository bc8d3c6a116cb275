package parser

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected Value
	}{
		{name: "positive integer", token: "2", expected: IntValue(2)},
		{name: "negative integer", token: "-17", expected: IntValue(-17)},
		{name: "explicit plus sign", token: "+5", expected: IntValue(5)},
		{name: "zero with sign", token: "-0", expected: IntValue(0)},
		{name: "wider than int32", token: "4294967296", expected: IntValue(4294967296)},
		{name: "decimal float", token: "0.5", expected: FloatValue(0.5)},
		{name: "leading dot float", token: ".25", expected: FloatValue(0.25)},
		{name: "trailing dot float", token: "3.", expected: FloatValue(3)},
		{name: "exponent float", token: "1e3", expected: FloatValue(1000)},
		{name: "negative float", token: "-120.5", expected: FloatValue(-120.5)},
		{name: "integer beyond 64 bits stays text", token: "99999999999999999999", expected: StringValue("99999999999999999999")},
		{name: "negative integer beyond 64 bits stays text", token: "-9223372036854775809", expected: StringValue("-9223372036854775809")},
		{name: "int64 bounds", token: "-9223372036854775808", expected: IntValue(math.MinInt64)},
		{name: "plain word", token: "hello", expected: StringValue("hello")},
		{name: "osc path as parameter", token: "/live/song", expected: StringValue("/live/song")},
		{name: "hex without exponent", token: "0x10", expected: StringValue("0x10")},
		{name: "digit separators", token: "1_000", expected: IntValue(1000)},
		{name: "signed digit separators", token: "-2_500_000", expected: IntValue(-2500000)},
		{name: "leading underscore", token: "_1", expected: StringValue("_1")},
		{name: "trailing underscore", token: "1_", expected: StringValue("1_")},
		{name: "double underscore", token: "1__0", expected: StringValue("1__0")},
		{name: "float digit separators", token: "1_000.5", expected: FloatValue(1000.5)},
		{name: "hex float", token: "0x1p4", expected: StringValue("0x1p4")},
		{name: "leading zeros", token: "007", expected: IntValue(7)},
		{name: "bare sign", token: "-", expected: StringValue("-")},
		{name: "mixed alphanumeric", token: "12abc", expected: StringValue("12abc")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Coerce(tt.token))
		})
	}
}

func TestCoerce_Infinity(t *testing.T) {
	v := Coerce("inf")
	assert.Equal(t, KindFloat, v.Kind)
	assert.True(t, math.IsInf(v.Float, 1))

	v = Coerce("NaN")
	assert.Equal(t, KindFloat, v.Kind)
	assert.True(t, math.IsNaN(v.Float))
}

func TestValue_Arg(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected any
	}{
		{name: "small int is int32", value: IntValue(7), expected: int32(7)},
		{name: "int32 max stays int32", value: IntValue(math.MaxInt32), expected: int32(math.MaxInt32)},
		{name: "int32 min stays int32", value: IntValue(math.MinInt32), expected: int32(math.MinInt32)},
		{name: "wide int is int64", value: IntValue(math.MaxInt32 + 1), expected: int64(math.MaxInt32 + 1)},
		{name: "float is float32", value: FloatValue(0.5), expected: float32(0.5)},
		{name: "string is string", value: StringValue("abc"), expected: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.value.Arg())
		})
	}
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "42", IntValue(42).String())
	assert.Equal(t, "0.5", FloatValue(0.5).String())
	assert.Equal(t, `"gain"`, StringValue("gain").String())
	assert.Equal(t, "float", KindFloat.String())
}

func TestArgs_PreservesOrder(t *testing.T) {
	args := Args([]Value{StringValue("a"), IntValue(1), FloatValue(2.5)})
	assert.Equal(t, []any{"a", int32(1), float32(2.5)}, args)
	assert.Empty(t, Args(nil))
}
