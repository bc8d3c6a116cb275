// Package parser turns one console line into an OSC address path and typed parameters,
// and renders OSC replies back into text.
package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseLine splits a line on whitespace. The first word is the command path and every
// remaining word becomes a parameter via Coerce. A blank line yields an empty path and
// no parameters; it is not rejected here.
func ParseLine(line string) (string, []Value) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}

	params := make([]Value, 0, len(fields)-1)
	for _, token := range fields[1:] {
		params = append(params, Coerce(token))
	}
	return fields[0], params
}

// FormatResponse renders reply arguments as a parenthesized, comma-separated tuple.
func FormatResponse(args []any) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = formatArg(arg)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func formatArg(arg any) string {
	switch v := arg.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case []byte:
		return "blob[" + strconv.Itoa(len(v)) + "]"
	default:
		return fmt.Sprint(v)
	}
}
