// Package scalar decodes upstream JSON fields whose type is not stable
// (e.g. a score sent as 95 by one response and "95,5" by the next)
package scalar

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/sig-0/fipeval/numeric"
)

// Value is a JSON scalar kept in its textual form
type Value struct {
	text   string
	number bool
}

// Of creates a textual scalar, as if decoded from a JSON string
func Of(text string) Value {
	return Value{text: text}
}

// OfNumber creates a numeric scalar, as if decoded from a JSON number
func OfNumber(v float64) Value {
	return Value{
		text:   strconv.FormatFloat(v, 'f', -1, 64),
		number: true,
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*v = Value{}
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*v = Value{text: strings.TrimSpace(s)}
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		*v = Value{text: string(data), number: true}
	default:
		// bools, objects and arrays are kept verbatim
		*v = Value{text: string(data)}
	}

	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.number {
		return []byte(v.text), nil
	}

	return json.Marshal(v.text)
}

// String returns the textual form of the scalar
func (v Value) String() string {
	return v.text
}

// IsNumber reports whether the scalar was decoded from a JSON number
func (v Value) IsNumber() bool {
	return v.number
}

// IsZero reports whether the scalar was absent or empty
func (v Value) IsZero() bool {
	return v.text == ""
}

// Float returns the numeric value of the scalar, or NaN.
// JSON numbers are parsed as-is, strings go through the locale parser
func (v Value) Float() float64 {
	if !v.number {
		return numeric.Parse(v.text)
	}

	f, err := strconv.ParseFloat(v.text, 64)
	if err != nil {
		return math.NaN()
	}

	return f
}

// Int returns the integer value of the scalar, and if it is one
func (v Value) Int() (int, bool) {
	f := v.Float()
	if !numeric.Valid(f) || f != math.Trunc(f) {
		return 0, false
	}

	return int(f), true
}
