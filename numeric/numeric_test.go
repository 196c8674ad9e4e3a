package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumeric_Parse(t *testing.T) {
	t.Parallel()

	testTable := []struct {
		name     string
		raw      string
		expected float64
	}{
		{"currency with grouping", "R$ 12.345,67", 12345.67},
		{"currency without space", "R$6.022,00", 6022},
		{"bare comma decimal", "95,5", 95.5},
		{"integer", "80", 80},
		{"surrounding whitespace", "  R$ 1.000,00  ", 1000},
		{"millions", "R$ 1.234.567,89", 1234567.89},
		{"negative", "-12,50", -12.5},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.InDelta(t, testCase.expected, Parse(testCase.raw), 1e-9)
		})
	}

	t.Run("invalid input yields NaN", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"", "   ", "R$", "abc", "R$ --", "1,2,3"} {
			assert.True(t, math.IsNaN(Parse(raw)), "input %q", raw)
		}
	})
}

func TestNumeric_OrZero(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, OrZero(math.NaN()))
	assert.Equal(t, 0.0, OrZero(math.Inf(1)))
	assert.Equal(t, 42.5, OrZero(42.5))
}

func TestNumeric_Format(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "R$ 12.345,67", Format(12345.67))
	assert.Equal(t, "R$ 0,50", Format(0.5))
	assert.Equal(t, "R$ 1.000.000,00", Format(1e6))
	assert.Equal(t, "R$ 999,00", Format(999))
	assert.Equal(t, "", Format(math.NaN()))

	// Round trip through the parser
	assert.InDelta(t, 98765.43, Parse(Format(98765.43)), 1e-9)
}
