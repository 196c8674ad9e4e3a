package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sig-0/fipeval/types"
)

func TestNormalizePlate(t *testing.T) {
	t.Parallel()

	testTable := []struct {
		name     string
		raw      string
		expected types.PlateQuery
	}{
		{"lower case", "abc1d23", "ABC1D23"},
		{"separators and symbols", "ab-c1d23!!", "ABC1D23"},
		{"legacy format", "ABC-1234", "ABC1234"},
		{"surrounding whitespace", "  abc 1234 ", "ABC1234"},
		{"truncated to 7", "ABC1D234XYZ", "ABC1D23"},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			plate, err := NormalizePlate(testCase.raw)
			require.NoError(t, err)

			assert.Equal(t, testCase.expected, plate)
		})
	}

	t.Run("invalid plates", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"", "abc12", "!!!-!!!", "ÁBC1D2"} {
			_, err := NormalizePlate(raw)

			assert.ErrorIs(t, err, ErrInvalidPlate, raw)
		}
	})
}

func TestParseFipeCode(t *testing.T) {
	t.Parallel()

	t.Run("valid code", func(t *testing.T) {
		t.Parallel()

		code, err := ParseFipeCode(" 001004-9 ")
		require.NoError(t, err)

		assert.Equal(t, types.FipeCode("001004-9"), code)
	})

	t.Run("invalid codes", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"", "0010049", "001004-", "01004-9", "001004-99", "abcdef-g"} {
			_, err := ParseFipeCode(raw)

			assert.ErrorIs(t, err, ErrInvalidFipeCode, raw)
		}
	})
}
