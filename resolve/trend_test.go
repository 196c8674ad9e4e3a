package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sig-0/fipeval/types"
)

func seriesOf(values ...float64) types.ValuationSeries {
	series := make(types.ValuationSeries, 0, len(values))

	for i, v := range values {
		series = append(series, types.ValuationPoint{
			TableCode: i + 1,
			Value:     v,
		})
	}

	return series
}

func TestComputeTrend(t *testing.T) {
	t.Parallel()

	t.Run("empty series", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, types.Trend{}, ComputeTrend(nil))
	})

	t.Run("single point", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, types.Trend{}, ComputeTrend(seriesOf(100)))
	})

	t.Run("regular series", func(t *testing.T) {
		t.Parallel()

		trend := ComputeTrend(seriesOf(100, 110, 99))

		assert.True(t, trend.Available)
		assert.Equal(t, 100.0, trend.First)
		assert.Equal(t, 110.0, trend.Previous)
		assert.Equal(t, 99.0, trend.Last)
		assert.InDelta(t, -10.0, trend.VariationRecent, 1e-9)
		assert.InDelta(t, -1.0, trend.VariationWindow, 1e-9)
	})

	t.Run("zero previous", func(t *testing.T) {
		t.Parallel()

		trend := ComputeTrend(seriesOf(50, 0, 80))

		assert.Equal(t, 0.0, trend.VariationRecent)
		assert.InDelta(t, 60.0, trend.VariationWindow, 1e-9)
	})

	t.Run("zero first", func(t *testing.T) {
		t.Parallel()

		trend := ComputeTrend(seriesOf(0, 40, 80))

		assert.InDelta(t, 100.0, trend.VariationRecent, 1e-9)
		assert.Equal(t, 0.0, trend.VariationWindow)
	})

	t.Run("negative base", func(t *testing.T) {
		t.Parallel()

		trend := ComputeTrend(seriesOf(-100, 50))

		assert.True(t, trend.Available)
		assert.InDelta(t, -150.0, trend.VariationRecent, 1e-9)
		assert.InDelta(t, -150.0, trend.VariationWindow, 1e-9)
	})
}

func TestWindow(t *testing.T) {
	t.Parallel()

	t.Run("clamp", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, MinWindow, ClampWindow(-3))
		assert.Equal(t, MinWindow, ClampWindow(1))
		assert.Equal(t, 7, ClampWindow(7))
		assert.Equal(t, MaxWindow, ClampWindow(40))
	})

	t.Run("parse", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, DefaultWindow, ParseWindow(""))
		assert.Equal(t, DefaultWindow, ParseWindow("six"))
		assert.Equal(t, 4, ParseWindow("4"))
		assert.Equal(t, MaxWindow, ParseWindow("99"))
		assert.Equal(t, MinWindow, ParseWindow("0"))
	})
}
