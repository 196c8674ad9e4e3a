package resolve

import "github.com/sig-0/fipeval/types"

// ComputeTrend derives the trend statistics of an ascending series.
// Series shorter than two points have no trend
func ComputeTrend(series types.ValuationSeries) types.Trend {
	if len(series) < 2 {
		return types.Trend{}
	}

	var (
		first    = series[0].Value
		previous = series[len(series)-2].Value
		last     = series[len(series)-1].Value
	)

	return types.Trend{
		Available:       true,
		First:           first,
		Previous:        previous,
		Last:            last,
		VariationRecent: variation(previous, last),
		VariationWindow: variation(first, last),
	}
}

// variation is the percentage change from base to v, 0 for a zero base
func variation(base, v float64) float64 {
	if base == 0 {
		return 0
	}

	return (v - base) / base * 100
}
