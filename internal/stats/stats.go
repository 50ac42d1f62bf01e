// Package stats holds the small statistics kit shared by the quality
// checker, the feature builder and the performance report.
package stats

import "math"

// Mean returns the arithmetic mean. Empty input yields 0.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

// Std returns the population standard deviation (n divisor).
// Fewer than two values yield 0.
func Std(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return math.Sqrt(variance(x, float64(len(x))))
}

// StdSample returns the sample standard deviation (n-1 divisor).
// Fewer than two values yield 0.
func StdSample(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return math.Sqrt(variance(x, float64(len(x)-1)))
}

func variance(x []float64, divisor float64) float64 {
	avg := Mean(x)
	sum := 0.0
	for _, v := range x {
		d := v - avg
		sum += d * d
	}
	v := sum / divisor
	if v < 0 {
		return 0
	}
	return v
}

// MaxDrawdown returns the largest fractional decline from a running peak
// to any later point of the series, in [0, 1]. Fewer than two values
// yield 0. Peaks at or below zero are skipped to avoid division by zero.
func MaxDrawdown(nav []float64) float64 {
	if len(nav) < 2 {
		return 0
	}
	maxDD := 0.0
	peak := nav[0]
	for _, v := range nav {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if dd := (peak - v) / peak; dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// Returns converts a price series into simple returns
// (p[i]-p[i-1])/p[i-1]. The result has len(prices)-1 elements;
// fewer than two prices yield nil.
func Returns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	out := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		out = append(out, (prices[i]-prices[i-1])/prices[i-1])
	}
	return out
}

// NAV builds a net asset value series from returns, starting at 1.0.
// The result has len(returns)+1 elements.
func NAV(returns []float64) []float64 {
	nav := make([]float64, 0, len(returns)+1)
	nav = append(nav, 1.0)
	for _, r := range returns {
		nav = append(nav, nav[len(nav)-1]*(1+r))
	}
	return nav
}
