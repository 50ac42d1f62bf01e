package report

import (
	"fmt"
	"io"

	"stock-data/internal/stats"
)

// PerfSummary holds the basic performance metrics of a close-price series.
type PerfSummary struct {
	TradingDays     int     `json:"trading_days"`
	MeanDailyReturn float64 `json:"mean_daily_return"`
	Volatility      float64 `json:"volatility"`
	FinalNAV        float64 `json:"final_nav"`
	TotalReturn     float64 `json:"total_return"`
	MaxDrawdown     float64 `json:"max_drawdown"`
}

// Perf derives returns and a NAV series (starting at 1.0) from closes and
// summarizes them. Volatility is the population standard deviation of the
// daily returns. Fewer than two closes yield a zero summary.
func Perf(closes []float64) PerfSummary {
	returns := stats.Returns(closes)
	if returns == nil {
		return PerfSummary{FinalNAV: 1, TradingDays: 0}
	}
	nav := stats.NAV(returns)
	final := nav[len(nav)-1]
	return PerfSummary{
		TradingDays:     len(returns),
		MeanDailyReturn: stats.Mean(returns),
		Volatility:      stats.Std(returns),
		FinalNAV:        final,
		TotalReturn:     final - 1,
		MaxDrawdown:     stats.MaxDrawdown(nav),
	}
}

// RenderPerf writes the performance summary as text.
func RenderPerf(w io.Writer, s PerfSummary) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, "BASIC PERFORMANCE REPORT")
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, "  trading days:      %d\n", s.TradingDays)
	fmt.Fprintf(w, "  mean daily return: %.4f%%\n", s.MeanDailyReturn*100)
	fmt.Fprintf(w, "  volatility:        %.4f%%\n", s.Volatility*100)
	fmt.Fprintf(w, "  final NAV:         %.4f\n", s.FinalNAV)
	fmt.Fprintf(w, "  total return:      %.2f%%\n", s.TotalReturn*100)
	fmt.Fprintf(w, "  max drawdown:      %.2f%%\n", s.MaxDrawdown*100)
	fmt.Fprintln(w, "==================================================")
}
