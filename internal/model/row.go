package model

import "time"

// Row is one processed daily OHLCV record with derived features.
// Shared by the processor and the savers (csv, parquet, json).
// Derived fields are nil while their rolling window is not yet populated;
// savers must preserve that as a null, not a zero.
type Row struct {
	Date        time.Time `json:"date" parquet:"date"`
	Open        float64   `json:"open" parquet:"open"`
	High        float64   `json:"high" parquet:"high"`
	Low         float64   `json:"low" parquet:"low"`
	Close       float64   `json:"close" parquet:"close"`
	Volume      float64   `json:"volume" parquet:"volume"`
	DailyReturn *float64  `json:"daily_return,omitempty" parquet:"daily_return,optional"`
	MA5         *float64  `json:"MA5,omitempty" parquet:"MA5,optional"`
	MA20        *float64  `json:"MA20,omitempty" parquet:"MA20,optional"`
	Vol20       *float64  `json:"Vol_20,omitempty" parquet:"Vol_20,optional"`
}

// Columns is the serialized column order for row-oriented formats.
var Columns = []string{
	"date", "open", "high", "low", "close", "volume",
	"daily_return", "MA5", "MA20", "Vol_20",
}
