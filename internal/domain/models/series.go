package models

import (
	"github.com/guregu/null/v6"
)

// RawSeries is the provider payload for one symbol as consumed by the metrics engine.
//
// Fields:
//   - Closes: daily closing prices, oldest first. Entries may be null for
//     non-trading days or data gaps. A nil slice means the payload carried no
//     closes array at all, which is a structural error; an empty slice is a
//     valid "no data" series.
//   - Meta: optional point-in-time metadata block.
type RawSeries struct {
	Closes []null.Float `json:"closes"`
	Meta   *SeriesMeta  `json:"meta,omitempty"`
}

// SeriesMeta carries the metadata block returned alongside a close series.
// Every field is optional.
type SeriesMeta struct {
	RegularMarketPrice null.Float  `json:"regularMarketPrice"`
	PreviousClose      null.Float  `json:"previousClose"`
	FiftyTwoWeekHigh   null.Float  `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow    null.Float  `json:"fiftyTwoWeekLow"`
	Currency           null.String `json:"currency"`
	DisplayName        null.String `json:"displayName"`
}

// CleanSeries is the null-free, chronologically ordered view of RawSeries.Closes.
//
// Invariant: every value is finite and Count == len(Values).
type CleanSeries struct {
	Values []float64
	Count  int
}

// Last returns the most recent value and whether one exists.
func (c CleanSeries) Last() (float64, bool) {
	return c.Back(0)
}

// Back returns the value n valid sessions before the latest one.
// Back(0) is the latest value, Back(1) the one before it.
func (c CleanSeries) Back(n int) (float64, bool) {
	idx := c.Count - 1 - n
	if n < 0 || idx < 0 || idx >= len(c.Values) {
		return 0, false
	}
	return c.Values[idx], true
}
