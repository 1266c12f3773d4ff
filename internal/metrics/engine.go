package metrics

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/guregu/null/v6"

	"github.com/guttosm/cycleradar/internal/domain/models"
)

const (
	// WeekLag is the number of valid sessions between the latest close and
	// the week-change reference close.
	WeekLag = 5
	// MonthLag is the number of valid sessions between the latest close and
	// the month-change reference close.
	MonthLag = 21
)

// Compute derives a MetricsRecord for one symbol from its raw series.
//
// Resolution order (fixed, each step may depend on the previous ones):
//  1. price: meta.regularMarketPrice, else latest clean close.
//  2. previous close: meta.previousClose, else second-to-last clean close.
//  3. day change and percent; null when previous close is null or zero.
//  4. week change vs. the close WeekLag sessions before the series' latest.
//  5. month change vs. the close MonthLag sessions before the series' latest.
//  6. 52-week high/low: metadata, else max/min of the clean series.
//  7. drawdown of price from the 52-week high, signed.
//
// A record with a null price has every numeric field null. The only error is
// models.ErrInputShape, returned when raw is structurally invalid.
func Compute(symbol string, raw *models.RawSeries, now time.Time) (models.MetricsRecord, error) {
	if err := validate(symbol, raw); err != nil {
		return models.MetricsRecord{}, err
	}

	meta := raw.Meta
	if meta == nil {
		meta = &models.SeriesMeta{}
	}

	rec := models.MetricsRecord{
		Symbol:      symbol,
		DisplayName: nonBlank(meta.DisplayName),
		Currency:    nonBlank(meta.Currency),
		LastUpdated: now,
	}

	clean := Normalize(raw.Closes)

	// 1. Current price
	price, ok := finite(meta.RegularMarketPrice)
	if !ok {
		price, ok = clean.Last()
	}
	if !ok {
		return rec, nil
	}
	rec.Price = null.FloatFrom(price)

	// 2. Previous close
	prev, hasPrev := finite(meta.PreviousClose)
	if !hasPrev {
		prev, hasPrev = clean.Back(1)
	}

	// 3. Day change
	if hasPrev && prev != 0 {
		rec.DayChange = guard(price - prev)
		rec.DayChangePercent = percentChange(price, prev)
	}

	// 4. Week change
	if ref, ok := clean.Back(WeekLag); ok {
		rec.WeekChangePercent = percentChange(price, ref)
	}

	// 5. Month change
	if ref, ok := clean.Back(MonthLag); ok {
		rec.MonthChangePercent = percentChange(price, ref)
	}

	// 6. 52-week extrema
	hi, lo := extrema(clean)
	if v, ok := finite(meta.FiftyTwoWeekHigh); ok {
		hi = null.FloatFrom(v)
	}
	if v, ok := finite(meta.FiftyTwoWeekLow); ok {
		lo = null.FloatFrom(v)
	}
	rec.High52 = hi
	rec.Low52 = lo

	// 7. Drawdown (sign is meaningful, no clamping)
	if hi.Valid {
		rec.Drawdown = percentChange(price, hi.Float64)
	}

	return rec, nil
}

func validate(symbol string, raw *models.RawSeries) error {
	if strings.TrimSpace(symbol) == "" {
		return fmt.Errorf("%w: empty symbol", models.ErrInputShape)
	}
	if raw == nil {
		return fmt.Errorf("%w: %s: nil series", models.ErrInputShape, symbol)
	}
	if raw.Closes == nil {
		return fmt.Errorf("%w: %s: closes array missing", models.ErrInputShape, symbol)
	}
	return nil
}

// percentChange returns (v-ref)/ref*100, or null when ref is zero.
func percentChange(v, ref float64) null.Float {
	if ref == 0 {
		return null.Float{}
	}
	return guard((v - ref) / ref * 100)
}

// guard keeps NaN and ±Inf out of records.
func guard(v float64) null.Float {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return null.Float{}
	}
	return null.FloatFrom(v)
}

func extrema(clean models.CleanSeries) (hi, lo null.Float) {
	if clean.Count == 0 {
		return null.Float{}, null.Float{}
	}
	h, l := clean.Values[0], clean.Values[0]
	for _, v := range clean.Values[1:] {
		if v > h {
			h = v
		}
		if v < l {
			l = v
		}
	}
	return null.FloatFrom(h), null.FloatFrom(l)
}

func nonBlank(s null.String) null.String {
	if !s.Valid || strings.TrimSpace(s.String) == "" {
		return null.String{}
	}
	return s
}
