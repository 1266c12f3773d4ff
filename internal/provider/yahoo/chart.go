package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/guregu/null/v6"

	"github.com/guttosm/cycleradar/internal/domain/models"
)

// looseFloat decodes any JSON value. Numbers become valid floats; null,
// strings and other shapes become an invalid (null) float.
type looseFloat struct{ null.Float }

func (f *looseFloat) UnmarshalJSON(b []byte) error {
	var v *float64
	if err := json.Unmarshal(b, &v); err != nil || v == nil {
		f.Float = null.Float{}
		return nil
	}
	f.Float = null.FloatFrom(*v)
	return nil
}

// looseString is the string counterpart of looseFloat.
type looseString struct{ null.String }

func (s *looseString) UnmarshalJSON(b []byte) error {
	var v *string
	if err := json.Unmarshal(b, &v); err != nil || v == nil {
		s.String = null.String{}
		return nil
	}
	s.String = null.StringFrom(*v)
	return nil
}

// chartResponse mirrors the parts of /v8/finance/chart used here.
// Meta fields and close entries decode leniently: a malformed value is
// null, while a missing chart, result or close array is a shape error.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           looseString `json:"currency"`
				ShortName          looseString `json:"shortName"`
				LongName           looseString `json:"longName"`
				RegularMarketPrice looseFloat  `json:"regularMarketPrice"`
				PreviousClose      looseFloat  `json:"previousClose"`
				FiftyTwoWeekHigh   looseFloat  `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow    looseFloat  `json:"fiftyTwoWeekLow"`
			} `json:"meta"`
			Indicators struct {
				Quote []struct {
					Close []looseFloat `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchSeries downloads the daily close series and metadata for symbol.
//
// Errors:
//   - models.ErrTransport: network failure or non-2xx status.
//   - models.ErrInputShape: body is not the expected chart document
//     (provider error object, empty result, missing close array).
func (c *Client) FetchSeries(ctx context.Context, symbol string) (*models.RawSeries, error) {
	q := url.Values{}
	q.Set("interval", c.interval)
	q.Set("range", c.rng)
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, escape(symbol), q.Encode())

	body, err := c.getJSON(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", symbol, err)
	}

	var resp chartResponse
	if err := decode(body, &resp); err != nil {
		return nil, fmt.Errorf("chart %s: %w", symbol, err)
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart %s: %w: provider error %s: %s",
			symbol, models.ErrInputShape, resp.Chart.Error.Code, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("chart %s: %w: empty result", symbol, models.ErrInputShape)
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 || result.Indicators.Quote[0].Close == nil {
		return nil, fmt.Errorf("chart %s: %w: close array missing", symbol, models.ErrInputShape)
	}

	m := result.Meta
	name := m.ShortName.String
	if !name.Valid || name.String == "" {
		name = m.LongName.String
	}

	src := result.Indicators.Quote[0].Close
	closes := make([]null.Float, len(src))
	for i, c := range src {
		closes[i] = c.Float
	}

	return &models.RawSeries{
		Closes: closes,
		Meta: &models.SeriesMeta{
			RegularMarketPrice: m.RegularMarketPrice.Float,
			PreviousClose:      m.PreviousClose.Float,
			FiftyTwoWeekHigh:   m.FiftyTwoWeekHigh.Float,
			FiftyTwoWeekLow:    m.FiftyTwoWeekLow.Float,
			Currency:           m.Currency.String,
			DisplayName:        name,
		},
	}, nil
}
