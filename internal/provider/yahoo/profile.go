package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/guttosm/cycleradar/internal/domain/models"
)

const (
	profileModules = "summaryProfile,summaryDetail,price,assetProfile"

	fallbackDescription = "No detailed description available."
	fallbackSector      = "ETF/Fund"
	fallbackIndustry    = "Investment vehicle"
	fallbackCurrency    = "$"
)

// formatted is the {raw, fmt} pair the quoteSummary API uses for numbers.
type formatted struct {
	Fmt string `json:"fmt"`
}

type profileBlock struct {
	LongBusinessSummary string `json:"longBusinessSummary"`
	Sector              string `json:"sector"`
	Industry            string `json:"industry"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			SummaryProfile *profileBlock `json:"summaryProfile"`
			AssetProfile   *profileBlock `json:"assetProfile"`
			Price          *struct {
				ShortName          string     `json:"shortName"`
				LongName           string     `json:"longName"`
				CurrencySymbol     string     `json:"currencySymbol"`
				RegularMarketPrice *formatted `json:"regularMarketPrice"`
				MarketCap          *formatted `json:"marketCap"`
			} `json:"price"`
			SummaryDetail *struct {
				TrailingPE       *formatted `json:"trailingPE"`
				DividendYield    *formatted `json:"dividendYield"`
				Yield            *formatted `json:"yield"`
				TotalAssets      *formatted `json:"totalAssets"`
				FiftyTwoWeekHigh *formatted `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow  *formatted `json:"fiftyTwoWeekLow"`
			} `json:"summaryDetail"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// FetchProfile downloads descriptive detail for symbol.
//
// Funds usually lack summaryProfile; assetProfile is used instead, and fund
// total assets stand in for market cap.
func (c *Client) FetchProfile(ctx context.Context, symbol string) (*models.QuoteProfile, error) {
	q := url.Values{}
	q.Set("modules", profileModules)
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", c.baseURL, escape(symbol), q.Encode())

	body, err := c.getJSON(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", symbol, err)
	}

	var resp quoteSummaryResponse
	if err := decode(body, &resp); err != nil {
		return nil, fmt.Errorf("profile %s: %w", symbol, err)
	}
	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("profile %s: %w: provider error %s: %s",
			symbol, models.ErrInputShape, resp.QuoteSummary.Error.Code, resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("profile %s: %w: empty result", symbol, models.ErrInputShape)
	}
	r := resp.QuoteSummary.Result[0]

	profile := r.SummaryProfile
	if profile == nil {
		profile = r.AssetProfile
	}
	if profile == nil {
		profile = &profileBlock{}
	}

	out := &models.QuoteProfile{
		Symbol:        symbol,
		Name:          symbol,
		Description:   firstNonEmpty(profile.LongBusinessSummary, fallbackDescription),
		Sector:        firstNonEmpty(profile.Sector, fallbackSector),
		Industry:      firstNonEmpty(profile.Industry, fallbackIndustry),
		CurrentPrice:  models.Placeholder,
		Currency:      fallbackCurrency,
		MarketCap:     models.Placeholder,
		PERatio:       models.Placeholder,
		DividendYield: models.Placeholder,
		High52:        models.Placeholder,
		Low52:         models.Placeholder,
	}

	if p := r.Price; p != nil {
		out.Name = firstNonEmpty(p.ShortName, p.LongName, symbol)
		out.Currency = firstNonEmpty(p.CurrencySymbol, fallbackCurrency)
		out.CurrentPrice = fmtOr(p.RegularMarketPrice)
		out.MarketCap = fmtOr(p.MarketCap)
	}
	if d := r.SummaryDetail; d != nil {
		if out.MarketCap == models.Placeholder {
			out.MarketCap = fmtOr(d.TotalAssets)
		}
		out.PERatio = fmtOr(d.TrailingPE)
		out.DividendYield = fmtOr(d.DividendYield)
		if out.DividendYield == models.Placeholder {
			out.DividendYield = fmtOr(d.Yield)
		}
		out.High52 = fmtOr(d.FiftyTwoWeekHigh)
		out.Low52 = fmtOr(d.FiftyTwoWeekLow)
	}

	return out, nil
}

func fmtOr(f *formatted) string {
	if f == nil || strings.TrimSpace(f.Fmt) == "" {
		return models.Placeholder
	}
	return f.Fmt
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
