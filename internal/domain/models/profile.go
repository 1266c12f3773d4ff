package models

// QuoteProfile is the descriptive detail shown for a single symbol.
//
// Numeric values are kept as the provider's pre-formatted strings; a missing
// value is rendered as Placeholder. Unavailable is set when the provider could
// not be reached and the profile is a placeholder.
//
// swagger:model QuoteProfile
type QuoteProfile struct {
	Symbol        string `json:"symbol" example:"XLE"`
	Name          string `json:"name" example:"Energy Select Sector SPDR Fund"`
	Description   string `json:"description"`
	Sector        string `json:"sector" example:"Energy"`
	Industry      string `json:"industry" example:"Oil & Gas Integrated"`
	CurrentPrice  string `json:"currentPrice" example:"91.20"`
	Currency      string `json:"currency" example:"$"`
	MarketCap     string `json:"marketCap" example:"35.2B"`
	PERatio       string `json:"peRatio" example:"14.10"`
	DividendYield string `json:"dividendYield" example:"3.21%"`
	High52        string `json:"high52" example:"98.97"`
	Low52         string `json:"low52" example:"80.10"`
	Unavailable   bool   `json:"error,omitempty"`
}

// Placeholder is the display value for a field the provider did not supply.
const Placeholder = "—"

// UnavailableProfile is served when the provider cannot be reached, so the
// detail view still has something to render.
func UnavailableProfile(symbol string) *QuoteProfile {
	return &QuoteProfile{
		Symbol:        symbol,
		Name:          symbol,
		Description:   "Detailed data for this symbol is temporarily unavailable. Please retry later.",
		CurrentPrice:  Placeholder,
		MarketCap:     Placeholder,
		PERatio:       Placeholder,
		DividendYield: Placeholder,
		High52:        Placeholder,
		Low52:         Placeholder,
		Unavailable:   true,
	}
}
