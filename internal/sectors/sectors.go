package sectors

import (
	_ "embed"
	"fmt"
	"math"

	"github.com/guregu/null/v6"
	"gopkg.in/yaml.v3"

	"github.com/guttosm/cycleradar/internal/domain/models"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Temperature buckets derived from a sector's lead ETF drawdown.
const (
	Hot     = "hot"
	Warm    = "warm"
	Cold    = "cold"
	Unknown = "unknown"

	hotBelow  = 5.0
	coldAbove = 15.0
)

// ETF is one tracking fund of a sector.
type ETF struct {
	Symbol string `yaml:"symbol" json:"symbol" example:"GLD"`
	Name   string `yaml:"name" json:"name" example:"SPDR黄金ETF"`
}

// Sector is one link of the transmission chain.
type Sector struct {
	ID          string `yaml:"id" json:"id" example:"monetary"`
	Name        string `yaml:"name" json:"name" example:"货币/避险"`
	NameEn      string `yaml:"name_en" json:"nameEn" example:"Monetary & Safe Haven"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon" example:"🛡️"`
	Color       string `yaml:"color" json:"color" example:"#fbbf24"`
	ETFs        []ETF  `yaml:"etfs" json:"etfs"`
}

// LeadETF returns the first ETF symbol, used for the sector temperature.
func (s Sector) LeadETF() string {
	if len(s.ETFs) == 0 {
		return ""
	}
	return s.ETFs[0].Symbol
}

// Catalog is the static sector configuration plus the default watchlist.
type Catalog struct {
	Version          string              `yaml:"version"`
	Sectors          []Sector            `yaml:"sectors"`
	DefaultWatchlist map[string][]string `yaml:"default_watchlist"`
	Labels           map[string]string   `yaml:"labels"`

	byID map[string]int
}

// Load parses a catalog document and validates it.
func Load(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(c.Sectors) == 0 {
		return nil, fmt.Errorf("catalog: no sectors defined")
	}
	if c.Version == "" {
		return nil, fmt.Errorf("catalog: version is required")
	}

	c.byID = make(map[string]int, len(c.Sectors))
	for i, s := range c.Sectors {
		if s.ID == "" {
			return nil, fmt.Errorf("catalog: sector %d has no id", i)
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate sector %q", s.ID)
		}
		c.byID[s.ID] = i
	}
	for id := range c.DefaultWatchlist {
		if _, ok := c.byID[id]; !ok {
			return nil, fmt.Errorf("catalog: default watchlist references unknown sector %q", id)
		}
	}
	return &c, nil
}

// Default returns the embedded catalog. It panics if the embedded document is broken.
func Default() *Catalog {
	c, err := Load(catalogYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// ByID looks a sector up by id.
func (c *Catalog) ByID(id string) (Sector, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Sector{}, false
	}
	return c.Sectors[i], true
}

// Has reports whether id names a sector.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// IDs returns sector ids in chain order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.Sectors))
	for i, s := range c.Sectors {
		ids[i] = s.ID
	}
	return ids
}

// AllETFSymbols returns every sector ETF in chain order.
func (c *Catalog) AllETFSymbols() []string {
	var out []string
	for _, s := range c.Sectors {
		for _, e := range s.ETFs {
			out = append(out, e.Symbol)
		}
	}
	return models.NormalizeSymbols(out)
}

// Defaults returns a deep copy of the default watchlist.
func (c *Catalog) Defaults() map[string][]string {
	out := make(map[string][]string, len(c.DefaultWatchlist))
	for id, syms := range c.DefaultWatchlist {
		out[id] = append([]string(nil), syms...)
	}
	return out
}

// Label returns the local label for symbol, falling back to fallback and then to symbol.
func (c *Catalog) Label(symbol, fallback string) string {
	if l, ok := c.Labels[symbol]; ok && l != "" {
		return l
	}
	if fallback != "" {
		return fallback
	}
	return symbol
}

// Temperature buckets a drawdown: near the high is hot, deep below it is cold.
func Temperature(drawdown null.Float) string {
	if !drawdown.Valid || math.IsNaN(drawdown.Float64) || math.IsInf(drawdown.Float64, 0) {
		return Unknown
	}
	dd := math.Abs(drawdown.Float64)
	switch {
	case dd < hotBelow:
		return Hot
	case dd > coldAbove:
		return Cold
	default:
		return Warm
	}
}
