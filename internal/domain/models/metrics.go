package models

import (
	"time"

	"github.com/guregu/null/v6"
)

// MetricsRecord is the derived view of one symbol for one refresh cycle.
//
// Every numeric field is either a finite number or null. Null means the
// value could not be computed from the inputs at hand; it is never an error.
// If Price is null, every change and drawdown field is null as well.
//
// Records are created fresh per cycle and replaced, never mutated in place.
//
// swagger:model MetricsRecord
type MetricsRecord struct {
	Symbol             string      `json:"symbol" example:"GLD"`
	DisplayName        null.String `json:"displayName" swaggertype:"string" example:"SPDR Gold Shares"`
	Price              null.Float  `json:"price" swaggertype:"number" example:"231.4"`
	DayChange          null.Float  `json:"dayChange" swaggertype:"number" example:"1.2"`
	DayChangePercent   null.Float  `json:"dayChangePercent" swaggertype:"number" example:"0.52"`
	WeekChangePercent  null.Float  `json:"weekChangePercent" swaggertype:"number" example:"2.1"`
	MonthChangePercent null.Float  `json:"monthChangePercent" swaggertype:"number" example:"-3.4"`
	High52             null.Float  `json:"high52" swaggertype:"number" example:"240.1"`
	Low52              null.Float  `json:"low52" swaggertype:"number" example:"180.7"`
	Drawdown           null.Float  `json:"drawdown" swaggertype:"number" example:"-3.62"`
	Currency           null.String `json:"currency" swaggertype:"string" example:"USD"`
	LastUpdated        time.Time   `json:"lastUpdated"`
}

// HasPrice reports whether a current price could be resolved.
func (r MetricsRecord) HasPrice() bool {
	return r.Price.Valid
}
