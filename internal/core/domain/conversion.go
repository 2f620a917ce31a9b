package domain

import (
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DisplayCurrency is the currency entries are converted to for display.
const DisplayCurrency = money.CAD

// RateSnapshot is a USD to CAD rate captured once and applied to every amount in a response.
type RateSnapshot struct {
	Rate      decimal.Decimal `json:"rate"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// Convert multiplies amount by the rate and rounds to the CAD minor unit.
func (r RateSnapshot) Convert(amount decimal.Decimal) decimal.Decimal {
	places := int32(2)
	if c := money.GetCurrency(DisplayCurrency); c != nil {
		places = int32(c.Fraction)
	}
	return amount.Mul(r.Rate).Round(places)
}

// Conversion is the result of a single on-demand conversion.
type Conversion struct {
	AmountUSD decimal.Decimal `json:"amount_usd"`
	AmountCAD decimal.Decimal `json:"amount_cad"`
	RateSnapshot
}
