package rates

import (
	"context"

	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// FixedRateProvider always answers with the configured rate.
type FixedRateProvider struct {
	rate decimal.Decimal
}

var _ portsrepo.RateProvider = FixedRateProvider{}

func NewFixedRateProvider(rate decimal.Decimal) FixedRateProvider {
	return FixedRateProvider{rate: rate}
}

func (p FixedRateProvider) USDToCAD(context.Context) (decimal.Decimal, error) {
	if !p.rate.IsPositive() {
		return decimal.Zero, unavailable("no fixed rate configured")
	}
	return p.rate, nil
}
