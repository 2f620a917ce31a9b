package repositories

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateProvider supplies the current USD to CAD rate. Failures must wrap
// apperrors.ErrConversionUnavailable.
type RateProvider interface {
	USDToCAD(ctx context.Context) (decimal.Decimal, error)
}
