package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/SscSPs/general_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// DefaultTreasuryURL returns the latest Canada-Dollar record of the U.S. Treasury
// Fiscal Data "rates of exchange" dataset, expressed in CAD per USD.
const DefaultTreasuryURL = "https://api.fiscaldata.treasury.gov/services/api/fiscal_service/v1/accounting/od/" +
	"rates_of_exchange?fields=country_currency_desc,exchange_rate,record_date" +
	"&filter=country_currency_desc:eq:Canada-Dollar" +
	"&sort=-record_date&page[size]=1"

const treasuryRatePath = "$.data[0].exchange_rate"

// TreasuryRateProvider fetches the USD to CAD rate over HTTP.
type TreasuryRateProvider struct {
	client  *http.Client
	url     string
	timeout time.Duration
	limiter *rate.Limiter
}

var _ portsrepo.RateProvider = (*TreasuryRateProvider)(nil)

// NewTreasuryRateProvider builds a provider that spends at most timeout per call
// and issues no more than maxRPS requests per second (unlimited when <= 0).
func NewTreasuryRateProvider(url string, timeout time.Duration, maxRPS float64) *TreasuryRateProvider {
	if url == "" {
		url = DefaultTreasuryURL
	}
	limit := rate.Inf
	if maxRPS > 0 {
		limit = rate.Limit(maxRPS)
	}
	return &TreasuryRateProvider{
		client:  &http.Client{},
		url:     url,
		timeout: timeout,
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (p *TreasuryRateProvider) USDToCAD(ctx context.Context) (decimal.Decimal, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return decimal.Zero, unavailable("rate limiter: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return decimal.Zero, unavailable("building request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return decimal.Zero, unavailable("treasury request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decimal.Zero, unavailable("treasury returned status %d", resp.StatusCode)
	}

	var doc any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return decimal.Zero, unavailable("decoding treasury response: %v", err)
	}
	return extractRate(doc)
}

func extractRate(doc any) (decimal.Decimal, error) {
	val, err := jsonpath.Get(treasuryRatePath, doc)
	if err != nil {
		return decimal.Zero, unavailable("no exchange rate at %s: %v", treasuryRatePath, err)
	}
	// jsonpath may wrap a single answer in a list
	if list, ok := val.([]any); ok {
		if len(list) == 0 {
			return decimal.Zero, unavailable("no exchange rate at %s", treasuryRatePath)
		}
		val = list[0]
	}

	var r decimal.Decimal
	switch v := val.(type) {
	case string:
		r, err = decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, unavailable("parsing exchange rate %q: %v", v, err)
		}
	case float64:
		r = decimal.NewFromFloat(v)
	default:
		return decimal.Zero, unavailable("unexpected exchange rate value %v", val)
	}
	if !r.IsPositive() {
		return decimal.Zero, unavailable("non-positive exchange rate %s", r)
	}
	return r, nil
}

func unavailable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", apperrors.ErrConversionUnavailable, fmt.Sprintf(format, args...))
}
