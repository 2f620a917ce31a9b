package dto

import (
	"time"

	"github.com/SscSPs/general_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummaryResponse reports live debit and credit totals.
type SummaryResponse struct {
	NumDebits         int    `json:"num_debits"`
	TotalDebitAmount  string `json:"total_debit_amount"`
	NumCredits        int    `json:"num_credits"`
	TotalCreditAmount string `json:"total_credit_amount"`
	IsBalanced        bool   `json:"is_balanced"`
}

func ToSummaryResponse(s *domain.LedgerSummary) SummaryResponse {
	return SummaryResponse{
		NumDebits:         s.NumDebits,
		TotalDebitAmount:  s.TotalDebitAmount.StringFixed(domain.AmountScale),
		NumCredits:        s.NumCredits,
		TotalCreditAmount: s.TotalCreditAmount.StringFixed(domain.AmountScale),
		IsBalanced:        s.IsBalanced,
	}
}

// ConversionParams defines the query for a one-off conversion.
type ConversionParams struct {
	Amount string `form:"amount" binding:"required"`
}

// ConversionResponse is a single USD to CAD conversion.
type ConversionResponse struct {
	AmountUSD string          `json:"amount_usd"`
	AmountCAD string          `json:"amount_cad"`
	Rate      decimal.Decimal `json:"rate"`
	FetchedAt time.Time       `json:"fetched_at"`
}

func ToConversionResponse(c *domain.Conversion) ConversionResponse {
	return ConversionResponse{
		AmountUSD: c.AmountUSD.StringFixed(domain.AmountScale),
		AmountCAD: c.AmountCAD.StringFixed(domain.AmountScale),
		Rate:      c.Rate,
		FetchedAt: c.FetchedAt,
	}
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}
