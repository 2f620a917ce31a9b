package dto

import (
	"strings"
	"time"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest defines the data needed to record a ledger entry.
// The account may be given by id or by name.
type CreateEntryRequest struct {
	AccountID      string           `json:"account_id"`
	AccountName    string           `json:"account_name"`
	EntryType      string           `json:"entry_type" binding:"required"`
	Amount         *decimal.Decimal `json:"amount" binding:"required"`
	Currency       string           `json:"currency"`
	Description    *string          `json:"description"`
	Date           string           `json:"date"`
	IdempotencyKey string           `json:"idempotency_key"` // Used when the Idempotency-Key header is absent
}

// ToPayload converts the request into the core payload.
func (r CreateEntryRequest) ToPayload() (domain.EntryPayload, error) {
	account := strings.TrimSpace(r.AccountID)
	if account == "" {
		account = strings.TrimSpace(r.AccountName)
	}
	if account == "" {
		return domain.EntryPayload{}, apperrors.NewValidationError("account_id or account_name is required")
	}
	date, err := ParseDate("date", r.Date, false)
	if err != nil {
		return domain.EntryPayload{}, err
	}
	return domain.EntryPayload{
		Account:     account,
		EntryType:   domain.EntryType(r.EntryType),
		Amount:      *r.Amount,
		Currency:    r.Currency,
		Description: r.Description,
		Date:        date,
	}, nil
}

// UpdateEntryRequest carries a partial update. Only amount and description may
// change; the other fields are accepted so that attempts to change them are rejected.
type UpdateEntryRequest struct {
	ExpectedVersion *int             `json:"expected_version"`
	Amount          *decimal.Decimal `json:"amount"`
	Description     *string          `json:"description"`
	EntryType       *string          `json:"entry_type"`
	AccountID       *string          `json:"account_id"`
	Currency        *string          `json:"currency"`
	Date            *string          `json:"date"`
}

// ToInput converts the request into the core update input.
func (r UpdateEntryRequest) ToInput() (domain.UpdateEntryInput, error) {
	in := domain.UpdateEntryInput{
		ExpectedVersion: r.ExpectedVersion,
		Amount:          r.Amount,
		Description:     r.Description,
		AccountID:       r.AccountID,
		Currency:        r.Currency,
	}
	if r.EntryType != nil {
		t := domain.EntryType(*r.EntryType)
		in.EntryType = &t
	}
	if r.Date != nil {
		date, err := ParseDate("date", *r.Date, false)
		if err != nil {
			return in, err
		}
		in.Date = date
	}
	return in, nil
}

// DeleteEntryRequest optionally carries the expected version in the body.
type DeleteEntryRequest struct {
	ExpectedVersion *int `json:"expected_version"`
}

// ListEntriesParams defines query parameters for listing entries and summaries.
type ListEntriesParams struct {
	AccountName string `form:"account_name"`
	Currency    string `form:"currency"`
	EntryType   string `form:"entry_type"`
	StartDate   string `form:"start_date"`
	EndDate     string `form:"end_date"`
	Limit       int    `form:"limit"`
	NextToken   string `form:"next_token"`
}

// ToFilter converts query parameters into an entry filter.
func (p ListEntriesParams) ToFilter() (domain.EntryFilter, error) {
	start, err := ParseDate("start_date", p.StartDate, false)
	if err != nil {
		return domain.EntryFilter{}, err
	}
	end, err := ParseDate("end_date", p.EndDate, true)
	if err != nil {
		return domain.EntryFilter{}, err
	}
	f := domain.EntryFilter{
		AccountName: strings.TrimSpace(p.AccountName),
		Currency:    p.Currency,
		EntryType:   domain.EntryType(p.EntryType),
		StartDate:   start,
		EndDate:     end,
		Limit:       p.Limit,
	}
	if p.NextToken != "" {
		token := p.NextToken
		f.NextToken = &token
	}
	return f, nil
}

// EntryResponse defines the data returned for a ledger entry.
type EntryResponse struct {
	ID             string    `json:"id"`
	AccountID      string    `json:"account_id"`
	AccountName    string    `json:"account_name"`
	EntryType      string    `json:"entry_type"`
	Amount         string    `json:"amount"`
	Currency       string    `json:"currency"`
	CanadianAmount *string   `json:"canadian_amount"` // null when no rate was available
	Description    *string   `json:"description"`
	Date           time.Time `json:"date"`
	Version        int       `json:"version"`
	IsDeleted      bool      `json:"is_deleted"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ListEntriesResponse is one page of entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	Total     int             `json:"total"`
	Limit     int             `json:"limit"`
	NextToken *string         `json:"next_token,omitempty"`
}

// DeleteEntryResponse confirms a soft delete.
type DeleteEntryResponse struct {
	ID        string    `json:"id"`
	IsDeleted bool      `json:"is_deleted"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToEntryResponse converts a decorated entry to its response DTO.
func ToEntryResponse(v *domain.LedgerEntryView) EntryResponse {
	resp := EntryResponse{
		ID:          v.EntryID,
		AccountID:   v.AccountID,
		AccountName: v.AccountName,
		EntryType:   string(v.EntryType),
		Amount:      v.Amount.StringFixed(domain.AmountScale),
		Currency:    v.Currency,
		Description: v.Description,
		Date:        v.Date,
		Version:     v.Version,
		IsDeleted:   v.IsDeleted,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
	if v.CanadianAmount != nil {
		cad := v.CanadianAmount.StringFixed(domain.AmountScale)
		resp.CanadianAmount = &cad
	}
	return resp
}

// ToListEntriesResponse converts a page of decorated entries.
func ToListEntriesResponse(views []domain.LedgerEntryView, page *domain.EntryPage, limit int) ListEntriesResponse {
	entries := make([]EntryResponse, len(views))
	for i := range views {
		entries[i] = ToEntryResponse(&views[i])
	}
	return ListEntriesResponse{
		Entries:   entries,
		Total:     page.Total,
		Limit:     limit,
		NextToken: page.NextToken,
	}
}

func ToDeleteEntryResponse(d *domain.DeletedEntry) DeleteEntryResponse {
	return DeleteEntryResponse{
		ID:        d.EntryID,
		IsDeleted: d.IsDeleted,
		Version:   d.Version,
		UpdatedAt: d.UpdatedAt,
	}
}
