package dto

import (
	"time"

	"github.com/SscSPs/general_ledger/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name     string `json:"name" binding:"required"`
	IsActive *bool  `json:"is_active"` // Optional, defaults to true
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name     *string `json:"name"`      // Optional: New name
	IsActive *bool   `json:"is_active"` // Optional: New active status
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (r CreateAccountRequest) ToInput() domain.CreateAccountInput {
	return domain.CreateAccountInput{Name: r.Name, IsActive: r.IsActive}
}

func (r UpdateAccountRequest) ToInput() domain.UpdateAccountInput {
	return domain.UpdateAccountInput{Name: r.Name, IsActive: r.IsActive}
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        acc.AccountID,
		Name:      acc.Name,
		IsActive:  acc.IsActive,
		CreatedAt: acc.CreatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
