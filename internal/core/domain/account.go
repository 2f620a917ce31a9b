package domain

import "time"

// MaxAccountNameLength mirrors the width of accounts.name.
const MaxAccountNameLength = 100

// Account is a named bucket that ledger entries are recorded against.
// Accounts are never physically deleted; IsActive governs whether new entries may
// reference them.
type Account struct {
	AccountID string    `json:"id"`         // Primary Key (UUID)
	Name      string    `json:"name"`       // Unique across active and inactive accounts
	IsActive  bool      `json:"is_active"`  // Only active accounts accept new entries
	CreatedAt time.Time `json:"created_at"` // Immutable
}

// CreateAccountInput is the validated input for creating an account.
type CreateAccountInput struct {
	Name     string `validate:"required,max=100"`
	IsActive *bool
}

// UpdateAccountInput carries an optional rename and an optional status toggle.
type UpdateAccountInput struct {
	Name     *string `validate:"omitempty,min=1,max=100"`
	IsActive *bool
}
