package models

import "time"

// Account is a row of the accounts table.
type Account struct {
	AccountID string    `db:"account_id"`
	Name      string    `db:"name"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
}
