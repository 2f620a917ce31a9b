package pgsql

import (
	"errors"
	"fmt"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	constraintAccountName         = "uq_accounts_name"
	constraintEntryIdempotencyKey = "uq_ledger_entries_idempotency_key"
)

// translateError maps driver errors onto the application's error kinds.
// subject names the row involved, e.g. "account Cash".
func translateError(err error, subject string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFoundError(subject)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			switch pgErr.ConstraintName {
			case constraintAccountName:
				return fmt.Errorf("%w: %s", apperrors.ErrDuplicateName, subject)
			case constraintEntryIdempotencyKey:
				return fmt.Errorf("%w: %s", apperrors.ErrDuplicateIdempotencyKey, subject)
			}
		case pgForeignKeyViolation:
			return apperrors.NewNotFoundError(subject)
		}
	}
	return fmt.Errorf("database error for %s: %w", subject, err)
}
