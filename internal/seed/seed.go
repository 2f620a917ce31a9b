// Package seed loads sample accounts and entries from a TOML fixture.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/pelletier/go-toml"
	"github.com/shopspring/decimal"
)

//go:embed default.toml
var defaultFixture []byte

// keyNamespace derives stable idempotency keys for fixture entries that do not
// carry one, so seeding twice on the same day does not duplicate entries.
var keyNamespace = uuid.MustParse("6f1c2a0e-4b7d-4f6a-9a53-1d2b7c9e8f10")

// Fixture is the decoded seed file.
type Fixture struct {
	Accounts []AccountFixture `toml:"accounts"`
	Entries  []EntryFixture   `toml:"entries"`
}

type AccountFixture struct {
	Name     string `toml:"name"`
	Inactive bool   `toml:"inactive"`
}

type EntryFixture struct {
	Key         string `toml:"key"`
	Account     string `toml:"account"`
	Type        string `toml:"type"`
	Amount      string `toml:"amount"`
	Description string `toml:"description"`
	DaysAgo     int    `toml:"days_ago"`
}

// Result counts what a seed run changed.
type Result struct {
	AccountsCreated int
	EntriesCreated  int
	EntriesReplayed int
}

// Default returns the built-in fixture.
func Default() (*Fixture, error) {
	return Parse(defaultFixture)
}

// LoadFile reads a fixture from path.
func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a TOML fixture and checks that every entry names a listed account.
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode seed fixture: %w", err)
	}
	known := make(map[string]bool, len(f.Accounts))
	for _, a := range f.Accounts {
		known[strings.TrimSpace(a.Name)] = true
	}
	for i, e := range f.Entries {
		if !known[strings.TrimSpace(e.Account)] {
			return nil, fmt.Errorf("entry %d references unknown account %q", i, e.Account)
		}
		if _, err := decimal.NewFromString(e.Amount); err != nil {
			return nil, fmt.Errorf("entry %d has invalid amount %q: %w", i, e.Amount, err)
		}
	}
	return &f, nil
}

// Apply creates the fixture's accounts and entries through the services.
// Existing accounts are reused. Inactive accounts are deactivated after the
// entries are written.
func Apply(ctx context.Context, services *portssvc.ServiceContainer, f *Fixture, now time.Time) (Result, error) {
	var res Result

	for _, a := range f.Accounts {
		_, err := services.Account.CreateAccount(ctx, domain.CreateAccountInput{Name: a.Name})
		switch {
		case err == nil:
			res.AccountsCreated++
		case errors.Is(err, apperrors.ErrDuplicateName):
			slog.InfoContext(ctx, "Account already exists, reusing", slog.String("name", a.Name))
		default:
			return res, fmt.Errorf("failed to create account %q: %w", a.Name, err)
		}
	}

	for i, e := range f.Entries {
		date := now.UTC().Truncate(24*time.Hour).AddDate(0, 0, -e.DaysAgo)
		key := e.Key
		if key == "" {
			key = uuid.NewSHA1(keyNamespace, []byte(fmt.Sprintf("%d|%s|%s|%s|%s|%s",
				i, e.Account, e.Type, e.Amount, e.Description, date.Format(time.DateOnly)))).String()
		}
		payload := domain.EntryPayload{
			Account:   e.Account,
			EntryType: domain.EntryType(e.Type),
			Amount:    decimal.RequireFromString(e.Amount),
			Date:      &date,
		}
		if e.Description != "" {
			desc := e.Description
			payload.Description = &desc
		}

		_, replayed, err := services.Idempotency.SubmitCreate(ctx, key, payload)
		if err != nil {
			return res, fmt.Errorf("failed to seed entry %d (%s %s %s): %w", i, e.Type, e.Amount, e.Account, err)
		}
		if replayed {
			res.EntriesReplayed++
		} else {
			res.EntriesCreated++
		}
	}

	for _, a := range f.Accounts {
		if !a.Inactive {
			continue
		}
		account, err := services.Account.Lookup(ctx, a.Name)
		if err != nil {
			return res, err
		}
		if _, err := services.Account.SetActive(ctx, account.AccountID, false); err != nil {
			return res, fmt.Errorf("failed to deactivate account %q: %w", a.Name, err)
		}
	}
	return res, nil
}
