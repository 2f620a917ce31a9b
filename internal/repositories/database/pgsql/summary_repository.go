package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/general_ledger/internal/models"
	"github.com/SscSPs/general_ledger/internal/utils/mapping"
)

type PgxSummaryRepository struct {
	BaseRepository
}

func newPgxSummaryRepository(pool DBPool) *PgxSummaryRepository {
	return &PgxSummaryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SummaryReader = (*PgxSummaryRepository)(nil)

// TotalsByEntryType counts and sums non-deleted entries per type in the database.
func (r *PgxSummaryRepository) TotalsByEntryType(ctx context.Context, filter domain.EntryFilter) ([]domain.EntryTypeTotal, error) {
	where := entryFilterWhere(filter)
	query := `
		SELECT e.entry_type, COUNT(*) AS num_entries, COALESCE(SUM(e.amount), 0) AS total_amount
		FROM ledger_entries e
		JOIN accounts a ON a.account_id = e.account_id
		` + where.String() + `
		GROUP BY e.entry_type;
	`
	rows, err := r.Pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ledger entries: %w", err)
	}
	defer rows.Close()

	totals := make([]models.EntryTypeTotal, 0, 2)
	for rows.Next() {
		var m models.EntryTypeTotal
		if err := rows.Scan(&m.EntryType, &m.Count, &m.Total); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		totals = append(totals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating summary rows: %w", err)
	}
	return mapping.ToDomainEntryTypeTotals(totals), nil
}
