package pgsql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/general_ledger/internal/core/domain"
)

// whereBuilder accumulates AND-ed conditions with positional arguments.
type whereBuilder struct {
	clauses []string
	args    []any
}

// add appends a condition; format receives the placeholder for arg via %s.
func (w *whereBuilder) add(format string, arg any) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, fmt.Sprintf(format, w.next()))
}

func (w *whereBuilder) next() string {
	return "$" + strconv.Itoa(len(w.args))
}

func (w *whereBuilder) String() string {
	return "WHERE " + strings.Join(w.clauses, " AND ")
}

// entryFilterWhere builds the shared List/Summarize conditions over
// ledger_entries e joined with accounts a. Deleted entries are always excluded.
func entryFilterWhere(f domain.EntryFilter) *whereBuilder {
	w := &whereBuilder{clauses: []string{"e.is_deleted = FALSE"}}
	if f.AccountName != "" {
		w.add("a.name = %s", f.AccountName)
	}
	if f.Currency != "" {
		w.add("e.currency = %s", f.Currency)
	}
	if f.EntryType != "" {
		w.add("e.entry_type = %s", string(f.EntryType))
	}
	if f.StartDate != nil {
		w.add("e.date >= %s", *f.StartDate)
	}
	if f.EndDate != nil {
		w.add("e.date <= %s", *f.EndDate)
	}
	return w
}
