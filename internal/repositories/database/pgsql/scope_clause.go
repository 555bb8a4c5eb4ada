package pgsql

import (
	"fmt"
	"strings"

	"github.com/SscSPs/property_ledger/internal/core/domain"
)

// scopeColumns names the columns an access scope is matched against.
// An empty ID column means the table cannot be reached through RowIDs.
type scopeColumns struct {
	Building  string
	CreatedBy string
	ID        string
}

// scopeClause renders scope as a boolean SQL expression, appending its
// parameters to args. A restricted scope with nothing to match renders as
// FALSE so an owner without buildings never sees every row.
func scopeClause(scope domain.AccessScope, cols scopeColumns, args []any) (string, []any) {
	if scope.Unrestricted {
		return "TRUE", args
	}

	var parts []string
	if len(scope.BuildingIDs) > 0 && cols.Building != "" {
		args = append(args, scope.BuildingIDs)
		parts = append(parts, fmt.Sprintf("%s = ANY($%d)", cols.Building, len(args)))
	}
	if scope.CreatedBy != "" && cols.CreatedBy != "" {
		args = append(args, scope.CreatedBy)
		parts = append(parts, fmt.Sprintf("%s = $%d", cols.CreatedBy, len(args)))
	}
	if len(scope.RowIDs) > 0 && cols.ID != "" {
		args = append(args, scope.RowIDs)
		parts = append(parts, fmt.Sprintf("%s = ANY($%d)", cols.ID, len(args)))
	}

	if len(parts) == 0 {
		return "FALSE", args
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// whereBuilder accumulates AND-ed conditions with positional parameters.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) eq(column string, value any) {
	w.args = append(w.args, value)
	w.conds = append(w.conds, fmt.Sprintf("%s = $%d", column, len(w.args)))
}

func (w *whereBuilder) scope(scope domain.AccessScope, cols scopeColumns) {
	var clause string
	clause, w.args = scopeClause(scope, cols, w.args)
	w.conds = append(w.conds, clause)
}

// page appends LIMIT/OFFSET as bound parameters and returns the suffix.
func (w *whereBuilder) page(limit, offset int) string {
	w.args = append(w.args, limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(w.args)-1, len(w.args))
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}
