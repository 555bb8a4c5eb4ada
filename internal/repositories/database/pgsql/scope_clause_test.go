package pgsql

import (
	"testing"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

var txnCols = scopeColumns{Building: "b.building_id", CreatedBy: "t.created_by", ID: "t.transaction_id"}

func TestScopeClause(t *testing.T) {
	tests := []struct {
		name     string
		scope    domain.AccessScope
		cols     scopeColumns
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "unrestricted",
			scope:   domain.UnrestrictedScope(),
			cols:    txnCols,
			wantSQL: "TRUE",
		},
		{
			name:    "empty owner scope renders false",
			scope:   domain.AccessScope{},
			cols:    txnCols,
			wantSQL: "FALSE",
		},
		{
			name:     "buildings only",
			scope:    domain.AccessScope{BuildingIDs: []string{"1", "2"}},
			cols:     txnCols,
			wantSQL:  "(b.building_id = ANY($1))",
			wantArgs: []any{[]string{"1", "2"}},
		},
		{
			name:     "buildings, creator and row ids are unioned",
			scope:    domain.AccessScope{BuildingIDs: []string{"1"}, CreatedBy: "owner-1", RowIDs: []string{"t-9"}},
			cols:     txnCols,
			wantSQL:  "(b.building_id = ANY($1) OR t.created_by = $2 OR t.transaction_id = ANY($3))",
			wantArgs: []any{[]string{"1"}, "owner-1", []string{"t-9"}},
		},
		{
			name:    "row ids alone on a table without an id column",
			scope:   domain.AccessScope{RowIDs: []string{"t-9"}},
			cols:    scopeColumns{Building: "f.building_id", CreatedBy: "i.created_by"},
			wantSQL: "FALSE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := scopeClause(tt.scope, tt.cols, nil)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestScopeClause_ContinuesParameterNumbering(t *testing.T) {
	sql, args := scopeClause(domain.AccessScope{CreatedBy: "owner-1"}, txnCols, []any{"tenant-1"})
	assert.Equal(t, "(t.created_by = $2)", sql)
	assert.Equal(t, []any{"tenant-1", "owner-1"}, args)
}

func TestWhereBuilder(t *testing.T) {
	var w whereBuilder
	w.eq("t.tenant_id", "tenant-1")
	w.scope(domain.AccessScope{BuildingIDs: []string{"1"}}, txnCols)
	suffix := w.page(20, 40)

	assert.Equal(t, " WHERE t.tenant_id = $1 AND (b.building_id = ANY($2))", w.String())
	assert.Equal(t, " LIMIT $3 OFFSET $4", suffix)
	assert.Equal(t, []any{"tenant-1", []string{"1"}, 20, 40}, w.args)
}
