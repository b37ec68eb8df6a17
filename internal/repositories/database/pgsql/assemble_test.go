package pgsql

import (
	"fmt"
	"testing"
	"time"

	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	"github.com/amaansodagar786/credence_backend/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestAssembleMonths(t *testing.T) {
	at := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	months := []models.MonthDocument{
		{ClientID: "c1", Year: 2025, Month: 2},
		{ClientID: "c1", Year: 2025, Month: 3, IsLocked: true, LockedBy: ptr("admin-1"), LockedAt: &at},
	}
	buckets := []models.CategoryBucket{
		{Year: 2025, Month: 3, CategoryType: "sales", IsLocked: true},
		{Year: 2025, Month: 3, CategoryType: "other", CategoryName: "Payroll"},
		{Year: 2025, Month: 3, CategoryType: "other", CategoryName: "Rent"},
	}
	files := []models.File{
		{FileID: "f1", Year: 2025, Month: 3, CategoryType: "sales", FileName: "s.pdf"},
		{FileID: "f2", Year: 2025, Month: 3, CategoryType: "other", CategoryName: "Payroll", FileName: "p.pdf"},
		{FileID: "f3", Year: 2025, Month: 2, CategoryType: "bank", FileName: "b.pdf"},
	}
	notes := []models.Note{
		{NoteID: "n1", Year: 2025, Month: 3, NoteLevel: "month"},
		{NoteID: "n2", Year: 2025, Month: 3, NoteLevel: "category", CategoryType: ptr("sales")},
		{NoteID: "n3", Year: 2025, Month: 3, NoteLevel: "file", CategoryType: ptr("other"), CategoryName: ptr("Payroll"), FileName: ptr("p.pdf")},
		{NoteID: "n4", Year: 2025, Month: 3, NoteLevel: "category", CategoryType: ptr("other"), CategoryName: ptr("Gone")},
	}

	result := assembleMonths(months, buckets, files, notes)
	require.Len(t, result, 2)

	feb := result[0]
	assert.Len(t, feb.Bank.Files, 1)
	assert.Empty(t, feb.Other)
	assert.False(t, feb.IsLocked)

	mar := result[1]
	assert.True(t, mar.IsLocked)
	assert.Equal(t, "admin-1", *mar.LockedBy)
	assert.True(t, mar.Sales.IsLocked)
	assert.False(t, mar.Purchase.IsLocked)
	require.Len(t, mar.Other, 2)
	assert.Equal(t, "Payroll", mar.Other[0].CategoryName)
	assert.Equal(t, "Rent", mar.Other[1].CategoryName)
	require.Len(t, mar.Other[0].Document.Files, 1)
	assert.Equal(t, "n3", mar.Other[0].Document.Files[0].Notes[0].NoteID)
	assert.Equal(t, "n2", mar.Sales.CategoryNotes[0].NoteID)

	var monthNoteIDs []string
	for _, n := range mar.MonthNotes {
		monthNoteIDs = append(monthNoteIDs, n.NoteID)
	}
	assert.Equal(t, []string{"n1", "n4"}, monthNoteIDs)
	assert.NotNil(t, mar.Purchase.Files)
}

func TestScopeClause(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	clause, args, err := scopeClause(domain.NoteScope{NoteIDs: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "note_id = ANY($2::text[])", clause)
	assert.Equal(t, []any{[]string{"a", "b"}}, args)

	clause, args, err = scopeClause(domain.NoteScope{Period: &domain.Period{Year: 2025, Month: 3}})
	require.NoError(t, err)
	assert.Equal(t, "year = $2 AND month = $3", clause)
	assert.Equal(t, []any{2025, 3}, args)

	clause, _, err = scopeClause(domain.NoteScope{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Contains(t, clause, "BETWEEN")

	_, _, err = scopeClause(domain.NoteScope{})
	assert.Error(t, err)
}

func TestViewedColumn(t *testing.T) {
	for role, want := range map[domain.Role]string{
		domain.RoleClient:   "is_viewed_by_client",
		domain.RoleEmployee: "is_viewed_by_employee",
		domain.RoleAdmin:    "is_viewed_by_admin",
	} {
		got, err := viewedColumn(role)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := viewedColumn("auditor")
	assert.Error(t, err)
}

func TestUniqueViolationOn(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: activeAssignmentIndex})

	assert.True(t, uniqueViolationOn(err, activeAssignmentIndex))
	assert.True(t, uniqueViolationOn(err, ""))
	assert.False(t, uniqueViolationOn(err, "users_email_key"))
	assert.False(t, uniqueViolationOn(&pgconn.PgError{Code: "23503"}, ""))
	assert.False(t, uniqueViolationOn(fmt.Errorf("boom"), ""))
}
