package domain_test

import (
	"testing"
	"time"

	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestMarkViewedBy_OnlyTouchesActingRole(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleClient, domain.RoleEmployee, domain.RoleAdmin} {
		t.Run(string(role), func(t *testing.T) {
			n := domain.Note{NoteID: "n1"}
			assert.True(t, n.MarkViewedBy(role))
			assert.True(t, n.IsViewedBy(role))
			for _, other := range []domain.Role{domain.RoleClient, domain.RoleEmployee, domain.RoleAdmin} {
				if other != role {
					assert.False(t, n.IsViewedBy(other), "flag of %s changed", other)
				}
			}
			assert.False(t, n.MarkViewedBy(role), "second mark must be a no-op")
		})
	}
}

func TestMarkViewedBy_UnknownRole(t *testing.T) {
	n := domain.Note{}
	assert.False(t, n.MarkViewedBy("auditor"))
	assert.Equal(t, domain.Note{}, n)
}

func TestNoteValidateTarget(t *testing.T) {
	assert.NoError(t, (&domain.Note{NoteLevel: domain.NoteLevelMonth}).ValidateTarget())
	assert.NoError(t, (&domain.Note{NoteLevel: domain.NoteLevelCategory, CategoryType: domain.CategoryBank}).ValidateTarget())
	assert.Error(t, (&domain.Note{NoteLevel: domain.NoteLevelCategory}).ValidateTarget())
	assert.Error(t, (&domain.Note{NoteLevel: domain.NoteLevelFile, CategoryType: domain.CategorySales}).ValidateTarget())
	assert.NoError(t, (&domain.Note{NoteLevel: domain.NoteLevelFile, CategoryType: domain.CategorySales, FileName: "jan.pdf"}).ValidateTarget())
	assert.Error(t, (&domain.Note{NoteLevel: "year"}).ValidateTarget())
}

func TestNoteScopeValidate(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	tests := []struct {
		name    string
		scope   domain.NoteScope
		wantErr bool
	}{
		{"empty", domain.NoteScope{}, true},
		{"ids", domain.NoteScope{NoteIDs: []string{"a"}}, false},
		{"period", domain.NoteScope{Period: &domain.Period{Year: 2025, Month: 3}}, false},
		{"bad month", domain.NoteScope{Period: &domain.Period{Year: 2025, Month: 13}}, true},
		{"range", domain.NoteScope{StartDate: &start, EndDate: &end}, false},
		{"half range", domain.NoteScope{StartDate: &start}, true},
		{"inverted range", domain.NoteScope{StartDate: &end, EndDate: &start}, true},
		{"two selectors", domain.NoteScope{NoteIDs: []string{"a"}, Period: &domain.Period{Year: 2025, Month: 3}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scope.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNoteScopeMatches(t *testing.T) {
	added := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	n := &domain.Note{NoteID: "n1", Year: 2025, Month: 3, AddedAt: added}

	assert.True(t, domain.NoteScope{NoteIDs: []string{"x", "n1"}}.Matches(n))
	assert.False(t, domain.NoteScope{NoteIDs: []string{"x"}}.Matches(n))
	assert.True(t, domain.NoteScope{Period: &domain.Period{Year: 2025, Month: 3}}.Matches(n))
	assert.False(t, domain.NoteScope{Period: &domain.Period{Year: 2025, Month: 4}}.Matches(n))

	start, end := added.Add(-time.Hour), added.Add(time.Hour)
	assert.True(t, domain.NoteScope{StartDate: &start, EndDate: &end}.Matches(n))
	assert.True(t, domain.NoteScope{StartDate: &added, EndDate: &added}.Matches(n), "range is inclusive")
	later := added.Add(time.Minute)
	assert.False(t, domain.NoteScope{StartDate: &later, EndDate: &end}.Matches(n))
}
