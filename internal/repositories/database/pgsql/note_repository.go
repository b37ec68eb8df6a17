package pgsql

import (
	"context"
	"fmt"

	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	portsrepo "github.com/amaansodagar786/credence_backend/internal/core/ports/repositories"
	"github.com/amaansodagar786/credence_backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxNoteRepository struct {
	BaseRepository
}

func newPgxNoteRepository(pool *pgxpool.Pool) portsrepo.NoteRepositoryFacade {
	return &PgxNoteRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxNoteRepository implements portsrepo.NoteRepositoryFacade
var _ portsrepo.NoteRepositoryFacade = (*PgxNoteRepository)(nil)

const noteSelectQuery = `
SELECT note_id, client_id, year, month, note, added_at, added_by, author_role,
       note_level, category_type, category_name, file_name,
       is_viewed_by_client, is_viewed_by_employee, is_viewed_by_admin
FROM notes
`

func toDomainNote(m models.Note) domain.Note {
	return domain.Note{
		NoteID:             m.NoteID,
		ClientID:           m.ClientID,
		Year:               m.Year,
		Month:              m.Month,
		Note:               m.Note,
		AddedAt:            m.AddedAt,
		AddedBy:            m.AddedBy,
		AuthorRole:         domain.Role(m.AuthorRole),
		NoteLevel:          domain.NoteLevel(m.NoteLevel),
		CategoryType:       domain.CategoryType(derefString(m.CategoryType)),
		CategoryName:       derefString(m.CategoryName),
		FileName:           derefString(m.FileName),
		IsViewedByClient:   m.IsViewedByClient,
		IsViewedByEmployee: m.IsViewedByEmployee,
		IsViewedByAdmin:    m.IsViewedByAdmin,
	}
}

// viewedColumn maps a role onto its flag column. Only these three names are
// ever interpolated into SQL.
func viewedColumn(role domain.Role) (string, error) {
	switch role {
	case domain.RoleClient:
		return "is_viewed_by_client", nil
	case domain.RoleEmployee:
		return "is_viewed_by_employee", nil
	case domain.RoleAdmin:
		return "is_viewed_by_admin", nil
	}
	return "", fmt.Errorf("no viewed flag for role %q", role)
}

// ListNotes pages newest first by (added_at, note_id).
func (r *PgxNoteRepository) ListNotes(ctx context.Context, filter portsrepo.NoteFilter) ([]domain.Note, error) {
	year, month := periodArgs(filter.Period)
	var afterAt, afterID any
	if filter.After != nil {
		afterAt, afterID = filter.After.AddedAt, filter.After.NoteID
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query := noteSelectQuery + monthFilter + `
  AND ($4::timestamptz IS NULL OR (added_at, note_id) < ($4::timestamptz, $5::text))
ORDER BY added_at DESC, note_id DESC
LIMIT $6`
	modelNotes, err := collect[models.Note](ctx, r.Pool, query, filter.ClientID, year, month, afterAt, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	notes := make([]domain.Note, len(modelNotes))
	for i, m := range modelNotes {
		notes[i] = toDomainNote(m)
	}
	return notes, nil
}

// CountUnread groups the notes whose role flag is still false by client.
func (r *PgxNoteRepository) CountUnread(ctx context.Context, role domain.Role, clientIDs []string) (map[string]int, error) {
	column, err := viewedColumn(role)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT client_id, count(*)
		FROM notes
		WHERE NOT %s
		  AND (COALESCE(cardinality($1::text[]), 0) = 0 OR client_id = ANY($1::text[]))
		GROUP BY client_id;
	`, column)

	rows, err := r.Pool.Query(ctx, query, clientIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notes: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var clientID string
		var n int
		if err := rows.Scan(&clientID, &n); err != nil {
			return nil, fmt.Errorf("failed to scan unread count: %w", err)
		}
		counts[clientID] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unread counts: %w", err)
	}
	return counts, nil
}

func (r *PgxNoteRepository) SaveNote(ctx context.Context, note domain.Note) error {
	query := `
		INSERT INTO notes (
			note_id, client_id, year, month, note, added_at, added_by, author_role,
			note_level, category_type, category_name, file_name,
			is_viewed_by_client, is_viewed_by_employee, is_viewed_by_admin
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		note.NoteID, note.ClientID, note.Year, note.Month, note.Note, note.AddedAt, note.AddedBy, string(note.AuthorRole),
		string(note.NoteLevel), optionalString(string(note.CategoryType)), optionalString(note.CategoryName), optionalString(note.FileName),
		note.IsViewedByClient, note.IsViewedByEmployee, note.IsViewedByAdmin,
	)
	if err != nil {
		return fmt.Errorf("failed to save note %s: %w", note.NoteID, err)
	}
	return nil
}

// MarkNotesViewed sets only the role's flag. Rows already flagged are
// excluded, so the affected row count is the number of flags flipped.
func (r *PgxNoteRepository) MarkNotesViewed(ctx context.Context, role domain.Role, clientID string, scope domain.NoteScope) (int64, error) {
	column, err := viewedColumn(role)
	if err != nil {
		return 0, err
	}
	selector, args, err := scopeClause(scope)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf(`
		UPDATE notes
		SET %[1]s = TRUE
		WHERE client_id = $1 AND NOT %[1]s AND %[2]s;
	`, column, selector)

	cmdTag, err := r.Pool.Exec(ctx, query, append([]any{clientID}, args...)...)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notes viewed: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// scopeClause renders the single selector of a scope. Parameters start at $2.
func scopeClause(scope domain.NoteScope) (string, []any, error) {
	switch {
	case len(scope.NoteIDs) > 0:
		return "note_id = ANY($2::text[])", []any{scope.NoteIDs}, nil
	case scope.Period != nil:
		return "year = $2 AND month = $3", []any{scope.Period.Year, scope.Period.Month}, nil
	case scope.StartDate != nil && scope.EndDate != nil:
		return "added_at BETWEEN $2 AND $3", []any{*scope.StartDate, *scope.EndDate}, nil
	}
	return "", nil, fmt.Errorf("note scope has no selector")
}
