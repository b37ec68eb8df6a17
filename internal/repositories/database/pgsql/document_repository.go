package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/amaansodagar786/credence_backend/internal/apperrors"
	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	portsrepo "github.com/amaansodagar786/credence_backend/internal/core/ports/repositories"
	"github.com/amaansodagar786/credence_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDocumentRepository struct {
	BaseRepository
}

func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxDocumentRepository implements portsrepo.DocumentRepositoryFacade
var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

// every month query filters on client_id = $1 and an optional year = $2, month = $3
const monthFilter = `
WHERE client_id = $1
  AND ($2::int IS NULL OR year = $2)
  AND ($3::int IS NULL OR month = $3)
`

func (r *PgxDocumentRepository) FindMonthDocument(ctx context.Context, clientID string, period domain.Period) (*domain.MonthDocument, error) {
	months, err := r.loadMonths(ctx, clientID, &period)
	if err != nil {
		return nil, err
	}
	if len(months) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &months[0], nil
}

func (r *PgxDocumentRepository) ListMonthDocuments(ctx context.Context, clientID string) ([]domain.MonthDocument, error) {
	return r.loadMonths(ctx, clientID, nil)
}

// loadMonths reads the month, bucket, file and note rows of a client and
// assembles them into month documents ordered oldest first.
func (r *PgxDocumentRepository) loadMonths(ctx context.Context, clientID string, period *domain.Period) ([]domain.MonthDocument, error) {
	year, month := periodArgs(period)

	months, err := collect[models.MonthDocument](ctx, r.Pool, `
		SELECT client_id, year, month, is_locked, locked_by, locked_at, created_at
		FROM month_documents`+monthFilter+`ORDER BY year, month`, clientID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query month documents: %w", err)
	}
	if len(months) == 0 {
		return []domain.MonthDocument{}, nil
	}

	buckets, err := collect[models.CategoryBucket](ctx, r.Pool, `
		SELECT client_id, year, month, category_type, category_name,
		       is_locked, locked_by, locked_at, created_at
		FROM category_buckets`+monthFilter+`ORDER BY created_at, category_name`, clientID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query category buckets: %w", err)
	}

	files, err := collect[models.File](ctx, r.Pool, `
		SELECT file_id, client_id, year, month, category_type, category_name,
		       file_name, url, file_size, file_type, uploaded_at, uploaded_by
		FROM files`+monthFilter+`ORDER BY uploaded_at, file_id`, clientID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}

	notes, err := collect[models.Note](ctx, r.Pool, noteSelectQuery+monthFilter+`ORDER BY added_at, note_id`, clientID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}

	return assembleMonths(months, buckets, files, notes), nil
}

func collect[T any](ctx context.Context, q querier, query string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}

type monthKey struct {
	year, month int
}

// assembleMonths folds flat rows into nested month documents. Notes attach at
// the level they were written for; a note whose category or file is gone
// stays on the month.
func assembleMonths(months []models.MonthDocument, buckets []models.CategoryBucket, files []models.File, notes []models.Note) []domain.MonthDocument {
	result := make([]domain.MonthDocument, len(months))
	index := make(map[monthKey]*domain.MonthDocument, len(months))
	for i, m := range months {
		result[i] = domain.MonthDocument{
			ClientID:   m.ClientID,
			Year:       m.Year,
			Month:      m.Month,
			Sales:      emptyBucket(),
			Purchase:   emptyBucket(),
			Bank:       emptyBucket(),
			Other:      []domain.OtherCategory{},
			IsLocked:   m.IsLocked,
			LockedBy:   m.LockedBy,
			LockedAt:   m.LockedAt,
			MonthNotes: []domain.Note{},
		}
		index[monthKey{m.Year, m.Month}] = &result[i]
	}

	for _, b := range buckets {
		doc, ok := index[monthKey{b.Year, b.Month}]
		if !ok {
			continue
		}
		bucket := bucketFor(doc, domain.CategoryRef{Type: domain.CategoryType(b.CategoryType), Name: b.CategoryName})
		if bucket == nil {
			continue
		}
		bucket.IsLocked = b.IsLocked
		bucket.LockedBy = b.LockedBy
		bucket.LockedAt = b.LockedAt
	}

	for _, f := range files {
		doc, ok := index[monthKey{f.Year, f.Month}]
		if !ok {
			continue
		}
		bucket := bucketFor(doc, domain.CategoryRef{Type: domain.CategoryType(f.CategoryType), Name: f.CategoryName})
		if bucket == nil {
			continue
		}
		bucket.Files = append(bucket.Files, domain.File{
			FileID:     f.FileID,
			FileName:   f.FileName,
			URL:        f.URL,
			FileSize:   f.FileSize,
			FileType:   f.FileType,
			UploadedAt: f.UploadedAt,
			UploadedBy: f.UploadedBy,
			Notes:      []domain.Note{},
		})
	}

	for _, n := range notes {
		doc, ok := index[monthKey{n.Year, n.Month}]
		if !ok {
			continue
		}
		note := toDomainNote(n)
		attachNote(doc, note)
	}
	return result
}

func emptyBucket() domain.CategoryBucket {
	return domain.CategoryBucket{Files: []domain.File{}, CategoryNotes: []domain.Note{}}
}

// bucketFor returns the bucket for ref, adding an "other" category on first sight.
func bucketFor(doc *domain.MonthDocument, ref domain.CategoryRef) *domain.CategoryBucket {
	if bucket, ok := doc.Bucket(ref); ok {
		return bucket
	}
	if ref.Type != domain.CategoryOther || ref.Name == "" {
		return nil
	}
	doc.Other = append(doc.Other, domain.OtherCategory{CategoryName: ref.Name, Document: emptyBucket()})
	return &doc.Other[len(doc.Other)-1].Document
}

func attachNote(doc *domain.MonthDocument, note domain.Note) {
	if note.NoteLevel == domain.NoteLevelMonth {
		doc.MonthNotes = append(doc.MonthNotes, note)
		return
	}
	bucket, ok := doc.Bucket(domain.CategoryRef{Type: note.CategoryType, Name: note.CategoryName})
	if !ok {
		doc.MonthNotes = append(doc.MonthNotes, note)
		return
	}
	if note.NoteLevel == domain.NoteLevelCategory {
		bucket.CategoryNotes = append(bucket.CategoryNotes, note)
		return
	}
	for i := range bucket.Files {
		if bucket.Files[i].FileName == note.FileName {
			bucket.Files[i].Notes = append(bucket.Files[i].Notes, note)
			return
		}
	}
	bucket.CategoryNotes = append(bucket.CategoryNotes, note)
}

// SetMonthLock writes the month flag only; category flags are left as they are.
func (r *PgxDocumentRepository) SetMonthLock(ctx context.Context, clientID string, period domain.Period, locked bool, lockedBy *string, lockedAt *time.Time) error {
	query := `
		UPDATE month_documents
		SET is_locked = $1, locked_by = $2, locked_at = $3
		WHERE client_id = $4 AND year = $5 AND month = $6;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, locked, lockedBy, lockedAt, clientID, period.Year, period.Month)
	if err != nil {
		return fmt.Errorf("failed to set month lock: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("month %s: %w", period, apperrors.ErrNotFound)
	}
	return nil
}

// SetCategoryLock writes one category flag. The fixed categories may not have
// a row before their first upload, so the row is created on demand.
func (r *PgxDocumentRepository) SetCategoryLock(ctx context.Context, clientID string, period domain.Period, ref domain.CategoryRef, locked bool, lockedBy *string, lockedAt *time.Time) error {
	query := `
		INSERT INTO category_buckets (
			client_id, year, month, category_type, category_name, is_locked, locked_by, locked_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (client_id, year, month, category_type, category_name) DO UPDATE SET
			is_locked = EXCLUDED.is_locked,
			locked_by = EXCLUDED.locked_by,
			locked_at = EXCLUDED.locked_at;
	`
	_, err := r.Pool.Exec(ctx, query, clientID, period.Year, period.Month, string(ref.Type), ref.Name, locked, lockedBy, lockedAt)
	if err != nil {
		return fmt.Errorf("failed to set category lock on %s: %w", ref, err)
	}
	return nil
}

// SaveFile creates the month and the bucket when missing and appends the file.
func (r *PgxDocumentRepository) SaveFile(ctx context.Context, clientID string, period domain.Period, ref domain.CategoryRef, file domain.File) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO month_documents (client_id, year, month)
			VALUES ($1, $2, $3)
			ON CONFLICT DO NOTHING;`, clientID, period.Year, period.Month); err != nil {
			return fmt.Errorf("failed to create month document: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO category_buckets (client_id, year, month, category_type, category_name)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT DO NOTHING;`, clientID, period.Year, period.Month, string(ref.Type), ref.Name); err != nil {
			return fmt.Errorf("failed to create category bucket: %w", err)
		}

		query := `
			INSERT INTO files (
				file_id, client_id, year, month, category_type, category_name,
				file_name, url, file_size, file_type, uploaded_at, uploaded_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
		`
		_, err := tx.Exec(ctx, query,
			file.FileID, clientID, period.Year, period.Month, string(ref.Type), ref.Name,
			file.FileName, file.URL, file.FileSize, file.FileType, file.UploadedAt, file.UploadedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to save file %s: %w", file.FileName, err)
		}
		return nil
	})
}
