package pgsql

import (
	portsrepo "github.com/amaansodagar786/credence_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:       newPgxUserRepository(dbPool),
		ClientRepo:     newPgxClientRepository(dbPool),
		EmployeeRepo:   newPgxEmployeeRepository(dbPool),
		DocumentRepo:   newPgxDocumentRepository(dbPool),
		NoteRepo:       newPgxNoteRepository(dbPool),
		AssignmentRepo: newPgxAssignmentRepository(dbPool),
	}
}
