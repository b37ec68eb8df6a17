package apiclient_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/amaansodagar786/credence_backend/internal/apiclient"
	"github.com/amaansodagar786/credence_backend/internal/apperrors"
	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	"github.com/amaansodagar786/credence_backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionCookie = "credence_session"

var march = domain.Period{Year: 2025, Month: 3}

// fakeBackend keeps just enough state to check that the client re-reads
// records after mutations instead of patching them.
type fakeBackend struct {
	mu        sync.Mutex
	hits      map[string]int
	role      domain.Role
	locked    bool
	assigned  []domain.TaskKind
	unread    int
	failLocks bool
}

func (f *fakeBackend) hit(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hits[key]++
}

func (f *fakeBackend) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[key]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newFakeBackend(t *testing.T, role domain.Role) (*fakeBackend, *httptest.Server) {
	f := &fakeBackend{hits: map[string]int{}, role: role, unread: 2}
	mux := http.NewServeMux()

	requireSession := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if ck, err := r.Cookie(sessionCookie); err != nil || ck.Value != "token" {
				writeJSON(w, http.StatusUnauthorized, errBody{"error": "Authentication required"})
				return
			}
			next(w, r)
		}
	}

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req dto.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "right" {
			writeJSON(w, http.StatusUnauthorized, errBody{"error": "Invalid email or password"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "token", Path: "/", HttpOnly: true})
		writeJSON(w, http.StatusOK, dto.LoginResponse{User: dto.UserResponse{UserID: "u-1", Role: f.role}})
	})
	mux.HandleFunc("GET /admin/clients/{id}", requireSession(func(w http.ResponseWriter, r *http.Request) {
		f.hit("details")
		f.mu.Lock()
		month := domain.MonthDocument{ClientID: r.PathValue("id"), Year: 2025, Month: 3, IsLocked: f.locked}
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, dto.ClientDetailsResponse{Client: domain.ClientDetails{
			Client:    domain.Client{ClientID: r.PathValue("id")},
			Documents: map[int]map[int]domain.MonthDocument{2025: {3: month}},
		}})
	}))
	mux.HandleFunc("POST /admin/clients/{id}/month-lock", requireSession(func(w http.ResponseWriter, r *http.Request) {
		var req dto.MonthLockRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failLocks || f.locked == *req.Lock {
			writeJSON(w, http.StatusConflict, errBody{"error": "Month is already in the requested state"})
			return
		}
		f.locked = *req.Lock
		writeJSON(w, http.StatusOK, dto.LockResponse{Message: "ok"})
	}))
	mux.HandleFunc("GET /admin-employee/client-tasks-status/{id}", requireSession(func(w http.ResponseWriter, r *http.Request) {
		f.hit("tasks")
		f.mu.Lock()
		var assignments []domain.TaskAssignment
		for _, kind := range f.assigned {
			assignments = append(assignments, domain.TaskAssignment{ClientID: r.PathValue("id"), Year: 2025, Month: 3, Task: kind})
		}
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, domain.BuildTaskStatus(r.PathValue("id"), march, assignments))
	}))
	mux.HandleFunc("POST /admin-employee/assign-client", requireSession(func(w http.ResponseWriter, r *http.Request) {
		var req dto.AssignClientRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Task == domain.TaskFinancialStatement {
			writeJSON(w, http.StatusUnprocessableEntity, errBody{"error": "Missing documents for 2025-03: bank"})
			return
		}
		f.mu.Lock()
		f.assigned = append(f.assigned, req.Task)
		f.mu.Unlock()
		writeJSON(w, http.StatusCreated, dto.AssignmentResponse{Message: "assigned"})
	}))
	mux.HandleFunc("GET /admin/notes/unread-count", requireSession(func(w http.ResponseWriter, r *http.Request) {
		f.hit("unread")
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, domain.UnreadCount{Role: domain.RoleAdmin, Total: f.unread, ByClient: map[string]int{"c-1": f.unread}})
	}))
	mux.HandleFunc("POST /admin/notes/mark-as-viewed", requireSession(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.unread = 0
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, dto.MarkNotesViewedResponse{Updated: 2})
	}))
	mux.HandleFunc("GET /client/notes", requireSession(func(w http.ResponseWriter, r *http.Request) {
		f.hit("client-notes")
		writeJSON(w, http.StatusOK, dto.ListNotesResponse{Notes: []domain.Note{{NoteID: "n-1"}}})
	}))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv
}

type errBody map[string]string

func loggedIn(t *testing.T, role domain.Role) (*fakeBackend, *apiclient.Client) {
	f, srv := newFakeBackend(t, role)
	c, err := apiclient.New(srv.URL, apiclient.WithCacheSize(16))
	require.NoError(t, err)
	_, err = c.Login(t.Context(), "admin@example.com", "right")
	require.NoError(t, err)
	return f, c
}

func TestLoginKeepsSessionCookie(t *testing.T) {
	f, srv := newFakeBackend(t, domain.RoleAdmin)
	c, err := apiclient.New(srv.URL)
	require.NoError(t, err)

	_, err = c.ClientDetails(t.Context(), "c-1")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	resp, err := c.Login(t.Context(), "admin@example.com", "right")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, resp.User.Role)

	details, err := c.ClientDetails(t.Context(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "c-1", details.ClientID)
	assert.Equal(t, 1, f.count("details"))
}

func TestLoginRejected(t *testing.T) {
	_, srv := newFakeBackend(t, domain.RoleAdmin)
	c, err := apiclient.New(srv.URL)
	require.NoError(t, err)

	_, err = c.Login(t.Context(), "admin@example.com", "wrong")
	var apiErr *apiclient.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid email or password", apiErr.Message)
}

func TestClientDetailsIsCached(t *testing.T) {
	f, c := loggedIn(t, domain.RoleAdmin)

	for i := 0; i < 3; i++ {
		_, err := c.ClientDetails(t.Context(), "c-1")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, f.count("details"))
}

func TestCachedRecordsAreCopies(t *testing.T) {
	f, c := loggedIn(t, domain.RoleAdmin)

	first, err := c.ClientDetails(t.Context(), "c-1")
	require.NoError(t, err)
	month := first.Documents[2025][3]
	month.IsLocked = true
	first.Documents[2025][3] = month
	first.Client.Name = "edited"

	second, err := c.ClientDetails(t.Context(), "c-1")
	require.NoError(t, err)
	assert.False(t, second.Documents[2025][3].IsLocked)
	assert.Empty(t, second.Client.Name)
	assert.Equal(t, 1, f.count("details"))
}

func TestMonthLockRefetchesDetails(t *testing.T) {
	f, c := loggedIn(t, domain.RoleAdmin)

	before, err := c.ClientDetails(t.Context(), "c-1")
	require.NoError(t, err)
	assert.False(t, before.Documents[2025][3].IsLocked)

	after, err := c.SetMonthLock(t.Context(), "c-1", march, true)
	require.NoError(t, err)
	assert.True(t, after.Documents[2025][3].IsLocked)
	assert.Equal(t, 2, f.count("details"))

	cached, err := c.ClientDetails(t.Context(), "c-1")
	require.NoError(t, err)
	assert.True(t, cached.Documents[2025][3].IsLocked)
	assert.Equal(t, 2, f.count("details"))

	// the earlier value is not patched in place
	assert.False(t, before.Documents[2025][3].IsLocked)
}

func TestFailedMutationStillDropsRecord(t *testing.T) {
	f, c := loggedIn(t, domain.RoleAdmin)

	_, err := c.ClientDetails(t.Context(), "c-1")
	require.NoError(t, err)

	f.mu.Lock()
	f.failLocks = true
	f.mu.Unlock()

	_, err = c.SetMonthLock(t.Context(), "c-1", march, true)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, 1, f.count("details"))

	_, err = c.ClientDetails(t.Context(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, 2, f.count("details"))
}

func TestAssignTaskRefetchesStatus(t *testing.T) {
	f, c := loggedIn(t, domain.RoleAdmin)

	status, err := c.TaskStatus(t.Context(), "c-1", march)
	require.NoError(t, err)
	assert.Len(t, status.AvailableTasks, 4)

	status, err = c.AssignTask(t.Context(), dto.AssignClientRequest{
		EmployeeID: "e-1", ClientID: "c-1", Year: 2025, Month: 3, Task: domain.TaskVATFiling,
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.TaskKind{domain.TaskVATFiling}, status.AssignedTasks)
	assert.Len(t, status.AvailableTasks, 3)
	assert.Equal(t, 2, f.count("tasks"))
}

func TestAssignTaskDocumentsMissing(t *testing.T) {
	_, c := loggedIn(t, domain.RoleAdmin)

	_, err := c.AssignTask(t.Context(), dto.AssignClientRequest{
		EmployeeID: "e-1", ClientID: "c-1", Year: 2025, Month: 3, Task: domain.TaskFinancialStatement,
	})
	assert.ErrorIs(t, err, apperrors.ErrDocumentsMissing)
	var apiErr *apiclient.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Missing documents for 2025-03: bank", apiErr.Message)
}

func TestMarkNotesViewedRefetchesUnreadCount(t *testing.T) {
	f, c := loggedIn(t, domain.RoleAdmin)

	count, err := c.UnreadCount(t.Context(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count.Total)

	_, err = c.UnreadCount(t.Context(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, 1, f.count("unread"))

	count, err = c.MarkNotesViewed(t.Context(), dto.MarkNotesViewedRequest{ClientID: "c-1", NoteIDs: []string{"n-1", "n-2"}})
	require.NoError(t, err)
	assert.Equal(t, 0, count.Total)
	assert.Equal(t, 2, f.count("unread"))
}

func TestClientNotesUseOwnThread(t *testing.T) {
	f, c := loggedIn(t, domain.RoleClient)

	resp, err := c.Notes(t.Context(), "someone-else", dto.ListNotesParams{})
	require.NoError(t, err)
	assert.Len(t, resp.Notes, 1)
	assert.Equal(t, 1, f.count("client-notes"))
}

func TestNotesNeedLogin(t *testing.T) {
	_, srv := newFakeBackend(t, domain.RoleAdmin)
	c, err := apiclient.New(srv.URL)
	require.NoError(t, err)

	_, err = c.UnreadCount(t.Context(), "")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := apiclient.New("not a url")
	assert.Error(t, err)
}
