// Package apiclient is a typed Go client for the back-office API.
//
// Read models are cached per record. A mutation never patches a cached record:
// it drops every record it may have touched and re-reads the one the caller is
// looking at, so callers always see what the server stored.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	"github.com/amaansodagar786/credence_backend/internal/dto"
	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 256

// Client talks to one backend. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	records    *lru.Cache[string, []byte]

	mu   sync.RWMutex
	role domain.Role
}

// Option customises a Client.
type Option func(*options)

type options struct {
	httpClient *http.Client
	cacheSize  int
}

// WithHTTPClient replaces the default client. Its Jar must keep the session cookie;
// a client without a jar gets one.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithCacheSize bounds the number of cached records.
func WithCacheSize(n int) Option {
	return func(o *options) { o.cacheSize = n }
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	o := options{cacheSize: defaultCacheSize}
	for _, opt := range opts {
		opt(&o)
	}

	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		httpClient.Jar = jar
	}

	records, err := lru.New[string, []byte](o.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create record cache: %w", err)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		records:    records,
	}, nil
}

// --- auth ---

// Login opens a session. The cookie is kept by the client's jar.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var resp dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", dto.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.role = resp.User.Role
	c.mu.Unlock()
	c.records.Purge()
	return &resp, nil
}

// Logout closes the session and forgets every cached record.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	c.mu.Lock()
	c.role = ""
	c.mu.Unlock()
	c.records.Purge()
	return err
}

// Me returns the user behind the session.
func (c *Client) Me(ctx context.Context) (*dto.UserResponse, error) {
	var resp dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- admin: clients and locks ---

// ListClients is not cached; lists are cheap and change with every enrolment.
func (c *Client) ListClients(ctx context.Context, params dto.ListParams) ([]dto.ClientResponse, error) {
	q := url.Values{}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}
	if params.IncludeInactive {
		q.Set("includeInactive", "true")
	}
	var resp dto.ListClientsResponse
	if err := c.do(ctx, http.MethodGet, withQuery("/admin/clients", q), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Clients, nil
}

// ClientDetails returns the cached client record, reading it on a miss.
func (c *Client) ClientDetails(ctx context.Context, clientID string) (*domain.ClientDetails, error) {
	key := clientKey(clientID)
	if cached, ok := cachedRecord[domain.ClientDetails](c, key); ok {
		return cached, nil
	}
	return c.fetchClientDetails(ctx, clientID)
}

func (c *Client) fetchClientDetails(ctx context.Context, clientID string) (*domain.ClientDetails, error) {
	var resp dto.ClientDetailsResponse
	if err := c.do(ctx, http.MethodGet, "/admin/clients/"+url.PathEscape(clientID), nil, &resp); err != nil {
		return nil, err
	}
	c.remember(clientKey(clientID), resp.Client)
	return &resp.Client, nil
}

// SetMonthLock changes the month lock and returns the client as re-read afterwards.
func (c *Client) SetMonthLock(ctx context.Context, clientID string, period domain.Period, lock bool) (*domain.ClientDetails, error) {
	body := dto.MonthLockRequest{Year: period.Year, Month: period.Month, Lock: &lock}
	return c.mutateClient(ctx, clientID, "/admin/clients/"+url.PathEscape(clientID)+"/month-lock", body)
}

// SetCategoryLock changes one category lock and returns the client as re-read afterwards.
func (c *Client) SetCategoryLock(ctx context.Context, clientID string, period domain.Period, ref domain.CategoryRef, lock bool) (*domain.ClientDetails, error) {
	body := dto.FileLockRequest{Year: period.Year, Month: period.Month, Type: ref.Type, CategoryName: ref.Name, Lock: &lock}
	return c.mutateClient(ctx, clientID, "/admin/clients/file-lock/"+url.PathEscape(clientID), body)
}

// SetClientActive activates or deactivates a client and returns it as re-read afterwards.
func (c *Client) SetClientActive(ctx context.Context, clientID string, active bool) (*domain.ClientDetails, error) {
	action := "/deactivate"
	if active {
		action = "/activate"
	}
	return c.mutateClient(ctx, clientID, "/admin/clients/"+url.PathEscape(clientID)+action, nil)
}

func (c *Client) mutateClient(ctx context.Context, clientID, path string, body any) (*domain.ClientDetails, error) {
	err := c.do(ctx, http.MethodPost, path, body, nil)
	c.invalidateClient(clientID)
	if err != nil {
		return nil, err
	}
	return c.fetchClientDetails(ctx, clientID)
}

// --- admin: employees and tasks ---

// TaskStatus returns the cached status of a client month, reading it on a miss.
func (c *Client) TaskStatus(ctx context.Context, clientID string, period domain.Period) (*domain.TaskStatus, error) {
	if cached, ok := cachedRecord[domain.TaskStatus](c, taskKey(clientID, period)); ok {
		return cached, nil
	}
	return c.fetchTaskStatus(ctx, clientID, period)
}

func (c *Client) fetchTaskStatus(ctx context.Context, clientID string, period domain.Period) (*domain.TaskStatus, error) {
	var status domain.TaskStatus
	path := withQuery("/admin-employee/client-tasks-status/"+url.PathEscape(clientID), periodQuery(period))
	if err := c.do(ctx, http.MethodGet, path, nil, &status); err != nil {
		return nil, err
	}
	c.remember(taskKey(clientID, period), status)
	return &status, nil
}

// CheckClientDocuments is never cached; uploads change it from the client side.
func (c *Client) CheckClientDocuments(ctx context.Context, clientID string, period domain.Period) (*domain.DocumentCheck, error) {
	var check domain.DocumentCheck
	path := withQuery("/admin-employee/check-client-documents/"+url.PathEscape(clientID), periodQuery(period))
	if err := c.do(ctx, http.MethodGet, path, nil, &check); err != nil {
		return nil, err
	}
	return &check, nil
}

// AssignTask assigns a task and returns the month's task status as re-read afterwards.
func (c *Client) AssignTask(ctx context.Context, req dto.AssignClientRequest) (*domain.TaskStatus, error) {
	err := c.do(ctx, http.MethodPost, "/admin-employee/assign-client", req, nil)
	c.invalidateClient(req.ClientID)
	if err != nil {
		return nil, err
	}
	return c.fetchTaskStatus(ctx, req.ClientID, req.Period())
}

// RemoveAssignment removes an assignment and returns the month's task status as re-read afterwards.
func (c *Client) RemoveAssignment(ctx context.Context, req dto.RemoveAssignmentRequest) (*domain.TaskStatus, error) {
	err := c.do(ctx, http.MethodDelete, "/admin-employee/remove-assignment", req, nil)
	c.invalidateClient(req.ClientID)
	if err != nil {
		return nil, err
	}
	return c.fetchTaskStatus(ctx, req.ClientID, req.Period())
}

// ListEmployees returns a page of employees.
func (c *Client) ListEmployees(ctx context.Context, params dto.ListParams) ([]dto.EmployeeResponse, error) {
	q := url.Values{}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.IncludeInactive {
		q.Set("includeInactive", "true")
	}
	var resp dto.ListEmployeesResponse
	if err := c.do(ctx, http.MethodGet, withQuery("/admin-employee", q), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Employees, nil
}

// DeactivateEmployee deactivates an employee. Its current-month assignments are
// removed server side, so every cached task status and client record is dropped.
func (c *Client) DeactivateEmployee(ctx context.Context, employeeID string) (*domain.DeactivationResult, error) {
	var resp dto.DeactivateEmployeeResponse
	err := c.do(ctx, http.MethodPost, "/admin-employee/deactivate/"+url.PathEscape(employeeID), nil, &resp)
	c.invalidatePrefix(taskPrefix)
	c.invalidatePrefix(clientPrefix)
	if err != nil {
		return nil, err
	}
	return &resp.Result, nil
}

// --- employee ---

// MyAssignments lists the employee's active assignments, optionally for one month.
func (c *Client) MyAssignments(ctx context.Context, period *domain.Period) ([]domain.TaskAssignment, error) {
	path := "/employee/assignments"
	if period != nil {
		path = withQuery(path, periodQuery(*period))
	}
	var resp dto.ListAssignmentsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Assignments, nil
}

// MarkAccountingDone finishes a task and returns the assignment as stored.
func (c *Client) MarkAccountingDone(ctx context.Context, req dto.AccountingDoneRequest) (*domain.TaskAssignment, error) {
	var resp dto.AssignmentResponse
	err := c.do(ctx, http.MethodPost, "/employee/assignments/accounting-done", req, &resp)
	c.invalidateClient(req.ClientID)
	if err != nil {
		return nil, err
	}
	return &resp.Assignment, nil
}

// --- notes ---

// Notes lists a page of a client's notes. Clients pass an empty clientID.
func (c *Client) Notes(ctx context.Context, clientID string, params dto.ListNotesParams) (*dto.ListNotesResponse, error) {
	base, err := c.notesBase()
	if err != nil {
		return nil, err
	}
	path := base
	if clientID != "" && c.currentRole() != domain.RoleClient {
		path += "/" + url.PathEscape(clientID)
	}
	q := url.Values{}
	if p := params.Period(); p != nil {
		q = periodQuery(*p)
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.NextToken != "" {
		q.Set("nextToken", params.NextToken)
	}
	var resp dto.ListNotesResponse
	if err := c.do(ctx, http.MethodGet, withQuery(path, q), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UnreadCount returns the cached badge count, reading it on a miss.
func (c *Client) UnreadCount(ctx context.Context, clientID string) (*domain.UnreadCount, error) {
	if cached, ok := cachedRecord[domain.UnreadCount](c, unreadKey(clientID)); ok {
		return cached, nil
	}
	return c.fetchUnreadCount(ctx, clientID)
}

func (c *Client) fetchUnreadCount(ctx context.Context, clientID string) (*domain.UnreadCount, error) {
	base, err := c.notesBase()
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	if clientID != "" {
		q.Set("clientId", clientID)
	}
	var count domain.UnreadCount
	if err := c.do(ctx, http.MethodGet, withQuery(base+"/unread-count", q), nil, &count); err != nil {
		return nil, err
	}
	c.remember(unreadKey(clientID), count)
	return &count, nil
}

// MarkNotesViewed marks the selected notes for the caller's role and returns the
// unread count of that client as re-read afterwards.
func (c *Client) MarkNotesViewed(ctx context.Context, req dto.MarkNotesViewedRequest) (*domain.UnreadCount, error) {
	base, err := c.notesBase()
	if err != nil {
		return nil, err
	}
	err = c.do(ctx, http.MethodPost, base+"/mark-as-viewed", req, nil)
	c.invalidatePrefix(unreadPrefix)
	c.invalidateClient(req.ClientID)
	if err != nil {
		return nil, err
	}
	return c.fetchUnreadCount(ctx, req.ClientID)
}

// AddNote writes a note as a client or an employee.
func (c *Client) AddNote(ctx context.Context, req dto.AddNoteRequest) (*domain.Note, error) {
	base, err := c.notesBase()
	if err != nil {
		return nil, err
	}
	var resp dto.NoteResponse
	err = c.do(ctx, http.MethodPost, base, req, &resp)
	c.invalidatePrefix(unreadPrefix)
	c.invalidateClient(req.ClientID)
	if err != nil {
		return nil, err
	}
	return &resp.Note, nil
}

// --- client documents ---

// MonthDocument returns one of the caller's months, reading it on a miss.
func (c *Client) MonthDocument(ctx context.Context, period domain.Period) (*domain.MonthDocument, error) {
	if cached, ok := cachedRecord[domain.MonthDocument](c, monthKey(period)); ok {
		return cached, nil
	}
	var resp dto.MonthDocumentResponse
	path := fmt.Sprintf("/client/documents/%d/%d", period.Year, period.Month)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	c.remember(monthKey(period), resp.Month)
	return &resp.Month, nil
}

// Upload records an uploaded file and returns the month as stored afterwards,
// with warnings for parts of the request the backend could not save.
func (c *Client) Upload(ctx context.Context, req dto.UploadDocumentRequest) (*domain.UploadResult, error) {
	var resp dto.UploadDocumentResponse
	err := c.do(ctx, http.MethodPost, "/client/documents/upload", req, &resp)
	c.records.Remove(monthKey(req.Period()))
	if err != nil {
		return nil, err
	}
	c.remember(monthKey(req.Period()), resp.Month)
	return &domain.UploadResult{Month: &resp.Month, Warnings: resp.Warnings}, nil
}

// --- plumbing ---

func (c *Client) currentRole() domain.Role {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.role
}

func (c *Client) notesBase() (string, error) {
	switch c.currentRole() {
	case domain.RoleAdmin:
		return "/admin/notes", nil
	case domain.RoleEmployee:
		return "/employee/notes", nil
	case domain.RoleClient:
		return "/client/notes", nil
	}
	return "", &APIError{StatusCode: http.StatusUnauthorized, Message: "not logged in"}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// remember stores the encoded record, so every read decodes its own copy and
// callers cannot change what the cache holds.
func (c *Client) remember(key string, record any) {
	raw, err := json.Marshal(record)
	if err != nil {
		return
	}
	c.records.Add(key, raw)
}

func cachedRecord[T any](c *Client, key string) (*T, bool) {
	raw, ok := c.records.Get(key)
	if !ok {
		return nil, false
	}
	var record T
	if err := json.Unmarshal(raw, &record); err != nil {
		c.records.Remove(key)
		return nil, false
	}
	return &record, true
}

func (c *Client) invalidateClient(clientID string) {
	if clientID == "" {
		c.invalidatePrefix(clientPrefix)
		c.invalidatePrefix(taskPrefix)
		return
	}
	c.records.Remove(clientKey(clientID))
	c.invalidatePrefix(taskPrefix + clientID + "|")
}

func (c *Client) invalidatePrefix(prefix string) {
	for _, key := range c.records.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.records.Remove(key)
		}
	}
}

const (
	clientPrefix = "client|"
	taskPrefix   = "tasks|"
	unreadPrefix = "unread|"
	monthPrefix  = "month|"
)

func clientKey(clientID string) string { return clientPrefix + clientID }
func unreadKey(clientID string) string { return unreadPrefix + clientID }
func monthKey(p domain.Period) string  { return monthPrefix + p.String() }
func taskKey(clientID string, p domain.Period) string {
	return taskPrefix + clientID + "|" + p.String()
}

func periodQuery(p domain.Period) url.Values {
	q := url.Values{}
	q.Set("year", strconv.Itoa(p.Year))
	q.Set("month", strconv.Itoa(p.Month))
	return q
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
