package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/abasuthakur/portfolio-api/internal/admin"
	"github.com/abasuthakur/portfolio-api/internal/auth"
	"github.com/abasuthakur/portfolio-api/internal/config"
	"github.com/abasuthakur/portfolio-api/internal/contact"
)

/*──────────────────────────── fixtures ─────────────────────────────────────*/

const messageCols = "id, name, phone_number, email, message, is_read, created_at"

// fakeNotifier records enqueued messages instead of sending email.
type fakeNotifier struct {
	mu            sync.Mutex
	notifications []*contact.Message
	autoReplies   []*contact.Message
}

func (f *fakeNotifier) EnqueueNotification(m *contact.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, m)
}

func (f *fakeNotifier) EnqueueAutoReply(m *contact.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.autoReplies = append(f.autoReplies, m)
}

type testAPI struct {
	handler  http.Handler
	mock     sqlmock.Sqlmock
	notifier *fakeNotifier
	signer   *auth.Signer
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	sdb := sqlx.NewDb(db, "sqlmock")

	messages := contact.NewRepository(sdb)
	admins := admin.NewRepository(sdb)
	signer := auth.NewSigner("test-secret", time.Hour)
	notifier := &fakeNotifier{}

	cfg := &config.Config{}
	cfg.HTTP.ListenAddr = ":0"

	h := NewRouter(cfg,
		NewContactHandler(messages, notifier),
		NewAdminHandler(messages, admins, signer),
		signer,
	)
	return &testAPI{handler: h, mock: mock, notifier: notifier, signer: signer}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func (a *testAPI) adminToken(t *testing.T) string {
	t.Helper()
	token, err := a.signer.Sign(1, "admin")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

/*──────────────────────────── liveness ─────────────────────────────────────*/

func TestLiveness(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "ok" {
		t.Errorf("status field = %v, want ok", body["status"])
	}
}

/*──────────────────────────── contact submission ───────────────────────────*/

func TestSubmitStoresAndQueues(t *testing.T) {
	api := newTestAPI(t)
	now := time.Now().UTC().Truncate(time.Second)

	api.mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO contact_messages (name, email, message, phone_number) VALUES (?, ?, ?, ?)`)).
		WithArgs("Jane Doe", "jane@example.com", "Hello, I would like to talk about a project.", "").
		WillReturnResult(sqlmock.NewResult(7, 1))
	api.mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT `+messageCols+` FROM contact_messages WHERE id = ?`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone_number", "email", "message", "is_read", "created_at"}).
			AddRow(7, "Jane Doe", "", "jane@example.com", "Hello, I would like to talk about a project.", false, now))

	rec := api.do(t, http.MethodPost, "/api/contact/", "", map[string]string{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"message": "Hello, I would like to talk about a project.",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	data, _ := body["data"].(map[string]any)
	if data == nil || data["name"] != "Jane Doe" {
		t.Errorf("data = %v, want stored row", body["data"])
	}
	if data["is_read"] != false {
		t.Errorf("is_read = %v, want false", data["is_read"])
	}

	api.notifier.mu.Lock()
	defer api.notifier.mu.Unlock()
	if len(api.notifier.notifications) != 1 || len(api.notifier.autoReplies) != 1 {
		t.Errorf("queued %d notifications, %d auto-replies; want 1 each",
			len(api.notifier.notifications), len(api.notifier.autoReplies))
	}

	if err := api.mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSubmitValidationErrors(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/contact", "", map[string]string{
		"name":    "A",
		"email":   "not-an-email",
		"message": "hi",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
	errs, _ := body["errors"].(map[string]any)
	for _, field := range []string{"name", "email", "message"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("missing error for %q: %v", field, errs)
		}
	}

	api.notifier.mu.Lock()
	defer api.notifier.mu.Unlock()
	if len(api.notifier.notifications) != 0 {
		t.Errorf("rejected submission must not queue email")
	}
}

func TestSubmitMalformedJSON(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewBufferString("{nope"))
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Request body must be valid JSON." {
		t.Errorf("message = %v", body["message"])
	}
}

/*──────────────────────────── admin login ──────────────────────────────────*/

func expectAdminLookup(mock sqlmock.Sqlmock, hash string) {
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, username, email, password_hash, created_at FROM admin_users WHERE username = ?`)).
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow(1, "admin", "admin@example.com", hash, time.Now()))
}

func TestLoginIssuesToken(t *testing.T) {
	api := newTestAPI(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	expectAdminLookup(api.mock, string(hash))

	rec := api.do(t, http.MethodPost, "/api/admin/login", "", map[string]string{
		"username": "admin",
		"password": "hunter2",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("no token in response: %v", body)
	}
	if body["username"] != "admin" {
		t.Errorf("username = %v, want admin", body["username"])
	}

	claims, err := api.signer.Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Username != "admin" || claims.ID != 1 {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	api := newTestAPI(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	expectAdminLookup(api.mock, string(hash))

	rec := api.do(t, http.MethodPost, "/api/admin/login", "", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Invalid credentials." {
		t.Errorf("message = %v", body["message"])
	}
}

func TestLoginRequiresBothFields(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/admin/login", "", map[string]string{
		"username": "admin",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Username and password required." {
		t.Errorf("message = %v", body["message"])
	}
}

/*──────────────────────────── admin CRUD ───────────────────────────────────*/

func TestAdminRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/admin/contact-messages"},
		{http.MethodGet, "/api/admin/contact-messages/1"},
		{http.MethodPut, "/api/admin/contact-messages/1"},
		{http.MethodDelete, "/api/admin/contact-messages/1"},
	} {
		rec := api.do(t, tc.method, tc.path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401", tc.method, tc.path, rec.Code)
		}
	}
}

func TestListMessages(t *testing.T) {
	api := newTestAPI(t)
	now := time.Now()

	api.mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT `+messageCols+` FROM contact_messages ORDER BY created_at DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone_number", "email", "message", "is_read", "created_at"}).
			AddRow(2, "Newer", "", "new@example.com", "second message body", false, now).
			AddRow(1, "Older", "", "old@example.com", "first message body", true, now.Add(-time.Hour)))

	rec := api.do(t, http.MethodGet, "/api/admin/contact-messages", api.adminToken(t), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["count"] != float64(2) {
		t.Errorf("count = %v, want 2", body["count"])
	}
	results, _ := body["results"].([]any)
	if len(results) != 2 {
		t.Fatalf("results = %v", body["results"])
	}
	first, _ := results[0].(map[string]any)
	if first["name"] != "Newer" {
		t.Errorf("first result = %v, want newest first", first)
	}
}

func TestGetMessageNotFound(t *testing.T) {
	api := newTestAPI(t)

	api.mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT `+messageCols+` FROM contact_messages WHERE id = ?`)).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rec := api.do(t, http.MethodGet, "/api/admin/contact-messages/42", api.adminToken(t), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Message not found." {
		t.Errorf("message = %v", body["message"])
	}
}

func TestGetMessageBadID(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/admin/contact-messages/abc", api.adminToken(t), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestUpdateReadFlag(t *testing.T) {
	api := newTestAPI(t)
	now := time.Now()

	api.mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE contact_messages SET is_read = ? WHERE id = ?`)).
		WithArgs(true, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	api.mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT `+messageCols+` FROM contact_messages WHERE id = ?`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone_number", "email", "message", "is_read", "created_at"}).
			AddRow(5, "Jane", "", "jane@example.com", "some longer message body", true, now))

	rec := api.do(t, http.MethodPut, "/api/admin/contact-messages/5", api.adminToken(t),
		map[string]bool{"is_read": true})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	data, _ := body["data"].(map[string]any)
	if data == nil || data["is_read"] != true {
		t.Errorf("data = %v, want is_read true", body["data"])
	}
	if err := api.mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteMessage(t *testing.T) {
	api := newTestAPI(t)

	api.mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM contact_messages WHERE id = ?`)).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := api.do(t, http.MethodDelete, "/api/admin/contact-messages/3", api.adminToken(t), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	if body := decodeBody(t, rec); body["message"] != "Message deleted." {
		t.Errorf("message = %v", body["message"])
	}
}

func TestDeleteMessageNotFound(t *testing.T) {
	api := newTestAPI(t)

	api.mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM contact_messages WHERE id = ?`)).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rec := api.do(t, http.MethodDelete, "/api/admin/contact-messages/99", api.adminToken(t), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
