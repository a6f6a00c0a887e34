package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/planora/event-booking-api/internal/config"
	"github.com/planora/event-booking-api/internal/repository"
	"github.com/planora/event-booking-api/internal/utils"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:      "test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		BcryptCost:     4,
	}
}

func newJSONContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	h := NewAuthHandler(testConfig(), repository.NewUserRepo(conn), repository.NewTokenRepo(conn))
	return h, mock, func() { conn.Close() }
}

func TestRegisterInvalidRole(t *testing.T) {
	h, _, done := newAuthHandler(t)
	defer done()

	c, rec := newJSONContext(http.MethodPost, "/api/auth/register",
		`{"fullName":"Ada","email":"ada@example.com","password":"secretpw","role":"admin"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid user role") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestRegisterSuccess(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	mock.ExpectExec("INSERT INTO users").
		WithArgs("Ada Lovelace", "ada@example.com", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs(uint64(5), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	c, rec := newJSONContext(http.MethodPost, "/api/auth/register",
		`{"fullName":"Ada Lovelace","email":"Ada@Example.com","password":"secretpw","role":"planner"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"role":"planner"`) || !strings.Contains(body, `"token":`) ||
		!strings.Contains(body, `"refreshToken":`) {
		t.Fatalf("incomplete auth response: %s", body)
	}
	if strings.Contains(body, "password") || strings.Contains(body, "$2a$") {
		t.Fatalf("credential material leaked into response: %s", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'ada@example.com' for key 'users.email'"))

	c, rec := newJSONContext(http.MethodPost, "/api/auth/register",
		`{"fullName":"Ada","email":"ada@example.com","password":"secretpw","role":"client"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	hash, err := utils.HashPassword("rightpw", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	now := time.Now().UTC()
	mock.ExpectQuery("FROM users WHERE email=").
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email", "password_hash", "role", "created_at", "updated_at"}).
			AddRow(5, "Ada", "ada@example.com", hash, "client", now, now))

	c, rec := newJSONContext(http.MethodPost, "/api/auth/login",
		`{"email":"ada@example.com","password":"wrongpw"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid email or password") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestLoginUnknownEmailSameMessage(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	mock.ExpectQuery("FROM users WHERE email=").
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email", "password_hash", "role", "created_at", "updated_at"}))

	c, rec := newJSONContext(http.MethodPost, "/api/auth/login",
		`{"email":"ghost@example.com","password":"whatever"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	// Identical message to the wrong-password case.
	if !strings.Contains(rec.Body.String(), "invalid email or password") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestLoginSuccess(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	hash, err := utils.HashPassword("secretpw", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	now := time.Now().UTC()
	mock.ExpectQuery("FROM users WHERE email=").
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email", "password_hash", "role", "created_at", "updated_at"}).
			AddRow(5, "Ada Lovelace", "ada@example.com", hash, "planner", now, now))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs(uint64(5), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	c, rec := newJSONContext(http.MethodPost, "/api/auth/login",
		`{"email":"  Ada@Example.com ","password":"secretpw"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"fullName":"Ada Lovelace"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	raw := strings.Repeat("ab", 48)
	hash := utils.HashRefreshRaw(raw)
	future := time.Now().UTC().Add(time.Hour)
	now := time.Now().UTC()

	mock.ExpectQuery("FROM refresh_tokens WHERE token_hash=").
		WithArgs(hash).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(5, future, nil))
	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at=").
		WithArgs(hash).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM users WHERE id=").
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email", "password_hash", "role", "created_at", "updated_at"}).
			AddRow(5, "Ada", "ada@example.com", "$2a$04$hash", "client", now, now))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs(uint64(5), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))

	c, rec := newJSONContext(http.MethodPost, "/api/auth/refresh",
		`{"refreshToken":"`+raw+`"}`)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"refreshToken":`) {
		t.Fatalf("no new refresh token issued: %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), raw) {
		t.Fatal("old refresh token returned instead of a rotated one")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
