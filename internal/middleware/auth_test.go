package middleware

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/planora/event-booking-api/internal/model"
	"github.com/planora/event-booking-api/internal/repository"
	"github.com/planora/event-booking-api/internal/utils"
)

const testSecret = "test-secret"

func newAuthContext(t *testing.T, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func userRows(id uint64, role model.Role) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{"id", "full_name", "email", "password_hash", "role", "created_at", "updated_at"}).
		AddRow(id, "Test User", "test@example.com", "$2a$04$hash", string(role), now, now)
}

func TestAuthenticateMissingToken(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	c, rec := newAuthContext(t, "")
	h := Authenticate(testSecret, repository.NewUserRepo(db))(func(echo.Context) error {
		t.Fatal("next must not run without a token")
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticateMalformedToken(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	c, rec := newAuthContext(t, "Bearer not-a-jwt")
	h := Authenticate(testSecret, repository.NewUserRepo(db))(func(echo.Context) error {
		t.Fatal("next must not run for a malformed token")
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid token") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	access, err := utils.NewAccessToken(testSecret, 7, "client", -1)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	c, rec := newAuthContext(t, "Bearer "+access.Token)
	h := Authenticate(testSecret, repository.NewUserRepo(db))(func(echo.Context) error {
		t.Fatal("next must not run for an expired token")
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "token expired") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestAuthenticateLiveRoleWins(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// Token still claims planner, but the account is a client now.
	access, err := utils.NewAccessToken(testSecret, 7, "planner", 60)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	mock.ExpectQuery("FROM users WHERE id=").
		WithArgs(uint64(7)).
		WillReturnRows(userRows(7, model.RoleClient))

	c, _ := newAuthContext(t, "Bearer "+access.Token)
	nextRan := false
	h := Authenticate(testSecret, repository.NewUserRepo(db))(func(c echo.Context) error {
		nextRan = true
		if uid, _ := c.Get("user_id").(uint64); uid != 7 {
			t.Fatalf("unexpected user_id in context: %v", c.Get("user_id"))
		}
		if role, _ := c.Get("role").(string); role != "client" {
			t.Fatalf("live role must win, got %v", c.Get("role"))
		}
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !nextRan {
		t.Fatal("next handler did not run")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAuthenticateDeletedUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	access, err := utils.NewAccessToken(testSecret, 99, "client", 60)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	mock.ExpectQuery("FROM users WHERE id=").
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	c, rec := newAuthContext(t, "Bearer "+access.Token)
	h := Authenticate(testSecret, repository.NewUserRepo(db))(func(echo.Context) error {
		t.Fatal("next must not run for a deleted user")
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()

	run := func(role string, allowed ...model.Role) (*httptest.ResponseRecorder, bool) {
		req := httptest.NewRequest(http.MethodPost, "/api/events", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != "" {
			c.Set("role", role)
		}
		ran := false
		h := RequireRole(allowed...)(func(echo.Context) error {
			ran = true
			return nil
		})
		if err := h(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return rec, ran
	}

	if rec, ran := run("client", model.RolePlanner); ran || rec.Code != http.StatusForbidden {
		t.Fatalf("client must not pass a planner gate (code=%d ran=%v)", rec.Code, ran)
	}
	if rec, ran := run("", model.RolePlanner); ran || rec.Code != http.StatusForbidden {
		t.Fatalf("missing role must be forbidden (code=%d ran=%v)", rec.Code, ran)
	}
	if _, ran := run("planner", model.RolePlanner); !ran {
		t.Fatal("planner must pass a planner gate")
	}
	if _, ran := run("vendor", model.RolePlanner, model.RoleVendor); !ran {
		t.Fatal("vendor must pass when listed")
	}
}
