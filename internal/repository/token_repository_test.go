package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestTokenRepoValidateRefresh(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	future := time.Now().UTC().Add(time.Hour)
	mock.ExpectQuery("FROM refresh_tokens WHERE token_hash=").
		WithArgs("deadbeef").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(7, future, nil))

	repo := NewTokenRepo(db)
	uid, err := repo.ValidateRefresh(context.Background(), "deadbeef")
	if err != nil {
		t.Fatalf("ValidateRefresh: %v", err)
	}
	if uid != 7 {
		t.Fatalf("unexpected user id %d", uid)
	}
}

func TestTokenRepoValidateRefreshExpired(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	past := time.Now().UTC().Add(-time.Minute)
	mock.ExpectQuery("FROM refresh_tokens WHERE token_hash=").
		WithArgs("deadbeef").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(7, past, nil))

	repo := NewTokenRepo(db)
	if _, err := repo.ValidateRefresh(context.Background(), "deadbeef"); err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows for expired token, got %v", err)
	}
}

func TestTokenRepoValidateRefreshRevoked(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	future := time.Now().UTC().Add(time.Hour)
	revoked := time.Now().UTC().Add(-time.Minute)
	mock.ExpectQuery("FROM refresh_tokens WHERE token_hash=").
		WithArgs("deadbeef").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(7, future, revoked))

	repo := NewTokenRepo(db)
	if _, err := repo.ValidateRefresh(context.Background(), "deadbeef"); err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows for revoked token, got %v", err)
	}
}

func TestTokenRepoRevokeByHash(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at=").
		WithArgs("deadbeef").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewTokenRepo(db)
	if err := repo.RevokeByHash(context.Background(), "deadbeef"); err != nil {
		t.Fatalf("RevokeByHash: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
