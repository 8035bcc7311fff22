package auth

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestFindCredentials_Found(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepo(db)

	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "status", "is_system"}).
		AddRow(int64(7), "alice", "$2a$10$hash", 1, false)
	mock.ExpectQuery("SELECT id, username, password_hash, status, is_system").
		WithArgs("alice").
		WillReturnRows(rows)

	c, ok, err := repo.FindCredentials(context.Background(), "alice")
	if err != nil {
		t.Fatalf("FindCredentials() error: %v", err)
	}
	if !ok || c.ID != 7 || c.Status != StatusActive {
		t.Fatalf("unexpected credentials: %+v ok=%v", c, ok)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestFindCredentials_NotFoundIsNotAnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepo(db)

	mock.ExpectQuery("SELECT id, username, password_hash, status, is_system").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "status", "is_system"}))

	_, ok, err := repo.FindCredentials(context.Background(), "missing")
	if err != nil {
		t.Fatalf("FindCredentials() error: %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false for missing user")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestListPermissions_ReturnsCodes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepo(db)

	rows := sqlmock.NewRows([]string{"code"}).
		AddRow("system.user.list").
		AddRow("system.role.list")
	mock.ExpectQuery("SELECT DISTINCT m.code").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	codes, err := repo.ListPermissions(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListPermissions() error: %v", err)
	}
	if len(codes) != 2 {
		t.Fatalf("expected 2 codes, got %v", codes)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestUpdateLastLogin_Executes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepo(db)

	mock.ExpectExec("UPDATE users SET last_login_at").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateLastLogin(context.Background(), 7); err != nil {
		t.Fatalf("UpdateLastLogin() error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestUpdateAvatar_MissingUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepo(db)

	mock.ExpectExec("UPDATE users SET avatar_url").
		WithArgs(int64(404), "http://cdn/x.png").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.UpdateAvatar(context.Background(), 404, "http://cdn/x.png"); err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
