package dao

import (
	"beedu/beedu/sources/psql"
	"beedu/beedu/sources/psql/models"
	"beedu/beedu/utils/logging"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- Helpers ---

func setupTestDB(t *testing.T) *psql.Database {
	logging.InitLogger()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	db, err := psql.FromGorm(gdb)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, userDAO *UserDAO, email string) *models.User {
	user, err := userDAO.CreateUser(context.Background(), email, "hash")
	if err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

// --- UserDAO ---

func TestCreateAndGetUser(t *testing.T) {
	db := setupTestDB(t)
	userDAO := NewUserDAO(db)
	ctx := context.Background()

	created := createTestUser(t, userDAO, "a@x.com")
	if created.ID == uuid.Nil {
		t.Fatal("expected a generated user id")
	}

	fetched, err := userDAO.GetUserByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("get by email failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected user, got nil")
	}
	if fetched.ID != created.ID {
		t.Errorf("expected id %s, got %s", created.ID, fetched.ID)
	}
	if fetched.PasswordHash != "hash" {
		t.Errorf("expected stored password hash, got %q", fetched.PasswordHash)
	}
}

func TestGetUserByEmailNotFound(t *testing.T) {
	db := setupTestDB(t)
	userDAO := NewUserDAO(db)

	user, err := userDAO.GetUserByEmail(context.Background(), "missing@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil for unknown email, got %+v", user)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	userDAO := NewUserDAO(db)
	ctx := context.Background()

	createTestUser(t, userDAO, "a@x.com")

	_, err := userDAO.CreateUser(ctx, "a@x.com", "otherhash")
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

// --- ChatDAO ---

func TestInsertAndListChats(t *testing.T) {
	db := setupTestDB(t)
	userDAO := NewUserDAO(db)
	chatDAO := NewChatDAO(db)
	ctx := context.Background()

	user := createTestUser(t, userDAO, "a@x.com")

	for i := 0; i < 3; i++ {
		q := fmt.Sprintf("question %d", i)
		if _, err := chatDAO.InsertChat(ctx, user.ID, q, "answer", ""); err != nil {
			t.Fatalf("insert chat %d failed: %v", i, err)
		}
	}

	chats, err := chatDAO.ListChatsByUser(ctx, user.ID, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(chats) != 3 {
		t.Fatalf("expected 3 chats, got %d", len(chats))
	}
	for i := 0; i < 3; i++ {
		want := fmt.Sprintf("question %d", i)
		if chats[i].Question != want {
			t.Errorf("position %d: expected %q, got %q", i, want, chats[i].Question)
		}
	}
	for i := 1; i < len(chats); i++ {
		if chats[i].CreatedAt.Before(chats[i-1].CreatedAt) {
			t.Errorf("chats out of order at position %d", i)
		}
	}
}

func TestListChatsIsolatesUsers(t *testing.T) {
	db := setupTestDB(t)
	userDAO := NewUserDAO(db)
	chatDAO := NewChatDAO(db)
	ctx := context.Background()

	alice := createTestUser(t, userDAO, "alice@x.com")
	bob := createTestUser(t, userDAO, "bob@x.com")

	// Interleave inserts from both users.
	for i := 0; i < 4; i++ {
		owner := alice
		if i%2 == 1 {
			owner = bob
		}
		q := fmt.Sprintf("q%d from %s", i, owner.Email)
		if _, err := chatDAO.InsertChat(ctx, owner.ID, q, "", ""); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	chats, err := chatDAO.ListChatsByUser(ctx, alice.ID, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(chats) != 2 {
		t.Fatalf("expected 2 chats for alice, got %d", len(chats))
	}
	for _, c := range chats {
		if c.UserID != alice.ID {
			t.Errorf("found chat owned by %s in alice's list", c.UserID)
		}
	}
}

func TestListChatsLimit(t *testing.T) {
	db := setupTestDB(t)
	userDAO := NewUserDAO(db)
	chatDAO := NewChatDAO(db)
	ctx := context.Background()

	user := createTestUser(t, userDAO, "a@x.com")

	for i := 0; i < 5; i++ {
		if _, err := chatDAO.InsertChat(ctx, user.ID, fmt.Sprintf("q%d", i), "", ""); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	chats, err := chatDAO.ListChatsByUser(ctx, user.ID, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(chats) != 2 {
		t.Fatalf("expected 2 chats, got %d", len(chats))
	}
	// The cap keeps the oldest entries: replay starts from the beginning.
	if chats[0].Question != "q0" || chats[1].Question != "q1" {
		t.Errorf("expected q0,q1, got %q,%q", chats[0].Question, chats[1].Question)
	}
}

func TestListChatsDefaultLimitCap(t *testing.T) {
	db := setupTestDB(t)
	userDAO := NewUserDAO(db)
	chatDAO := NewChatDAO(db)
	ctx := context.Background()

	user := createTestUser(t, userDAO, "a@x.com")

	for i := 0; i < DefaultHistoryLimit+5; i++ {
		if _, err := chatDAO.InsertChat(ctx, user.ID, fmt.Sprintf("q%d", i), "", ""); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	chats, err := chatDAO.ListChatsByUser(ctx, user.ID, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(chats) != DefaultHistoryLimit {
		t.Errorf("expected %d chats, got %d", DefaultHistoryLimit, len(chats))
	}
}

func TestListChatsEmpty(t *testing.T) {
	db := setupTestDB(t)
	chatDAO := NewChatDAO(db)

	user := createTestUser(t, NewUserDAO(db), "a@x.com")

	chats, err := chatDAO.ListChatsByUser(context.Background(), user.ID, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if chats == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(chats) != 0 {
		t.Errorf("expected empty history, got %d records", len(chats))
	}
}
