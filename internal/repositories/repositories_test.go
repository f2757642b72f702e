package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/snapup/internal/models"
	"github.com/desertthunder/snapup/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.OpenMigrated(shared.DatabaseConfig{Path: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)

	for want := 1; want <= 3; want++ {
		got, err := NextSequence(db, "users")
		if err != nil {
			t.Fatalf("failed to get sequence: %v", err)
		}
		if got != want {
			t.Errorf("expected sequence %d, got %d", want, got)
		}
	}

	if _, err := NextSequence(db, "missing"); err == nil {
		t.Error("expected error for table without sequence")
	}
}

func TestUserRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		user := models.NewUser(0, "Test User", "test@example.com", "hash")

		if err := repo.Create(user); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		if user.ID() == "" {
			t.Error("user ID should be set after creation")
		}
		if user.Sequence() != 1 {
			t.Errorf("expected sequence 1, got %d", user.Sequence())
		}
	})

	t.Run("Get", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		user := models.NewUser(0, "Test User", "test@example.com", "hash")

		if err := repo.Create(user); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		retrieved, err := repo.Get(user.ID())
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}

		if retrieved.Email() != user.Email() {
			t.Errorf("expected email %s, got %s", user.Email(), retrieved.Email())
		}
		if retrieved.PasswordHash() != "hash" {
			t.Errorf("expected password hash to round-trip, got %s", retrieved.PasswordHash())
		}
	})

	t.Run("GetByEmail", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		user := models.NewUser(0, "Test User", "test@example.com", "hash")
		if err := repo.Create(user); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		retrieved, err := repo.GetByEmail("test@example.com")
		if err != nil {
			t.Fatalf("failed to get user by email: %v", err)
		}
		if retrieved.ID() != user.ID() {
			t.Errorf("expected ID %s, got %s", user.ID(), retrieved.ID())
		}
	})

	t.Run("Delete", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		user := models.NewUser(0, "Test User", "test@example.com", "hash")
		if err := repo.Create(user); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		if err := repo.Delete(user.ID()); err != nil {
			t.Fatalf("failed to delete user: %v", err)
		}

		if _, err := repo.Get(user.ID()); err == nil {
			t.Error("expected deleted user to be hidden")
		}
	})

	t.Run("Email Reusable After Delete", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		first := models.NewUser(0, "Test User", "test@example.com", "hash")
		if err := repo.Create(first); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		if err := repo.Create(models.NewUser(0, "Other", "test@example.com", "hash")); !errors.Is(err, shared.ErrDuplicateEmail) {
			t.Fatalf("expected ErrDuplicateEmail while first user is live, got %v", err)
		}

		if err := repo.Delete(first.ID()); err != nil {
			t.Fatalf("failed to delete user: %v", err)
		}

		second := models.NewUser(0, "Test User", "test@example.com", "hash2")
		if err := repo.Create(second); err != nil {
			t.Fatalf("expected email to be reusable after delete, got %v", err)
		}

		got, err := repo.GetByEmail("test@example.com")
		if err != nil {
			t.Fatalf("failed to get user by email: %v", err)
		}
		if got.ID() != second.ID() {
			t.Errorf("expected the new user, got %s", got.ID())
		}
	})

	t.Run("List", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
			if err := repo.Create(models.NewUser(0, "User", email, "hash")); err != nil {
				t.Fatalf("failed to create user: %v", err)
			}
		}

		users, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list users: %v", err)
		}
		if len(users) != 3 {
			t.Fatalf("expected 3 users, got %d", len(users))
		}
		if users[0].Email() != "a@example.com" || users[2].Email() != "c@example.com" {
			t.Error("expected users ordered by sequence")
		}

		filtered, err := repo.List(map[string]any{"email": "b@example.com"})
		if err != nil {
			t.Fatalf("failed to list users: %v", err)
		}
		if len(filtered) != 1 {
			t.Errorf("expected 1 filtered user, got %d", len(filtered))
		}
	})
}

func TestPostImageRepository(t *testing.T) {
	t.Run("Create And Get", func(t *testing.T) {
		repo := NewPostImageRepository(setupTestDB(t))
		img := models.NewPostImage(0, "uploads/abc.png", "abc.png", "cat.png", 1234)

		if err := repo.Create(img); err != nil {
			t.Fatalf("failed to create image: %v", err)
		}

		retrieved, err := repo.Get(img.ID())
		if err != nil {
			t.Fatalf("failed to get image: %v", err)
		}

		if retrieved.StoredFilename() != "abc.png" || retrieved.OriginalFilename() != "cat.png" {
			t.Errorf("unexpected filenames: %s, %s", retrieved.StoredFilename(), retrieved.OriginalFilename())
		}
		if retrieved.FileSize() != 1234 {
			t.Errorf("expected size 1234, got %d", retrieved.FileSize())
		}
	})

	t.Run("GetByStoredFilename", func(t *testing.T) {
		repo := NewPostImageRepository(setupTestDB(t))
		img := models.NewPostImage(0, "uploads/abc.png", "abc.png", "cat.png", 1)
		if err := repo.Create(img); err != nil {
			t.Fatalf("failed to create image: %v", err)
		}

		retrieved, err := repo.GetByStoredFilename("abc.png")
		if err != nil {
			t.Fatalf("failed to get image: %v", err)
		}
		if retrieved.ID() != img.ID() {
			t.Errorf("expected ID %s, got %s", img.ID(), retrieved.ID())
		}
	})

	t.Run("List With Limit", func(t *testing.T) {
		repo := NewPostImageRepository(setupTestDB(t))
		for _, name := range []string{"a.png", "b.png", "c.png"} {
			if err := repo.Create(models.NewPostImage(0, "uploads/"+name, name, name, 1)); err != nil {
				t.Fatalf("failed to create image: %v", err)
			}
		}

		images, err := repo.List(map[string]any{"limit": 2})
		if err != nil {
			t.Fatalf("failed to list images: %v", err)
		}
		if len(images) != 2 {
			t.Fatalf("expected 2 images, got %d", len(images))
		}
		if images[0].StoredFilename() != "a.png" {
			t.Errorf("expected first image a.png, got %s", images[0].StoredFilename())
		}
	})

	t.Run("Delete", func(t *testing.T) {
		repo := NewPostImageRepository(setupTestDB(t))
		img := models.NewPostImage(0, "uploads/abc.png", "abc.png", "cat.png", 1)
		if err := repo.Create(img); err != nil {
			t.Fatalf("failed to create image: %v", err)
		}

		if err := repo.Delete(img.ID()); err != nil {
			t.Fatalf("failed to delete image: %v", err)
		}

		images, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list images: %v", err)
		}
		if len(images) != 0 {
			t.Errorf("expected no images after delete, got %d", len(images))
		}
	})
}
