package repositories

import (
	"errors"
	"testing"

	"github.com/desertthunder/snapup/internal/models"
	"github.com/desertthunder/snapup/internal/shared"
)

func TestUserRepositoryErrors(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		t.Run("ValidationError", func(t *testing.T) {
			repo := NewUserRepository(setupTestDB(t))
			user := models.NewUser(0, "Test User", "", "hash")

			if err := repo.Create(user); !errors.Is(err, shared.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput for empty email, got %v", err)
			}
		})

		t.Run("DuplicateEmail", func(t *testing.T) {
			repo := NewUserRepository(setupTestDB(t))

			if err := repo.Create(models.NewUser(0, "User One", "test@example.com", "hash")); err != nil {
				t.Fatalf("failed to create first user: %v", err)
			}

			err := repo.Create(models.NewUser(0, "User Two", "test@example.com", "hash"))
			if !errors.Is(err, shared.ErrDuplicateEmail) {
				t.Fatalf("expected ErrDuplicateEmail, got %v", err)
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			repo := NewUserRepository(setupTestDB(t))

			if _, err := repo.Get("nonexistent-id"); !errors.Is(err, shared.ErrUserNotFound) {
				t.Fatalf("expected ErrUserNotFound, got %v", err)
			}
			if _, err := repo.GetByEmail("nobody@example.com"); !errors.Is(err, shared.ErrUserNotFound) {
				t.Fatalf("expected ErrUserNotFound, got %v", err)
			}
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			repo := NewUserRepository(setupTestDB(t))

			if err := repo.Delete("nonexistent-id"); !errors.Is(err, shared.ErrUserNotFound) {
				t.Fatalf("expected ErrUserNotFound, got %v", err)
			}
		})
	})

	t.Run("Closed Database", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)
		db.Close()

		if err := repo.Create(models.NewUser(0, "User", "u@example.com", "hash")); err == nil {
			t.Error("expected error on closed database")
		}
		if _, err := repo.List(nil); err == nil {
			t.Error("expected error on closed database")
		}
	})
}

func TestPostImageRepositoryErrors(t *testing.T) {
	t.Run("Create ValidationError", func(t *testing.T) {
		repo := NewPostImageRepository(setupTestDB(t))
		img := models.NewPostImage(0, "uploads/x", "../escape.png", "x.png", 1)

		if err := repo.Create(img); !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Get NotFound", func(t *testing.T) {
		repo := NewPostImageRepository(setupTestDB(t))

		if _, err := repo.Get("missing"); !errors.Is(err, shared.ErrImageNotFound) {
			t.Fatalf("expected ErrImageNotFound, got %v", err)
		}
		if _, err := repo.GetByStoredFilename("missing.png"); !errors.Is(err, shared.ErrImageNotFound) {
			t.Fatalf("expected ErrImageNotFound, got %v", err)
		}
	})

	t.Run("Delete NotFound", func(t *testing.T) {
		repo := NewPostImageRepository(setupTestDB(t))

		if err := repo.Delete("missing"); !errors.Is(err, shared.ErrImageNotFound) {
			t.Fatalf("expected ErrImageNotFound, got %v", err)
		}
	})
}
