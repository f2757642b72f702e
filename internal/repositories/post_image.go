package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/snapup/internal/models"
	"github.com/desertthunder/snapup/internal/shared"
)

var _ models.Repository[*models.PostImage] = (*PostImageRepository)(nil)

const postImageColumns = "id, sequence, file_path, stored_filename, original_filename, file_size, created_at, updated_at, deleted_at"

// PostImageRepository implements [models.Repository] for [models.PostImage] persistence.
type PostImageRepository struct {
	db *sql.DB
}

// NewPostImageRepository creates a new [PostImageRepository] with the given database connection
func NewPostImageRepository(db *sql.DB) *PostImageRepository {
	return &PostImageRepository{db: db}
}

// Create inserts image metadata with a generated ID and sequence.
func (r *PostImageRepository) Create(img *models.PostImage) error {
	sequence, err := NextSequence(r.db, "post_images")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	img.SetID(shared.GenerateID())
	img.SetSequence(sequence)

	if err := img.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	query := `
		INSERT INTO post_images (id, sequence, file_path, stored_filename, original_filename, file_size, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, img.ID(), sequence, img.FilePath(), img.StoredFilename(), img.OriginalFilename(), img.FileSize(), img.CreatedAt(), img.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert image: %w", err)
	}

	return nil
}

// Get retrieves image metadata by ID, excluding soft-deleted rows
func (r *PostImageRepository) Get(id string) (*models.PostImage, error) {
	row := r.db.QueryRow("SELECT "+postImageColumns+" FROM post_images WHERE id = ? AND deleted_at IS NULL", id)
	img, err := scanPostImage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrImageNotFound, id)
	}
	return img, err
}

// GetByStoredFilename retrieves image metadata by its on-disk name
func (r *PostImageRepository) GetByStoredFilename(name string) (*models.PostImage, error) {
	row := r.db.QueryRow("SELECT "+postImageColumns+" FROM post_images WHERE stored_filename = ? AND deleted_at IS NULL", name)
	img, err := scanPostImage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrImageNotFound, name)
	}
	return img, err
}

// Delete soft-deletes image metadata. The file on disk is left in place.
func (r *PostImageRepository) Delete(id string) error {
	result, err := r.db.Exec("UPDATE post_images SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrImageNotFound, id)
	}

	return nil
}

// List retrieves image metadata ordered by upload sequence.
//
// Supported criteria: "original_filename" (string), "limit" (int).
func (r *PostImageRepository) List(criteria map[string]any) ([]*models.PostImage, error) {
	query := "SELECT " + postImageColumns + " FROM post_images WHERE deleted_at IS NULL"
	args := []any{}

	if name, ok := criteria["original_filename"].(string); ok && name != "" {
		query += " AND original_filename = ?"
		args = append(args, name)
	}

	query += " ORDER BY sequence ASC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query images: %w", err)
	}
	defer rows.Close()

	var images []*models.PostImage
	for rows.Next() {
		img, err := scanPostImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return images, nil
}

func scanPostImage(s scanner) (*models.PostImage, error) {
	var (
		id, path, stored, original string
		sequence                   int
		size                       int64
		createdAt, updatedAt       time.Time
		deletedAt                  sql.NullTime
	)

	err := s.Scan(&id, &sequence, &path, &stored, &original, &size, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan image: %w", err)
	}

	img := models.NewPostImage(sequence, path, stored, original, size)
	img.SetID(id)
	img.SetCreatedAt(createdAt)
	img.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		img.SetDeletedAt(&deletedAt.Time)
	}

	return img, nil
}
