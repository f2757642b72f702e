package models

import (
	"fmt"
	"strings"
	"time"
)

var _ Model = (*PostImage)(nil)

// PostImage records an image stored by POST /post/upload/image.
type PostImage struct {
	base
	filePath         string
	storedFilename   string
	originalFilename string
	fileSize         int64
}

// NewPostImage creates a PostImage for a file already written to filePath.
func NewPostImage(sequence int, filePath, stored, original string, size int64) *PostImage {
	return &PostImage{
		base:             newBase(sequence),
		filePath:         filePath,
		storedFilename:   stored,
		originalFilename: original,
		fileSize:         size,
	}
}

func (p *PostImage) FilePath() string         { return p.filePath }
func (p *PostImage) StoredFilename() string   { return p.storedFilename }
func (p *PostImage) OriginalFilename() string { return p.originalFilename }
func (p *PostImage) FileSize() int64          { return p.fileSize }

// Validate checks required fields. Stored filenames must not contain path separators.
func (p *PostImage) Validate() error {
	if p.id == "" {
		return fmt.Errorf("image id is required")
	}
	if p.storedFilename == "" || strings.ContainsAny(p.storedFilename, `/\`) {
		return fmt.Errorf("invalid stored filename %q", p.storedFilename)
	}
	if p.filePath == "" {
		return fmt.Errorf("file path is required")
	}
	if p.fileSize < 0 {
		return fmt.Errorf("file size must not be negative")
	}
	return nil
}

// Result converts p to the "result" object of an upload response.
func (p *PostImage) Result() UploadResult {
	return UploadResult{
		ID:               p.id,
		FilePath:         p.filePath,
		StoredFilename:   p.storedFilename,
		OriginalFilename: p.originalFilename,
		FileSize:         p.fileSize,
		CreatedAt:        p.createdAt,
	}
}

// UploadResult describes a stored image. Clients rely on the three filename/size fields.
type UploadResult struct {
	ID               string    `json:"id,omitempty"`
	FilePath         string    `json:"file_path,omitempty"`
	StoredFilename   string    `json:"stored_filename"`
	OriginalFilename string    `json:"original_filename"`
	FileSize         int64     `json:"file_size"`
	CreatedAt        time.Time `json:"created_at,omitzero"`
}
