package upload

import (
	"context"
	"errors"
	"io"
	"regexp"
	"time"
)

const MaxSize = 5 << 20

var (
	ErrTooLarge     = errors.New("file exceeds 5MB")
	ErrInvalidType  = errors.New("type must be image or file")
	ErrInvalidUsage = errors.New("usage may only contain letters, digits, '-' and '_'")
	ErrNotImage     = errors.New("file is not a supported image")
)

type Kind string

const (
	KindImage Kind = "image"
	KindFile  Kind = "file"
)

func (k Kind) Valid() bool { return k == KindImage || k == KindFile }

var usagePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func ValidUsage(s string) bool { return usagePattern.MatchString(s) }

// Object is a stored upload addressed by its public URL.
type Object struct {
	Key      string `json:"key"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

// Storage persists upload bodies under a key and returns the stored object.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, mimeType string) (*Object, error)
	Delete(ctx context.Context, key string) error
}

// Folder maps an upload kind to its top-level storage folder.
func (k Kind) Folder() string {
	if k == KindImage {
		return "images"
	}
	return "files"
}

// Table: files
type File struct {
	ID         string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Filename   string    `gorm:"column:filename;size:255;not null" json:"filename"`
	MimeType   string    `gorm:"column:mime_type;size:100;not null" json:"mimeType"`
	Extension  string    `gorm:"column:extension;size:20" json:"extension"`
	Size       int64     `gorm:"column:size;not null" json:"size"`
	URL        string    `gorm:"column:url;type:text;not null" json:"url"`
	StorageKey string    `gorm:"column:storage_key;size:255;not null;uniqueIndex" json:"storageKey"`
	Category   string    `gorm:"column:category;size:100;index" json:"category"`
	UploaderID *string   `gorm:"column:uploader_id;type:varchar(36);index" json:"uploaderId"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (File) TableName() string { return "files" }

type Repository interface {
	Create(ctx context.Context, f *File) error
}
