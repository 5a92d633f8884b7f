// Package storage keeps complaint attachments on local disk or in S3.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"servicehub/internal/config"
)

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file is too large")
	ErrInvalidMimeType = errors.New("file type is not allowed")
)

var allowedMimeTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// Object describes a stored file.
type Object struct {
	Key      string
	URL      string
	Name     string
	MimeType string
	Size     int64
}

type Store interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, mimeType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// New picks the store named by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStore(cfg.UploadsDir, cfg.UploadsPublicBase), nil
	case "s3":
		return NewS3StoreFromEnv(ctx, cfg.S3Bucket, cfg.S3PublicBase)
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

// Uploader validates multipart files and writes them through a Store.
type Uploader struct {
	store   Store
	maxSize int64
	now     func() time.Time
}

func NewUploader(store Store, maxSize int64) *Uploader {
	return &Uploader{store: store, maxSize: maxSize, now: time.Now}
}

// Save checks size and sniffed content type, then stores fh under a dated, unique key.
func (u *Uploader) Save(ctx context.Context, prefix string, fh *multipart.FileHeader) (*Object, error) {
	if fh.Size == 0 {
		return nil, ErrEmptyFile
	}
	if u.maxSize > 0 && fh.Size > u.maxSize {
		return nil, ErrFileTooLarge
	}

	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	mt, err := mimetype.DetectReader(file)
	if err != nil {
		return nil, fmt.Errorf("detect mime type: %w", err)
	}
	mimeType := strings.Split(mt.String(), ";")[0]
	ext, ok := allowedMimeTypes[mimeType]
	if !ok {
		return nil, ErrInvalidMimeType
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}

	now := u.now()
	key := fmt.Sprintf("%s/%d/%02d/%02d/%s_%s%s",
		strings.Trim(prefix, "/"), now.Year(), now.Month(), now.Day(),
		uuid.NewString(), sanitizeName(fh.Filename), ext)

	url, err := u.store.Put(ctx, key, file, fh.Size, mimeType)
	if err != nil {
		return nil, err
	}

	return &Object{
		Key:      key,
		URL:      url,
		Name:     filepath.Base(fh.Filename),
		MimeType: mimeType,
		Size:     fh.Size,
	}, nil
}

// Discard removes an object stored by Save.
func (u *Uploader) Discard(ctx context.Context, key string) error {
	return u.store.Delete(ctx, key)
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 40 {
		name = name[:40]
	}
	if name == "" || name == "_" {
		return "file"
	}
	return name
}
