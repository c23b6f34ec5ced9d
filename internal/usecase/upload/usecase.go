package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	domain "asset-approval-backend/internal/domain/upload"
	"asset-approval-backend/pkg/apperror"
	"asset-approval-backend/pkg/id"

	"github.com/sirupsen/logrus"
)

type Input struct {
	Kind       domain.Kind
	Usage      string
	Filename   string
	MimeType   string
	Size       int64
	Body       io.Reader
	UploaderID *string
}

type Usecase struct {
	storage domain.Storage
	files   domain.Repository
	now     func() time.Time
	log     *logrus.Entry
}

func NewUsecase(s domain.Storage, files domain.Repository) *Usecase {
	return &Usecase{storage: s, files: files, now: time.Now, log: logrus.WithField("usecase", "upload")}
}

func (u *Usecase) Upload(ctx context.Context, in Input) (*domain.File, error) {
	if !in.Kind.Valid() {
		return nil, apperror.Validation("invalid type, allowed: image, file", map[string]string{"type": string(in.Kind)}).Wrap(domain.ErrInvalidType)
	}
	if !domain.ValidUsage(in.Usage) {
		return nil, apperror.Validation("usage can only contain letters, numbers, hyphens, and underscores",
			map[string]string{"usage": in.Usage}).Wrap(domain.ErrInvalidUsage)
	}
	if in.Body == nil {
		return nil, apperror.Validation("no file uploaded", nil)
	}
	if in.Size > domain.MaxSize {
		return nil, tooLarge()
	}

	// Size headers can lie; read at most one byte past the limit.
	body, err := io.ReadAll(io.LimitReader(in.Body, domain.MaxSize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > domain.MaxSize {
		return nil, tooLarge()
	}

	mime := strings.ToLower(strings.TrimSpace(in.MimeType))
	if mime == "" || mime == "application/octet-stream" {
		mime = http.DetectContentType(body)
	}
	isImage := strings.HasPrefix(mime, "image/")
	switch {
	case in.Kind == domain.KindImage && !isImage:
		return nil, apperror.Validation("only image files are allowed", map[string]string{"mimeType": mime}).Wrap(domain.ErrNotImage)
	case in.Kind == domain.KindFile && isImage:
		return nil, apperror.Validation("images are not allowed for type=file", map[string]string{"mimeType": mime})
	}

	if in.Usage == domain.SignatureUsage {
		if err := domain.ValidateSignature(body); err != nil {
			return nil, apperror.Validation(err.Error(), nil).Wrap(err)
		}
	}

	ext := strings.ToLower(filepath.Ext(in.Filename))
	now := u.now().UTC()
	key := path.Join(in.Kind.Folder(), in.Usage, strconv.FormatInt(now.UnixMilli(), 10)+"-"+id.New()[:8]+ext)

	obj, err := u.storage.Put(ctx, key, bytes.NewReader(body), int64(len(body)), mime)
	if err != nil {
		return nil, err
	}

	f := &domain.File{
		ID:         id.New(),
		Filename:   filepath.Base(in.Filename),
		MimeType:   mime,
		Extension:  strings.TrimPrefix(ext, "."),
		Size:       obj.Size,
		URL:        obj.URL,
		StorageKey: obj.Key,
		Category:   in.Usage,
		UploaderID: in.UploaderID,
		CreatedAt:  now,
	}
	if err := u.files.Create(ctx, f); err != nil {
		if derr := u.storage.Delete(ctx, obj.Key); derr != nil {
			u.log.WithError(derr).WithField("key", obj.Key).Warn("orphan upload left behind")
		}
		return nil, fmt.Errorf("save file metadata: %w", err)
	}
	return f, nil
}

func tooLarge() error {
	return apperror.Validation("file exceeds 5MB", map[string]int{"maxBytes": domain.MaxSize}).Wrap(domain.ErrTooLarge)
}
