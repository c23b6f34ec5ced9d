package http

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"asset-approval-backend/internal/adapter/storage"
	domain "asset-approval-backend/internal/domain/upload"
	ucUpload "asset-approval-backend/internal/usecase/upload"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type memFiles struct{ saved []*domain.File }

func (m *memFiles) Create(_ context.Context, f *domain.File) error {
	m.saved = append(m.saved, f)
	return nil
}

func pngBytes(t *testing.T, w, h int, fill color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartReq(t *testing.T, fields map[string]string, filename string, body []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(body)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req, err := http.NewRequest(http.MethodPost, "/api/upload", &buf)
	require.NoError(t, err)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	return req
}

func newUploadEcho(t *testing.T) (*echo.Echo, *memFiles, string) {
	t.Helper()
	root := t.TempDir()
	files := &memFiles{}
	st, err := storage.NewLocal(root, "http://localhost:8080")
	require.NoError(t, err)
	h := NewUploadHandler(ucUpload.NewUsecase(st, files))
	e := newTestEcho()
	e.POST("/api/upload", h.Upload, as(staff))
	return e, files, root
}

func TestUpload_Image(t *testing.T) {
	e, files, root := newUploadEcho(t)
	req := multipartReq(t, map[string]string{"type": "image", "usage": "avatars"}, "me.png", pngBytes(t, 20, 20, color.White))

	rec := serve(e, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, files.saved, 1)
	f := files.saved[0]
	require.Equal(t, "image/png", f.MimeType)
	require.Equal(t, "avatars", f.Category)
	require.Equal(t, staff.ID, *f.UploaderID)
	require.Contains(t, f.URL, "http://localhost:8080/uploads/images/avatars/")

	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(f.StorageKey)))
	require.NoError(t, err)
}

func TestUpload_Rejections(t *testing.T) {
	img := pngBytes(t, 20, 20, color.White)
	tests := []struct {
		name   string
		fields map[string]string
		file   string
		body   []byte
	}{
		{"missing file", map[string]string{"type": "image", "usage": "avatars"}, "", nil},
		{"bad type", map[string]string{"type": "video", "usage": "avatars"}, "a.png", img},
		{"bad usage", map[string]string{"type": "image", "usage": "../etc"}, "a.png", img},
		{"file kind with image", map[string]string{"type": "file", "usage": "docs"}, "a.png", img},
		{"image kind with text", map[string]string{"type": "image", "usage": "avatars"}, "a.txt", []byte("plain text, not an image")},
		{"blank signature", map[string]string{"type": "image", "usage": "signatures"}, "sig.png", pngBytes(t, 300, 100, color.White)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, files, _ := newUploadEcho(t)
			rec := serve(e, multipartReq(t, tt.fields, tt.file, tt.body))
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			require.Empty(t, files.saved)
		})
	}
}

func TestMailResetPassword(t *testing.T) {
	m := &fakeMailer{}
	h := NewMailHandler(m)
	e := newTestEcho()
	e.POST("/api/send-email/reset-password", h.ResetPassword)
	e.GET("/preview-template-email/:name", h.Preview)

	rec, _ := do(t, e, http.MethodPost, "/api/send-email/reset-password", `{"data":{"firstName":"Rina"}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, m.sent)

	rec, _ = do(t, e, http.MethodPost, "/api/send-email/reset-password",
		`{"to":"rina@example.com","data":{"firstName":"Rina","plainPassword":"998877"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, m.sent, 1)
	require.Equal(t, resetPasswordSubject, m.sent[0].subject)
	require.Equal(t, "reset-password", m.sent[0].template)
	require.Equal(t, "rina@example.com", m.sent[0].data["email"])

	rec = serve(e, newJSONRequest(http.MethodGet, "/preview-template-email/new-account", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "<p>activation Haris</p>", rec.Body.String())

	rec = serve(e, newJSONRequest(http.MethodGet, "/preview-template-email/unknown", ""))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
