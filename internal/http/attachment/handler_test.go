package attachment_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/rkap/internal/attachment"
	attHandler "github.com/MrJamesThe3rd/rkap/internal/http/attachment"
)

func setup(t *testing.T, maxUpload int64) http.Handler {
	t.Helper()

	store, err := attachment.NewStore(t.TempDir())
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Route("/api/v1/attachments", attHandler.NewHandler(store, maxUpload).Routes)

	return r
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)

	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestHandler_UploadAndDownload(t *testing.T) {
	h := setup(t, 1<<20)

	body, contentType := multipartBody(t, "Receipt.PDF", "%PDF-1.4 receipt")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attachments", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.URL, attachment.URLPrefix))
	assert.True(t, strings.HasSuffix(resp.URL, ".pdf"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, resp.URL, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "%PDF-1.4 receipt", rec.Body.String())
}

func TestHandler_UploadTooLarge(t *testing.T) {
	h := setup(t, 64)

	body, contentType := multipartBody(t, "big.pdf", strings.Repeat("x", 1024))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attachments", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_UploadMissingFile(t *testing.T) {
	h := setup(t, 1<<20)

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("note", "no file"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attachments", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"file"`)
}

func TestHandler_Download(t *testing.T) {
	h := setup(t, 1<<20)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{name: "Unknown File", path: "/api/v1/attachments/0f8fad5b-d9cb-469f-a165-70867728950e.pdf", wantStatus: http.StatusNotFound},
		{name: "Invalid Name", path: "/api/v1/attachments/passwd", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
