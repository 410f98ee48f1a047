package report_test

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	reportHandler "github.com/MrJamesThe3rd/rkap/internal/http/report"
	"github.com/MrJamesThe3rd/rkap/internal/report"
)

func setup(t *testing.T) (*report.MockRepository, http.Handler) {
	t.Helper()

	repo := report.NewMockRepository(gomock.NewController(t))

	r := chi.NewRouter()
	r.Route("/reports", reportHandler.NewHandler(report.NewService(repo, nil)).Routes)

	return repo, r
}

func serve(h http.Handler, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))

	return rec
}

func TestHandler_ByCategory(t *testing.T) {
	repo, h := setup(t)

	rng := report.Range{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	repo.EXPECT().ListCategoryLines(gomock.Any()).Return([]report.Line{{ID: 1, Name: "Operational", Budget: 1000}}, nil)
	repo.EXPECT().ListExpenses(gomock.Any(), rng, gomock.Nil()).Return([]report.Expense{
		{Date: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), CategoryID: 1, Amount: -250},
	}, nil)

	rec := serve(h, "/reports/categories", `{"startDate":"2024-01-01","endDate":"2024-03-31"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="rkap_categories_20240101_20240331.xlsx"`, rec.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)

	defer f.Close()

	rows, err := f.GetRows("Report")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 4)
	assert.Equal(t, "Operational", rows[3][0])
}

func TestHandler_InvalidRange(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		body  string
		field string
	}{
		{name: "Bad Date", path: "/reports/items", body: `{"startDate":"01/01/2024","endDate":"2024-01-31"}`, field: "startDate"},
		{name: "Missing End", path: "/reports/categories", body: `{"startDate":"2024-01-01"}`, field: "endDate"},
		{name: "Reversed", path: "/reports/attachments", body: `{"startDate":"2024-02-01","endDate":"2024-01-01"}`, field: "endDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, h := setup(t)

			rec := serve(h, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"`+tt.field+`"`)
		})
	}
}

func TestHandler_Attachments(t *testing.T) {
	repo, h := setup(t)

	repo.EXPECT().ListAttachments(gomock.Any(), gomock.Any()).Return(nil, nil)

	rec := serve(h, "/reports/attachments", `{"startDate":"2024-01-01","endDate":"2024-01-31"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, "summary.txt", zr.File[0].Name)
}
