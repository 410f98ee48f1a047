package balancesheet_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/rkap/internal/balancesheet"
	bsHandler "github.com/MrJamesThe3rd/rkap/internal/http/balancesheet"
)

func setup(t *testing.T) (*balancesheet.MockRepository, http.Handler) {
	t.Helper()

	repo := balancesheet.NewMockRepository(gomock.NewController(t))

	r := chi.NewRouter()
	r.Route("/balancesheet", bsHandler.NewHandler(balancesheet.NewService(repo)).Routes)

	return repo, r
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))

	return rec
}

func TestHandler_Create(t *testing.T) {
	repo, h := setup(t)

	repo.EXPECT().CreateBalanceSheet(gomock.Any(), gomock.Any()).Return(nil)

	rec := serve(h, http.MethodPost, "/balancesheet", `{"name":"BANK","balance":1000}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(1000), body["balance"])
	assert.Equal(t, float64(1000), body["initialBalance"])

	rec = serve(h, http.MethodPost, "/balancesheet", `{"balance":1000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Summary(t *testing.T) {
	repo, h := setup(t)

	repo.EXPECT().ListBalanceSheets(gomock.Any()).Return([]balancesheet.BalanceSheet{
		{ID: 3, Name: "Savings"},
		{ID: 2, Name: "Petty Cash"},
		{ID: 1, Name: "BANK"},
		{ID: 1, Name: "bank"},
	}, nil)

	rec := serve(h, http.MethodGet, "/balancesheet/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 3)
	assert.Equal(t, "BANK", body[0]["name"])
	assert.Equal(t, "Petty Cash", body[1]["name"])
	assert.Equal(t, "Savings", body[2]["name"])
}

func TestHandler_Delete(t *testing.T) {
	repo, h := setup(t)

	repo.EXPECT().DeleteBalanceSheets(gomock.Any(), []int64{8}).Return(balancesheet.ErrNotFound)

	rec := serve(h, http.MethodDelete, "/balancesheet", `{"ids":[8]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Get(t *testing.T) {
	repo, h := setup(t)

	repo.EXPECT().GetBalanceSheet(gomock.Any(), int64(2)).Return(&balancesheet.BalanceSheet{ID: 2, Name: "Petty Cash", Balance: 40}, nil)

	rec := serve(h, http.MethodGet, "/balancesheet/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"balance":40`)
}
