package transaction_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	txHandler "github.com/MrJamesThe3rd/rkap/internal/http/transaction"
	"github.com/MrJamesThe3rd/rkap/internal/importer"
	"github.com/MrJamesThe3rd/rkap/internal/transaction"
)

type fixture struct {
	repo   *transaction.MockRepository
	ltx    *transaction.MockLedgerTx
	router http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)
	ltx := transaction.NewMockLedgerTx(ctrl)

	h := txHandler.NewHandler(transaction.NewService(repo, nil), importer.NewService(), 1<<20)

	r := chi.NewRouter()
	r.Route("/transactions", h.Routes)

	return &fixture{repo: repo, ltx: ltx, router: r}
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestHandler_Create(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Begin(gomock.Any()).Return(f.ltx, nil)
	f.ltx.EXPECT().ItemCategory(gomock.Any(), int64(10)).Return(int64(3), nil)
	f.ltx.EXPECT().ApplyBalanceDelta(gomock.Any(), int64(1), int64(-200)).Return(nil)
	f.ltx.EXPECT().InsertTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
			tx.ID = 9
			return nil
		})
	f.ltx.EXPECT().Commit().Return(nil)
	f.ltx.EXPECT().Rollback().Return(nil)

	rec := f.do(http.MethodPost, "/transactions",
		`{"date":"2024-03-14","itemId":10,"payee":"Toko Maju","amount":-200,"balanceSheetId":1}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, float64(9), body["id"])
	assert.Equal(t, "2024-03-14", body["date"])
	assert.Equal(t, "expense", body["type"])
	assert.Equal(t, float64(3), body["categoryId"])
}

func TestHandler_Create_ZeroAmount(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/transactions", `{"date":"2024-03-14","itemId":10,"payee":"Toko","amount":0}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "validation failed", body["message"])
	assert.Equal(t, map[string]any{"amount": "must not be zero"}, body["fields"])
}

func TestHandler_Create_BadDate(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/transactions", `{"date":"14 March","itemId":10,"payee":"Toko","amount":5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Update(t *testing.T) {
	t.Run("Missing Id", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPatch, "/transactions", `{"date":"2024-03-14","itemId":10,"payee":"Toko","amount":5}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode(t, rec)["fields"], "id")
	})

	t.Run("Not Found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Begin(gomock.Any()).Return(f.ltx, nil)
		f.ltx.EXPECT().LockTransaction(gomock.Any(), int64(77)).Return(nil, transaction.ErrNotFound)
		f.ltx.EXPECT().Rollback().Return(nil)

		rec := f.do(http.MethodPatch, "/transactions",
			`{"id":77,"date":"2024-03-14","categoryId":3,"itemId":10,"payee":"Toko","amount":5}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_Update_Attachment(t *testing.T) {
	const stored = "/api/v1/attachments/old.pdf"

	tests := []struct {
		name     string
		field    string
		want     string
		released bool
	}{
		{name: "Omitted Keeps Stored", field: "", want: stored},
		{name: "Empty Clears", field: `,"attachmentUrl":""`, want: "", released: true},
		{name: "Replaced", field: `,"attachmentUrl":"/api/v1/attachments/new.pdf"`, want: "/api/v1/attachments/new.pdf", released: true},
		{name: "Same Value Kept", field: `,"attachmentUrl":"` + stored + `"`, want: stored},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := transaction.NewMockRepository(ctrl)
			ltx := transaction.NewMockLedgerTx(ctrl)
			remover := transaction.NewMockAttachmentRemover(ctrl)

			h := txHandler.NewHandler(transaction.NewService(repo, remover), importer.NewService(), 1<<20)
			router := chi.NewRouter()
			router.Route("/transactions", h.Routes)

			existing := &transaction.Transaction{ID: 7, ItemID: 10, Payee: "Toko", Amount: 5, AttachmentURL: stored}

			var saved *transaction.Transaction

			repo.EXPECT().Begin(gomock.Any()).Return(ltx, nil)
			ltx.EXPECT().LockTransaction(gomock.Any(), int64(7)).Return(existing, nil)
			ltx.EXPECT().ItemCategory(gomock.Any(), int64(10)).Return(int64(3), nil)
			ltx.EXPECT().UpdateTransaction(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
					saved = tx
					return nil
				})
			ltx.EXPECT().Commit().Return(nil)
			ltx.EXPECT().Rollback().Return(nil)

			if tt.released {
				remover.EXPECT().Remove(gomock.Any(), stored).Return(nil)
			}

			req := httptest.NewRequest(http.MethodPatch, "/transactions", strings.NewReader(
				`{"id":7,"date":"2024-03-14","itemId":10,"payee":"Toko","amount":5`+tt.field+`}`))
			req.Header.Set("Content-Type", "application/json")

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			require.NotNil(t, saved)
			assert.Equal(t, tt.want, saved.AttachmentURL)
		})
	}
}

func TestHandler_Delete(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Begin(gomock.Any()).Return(f.ltx, nil)
	f.ltx.EXPECT().LockTransaction(gomock.Any(), int64(1)).Return(&transaction.Transaction{ID: 1, Amount: 10}, nil)
	f.ltx.EXPECT().DeleteTransaction(gomock.Any(), int64(1)).Return(nil)
	f.ltx.EXPECT().Commit().Return(nil)
	f.ltx.EXPECT().Rollback().Return(nil)

	rec := f.do(http.MethodDelete, "/transactions", `{"ids":[1]}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(http.MethodDelete, "/transactions", `{"ids":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func expectCatalogImport(f *fixture, inserts int) {
	f.repo.EXPECT().Begin(gomock.Any()).Return(f.ltx, nil)
	f.ltx.EXPECT().ImportCatalog(gomock.Any()).Return(&transaction.Catalog{
		Items:         []transaction.ItemRef{{ID: 10, CategoryID: 3, Name: "Dell XPS 15"}},
		BalanceSheets: []transaction.SheetRef{{ID: 1, Name: "BANK"}},
	}, nil)
	f.ltx.EXPECT().ApplyBalanceDelta(gomock.Any(), int64(1), gomock.Any()).Return(nil).Times(inserts)
	f.ltx.EXPECT().InsertTransaction(gomock.Any(), gomock.Any()).Return(nil).Times(inserts)
	f.ltx.EXPECT().Commit().Return(nil)
	f.ltx.EXPECT().Rollback().Return(nil)
}

func TestHandler_Import(t *testing.T) {
	f := newFixture(t)
	expectCatalogImport(f, 2)

	rec := f.do(http.MethodPost, "/transactions/import", `{"data":[
		{"date":"2024-01-02","itemName":"dell xps 15","payee":"Shop","amount":-100,"balanceSheetName":"BANK"},
		{"date":"2024-01-03","itemName":"Dell XPS 15","payee":"","amount":-5,"balanceSheetName":"BANK"},
		{"date":"2024-01-04","itemName":"Dell XPS 15","payee":"Shop","amount":"-2.5e2","balanceSheetName":"bank"}
	]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"successCount":2,"skippedRows":[{"row":3,"reason":"Payee is missing."}]}`, rec.Body.String())
}

func TestHandler_Import_AllSkippedIsOK(t *testing.T) {
	f := newFixture(t)
	expectCatalogImport(f, 0)

	rec := f.do(http.MethodPost, "/transactions/import", `{"data":[{"payee":"Shop"}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"successCount":0,"skippedRows":[{"row":2,"reason":"Date is missing."}]}`, rec.Body.String())
}

func TestHandler_Import_BodyTooLarge(t *testing.T) {
	f := newFixture(t)

	body := `{"data":[{"payee":"` + strings.Repeat("x", 2<<20) + `"}]}`

	rec := f.do(http.MethodPost, "/transactions/import", body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "request body too large", decode(t, rec)["message"])
}

func TestHandler_ImportFile(t *testing.T) {
	f := newFixture(t)
	expectCatalogImport(f, 1)

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "ledger.csv")
	require.NoError(t, err)

	_, err = part.Write([]byte("date;itemName;payee;amount;balanceSheetName\n2024-01-02;Dell XPS 15;Shop;-100;BANK\n;Dell XPS 15;Shop;-1;BANK\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/transactions/import/csv", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"successCount":1,"skippedRows":[{"row":3,"reason":"Date is missing."}]}`, rec.Body.String())
}

func TestHandler_Get(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/transactions/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f.repo.EXPECT().GetTransaction(gomock.Any(), int64(4)).Return(nil, transaction.ErrNotFound)

	rec = f.do(http.MethodGet, "/transactions/4", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_List(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/transactions?startDate=yesterday", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["fields"], "startDate")

	sheet := int64(1)

	f.repo.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
			require.NotNil(t, filter.StartDate)
			require.NotNil(t, filter.BalanceSheetID)
			assert.Equal(t, int64(1), *filter.BalanceSheetID)

			return []*transaction.Transaction{{
				ID: 1, Amount: 500, Payee: "Client", BalanceSheetID: &sheet, BalanceSheetName: "BANK",
			}}, nil
		})

	rec = f.do(http.MethodGet, "/transactions?startDate=2024-01-01&balanceSheetId=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "income", list[0]["type"])
	assert.Equal(t, "BANK", list[0]["balanceSheetName"])
}
