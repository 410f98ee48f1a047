package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_LoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"token":"abc","user":{"id":1,"fullName":"Admin","role":"admin"}}`)
		case "/api/v1/balancesheet/summary":
			if r.Header.Get("Authorization") != "Bearer abc" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			io.WriteString(w, `[{"id":1,"name":"BANK","balance":1000}]`)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	_, err := c.BalanceSummary(ctx)
	require.ErrorIs(t, err, ErrUnauthorized)

	u, err := c.Login(ctx, "admin@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "Admin", u.FullName)
	assert.True(t, c.LoggedIn())

	sheets, err := c.BalanceSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, []BalanceSheet{{ID: 1, Name: "BANK", Balance: 1000}}, sheets)
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"message":"validation failed","fields":{"payee":"is required","amount":"must not be zero"}}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).CreateTransaction(context.Background(), NewTransaction{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "400: validation failed (amount must not be zero, payee is required)", apiErr.Error())
}

func TestClient_TransactionsQuery(t *testing.T) {
	var gotQuery string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	_, err := New(srv.URL).Transactions(context.Background(), &start, &end)
	require.NoError(t, err)
	assert.Equal(t, "endDate=2024-01-31&startDate=2024-01-01", gotQuery)
}

func TestClient_DeleteTransactions(t *testing.T) {
	var got struct {
		IDs []int64 `json:"ids"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL).DeleteTransactions(context.Background(), []int64{3, 4}))
	assert.Equal(t, []int64{3, 4}, got.IDs)
}

func TestClient_ImportFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "rows.csv", header.Filename)
		io.WriteString(w, `{"successCount":2,"skippedRows":[{"row":3,"reason":"Payee is missing."}]}`)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "rows.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,payee\n"), 0o644))

	result, err := New(srv.URL).ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, []SkippedRow{{Row: 3, Reason: "Payee is missing."}}, result.SkippedRows)
}

func TestClient_DownloadReport(t *testing.T) {
	tests := []struct {
		name        string
		disposition string
		kind        ReportKind
		want        string
	}{
		{
			name:        "Server Name",
			disposition: `attachment; filename="rkap_items_20240101_20240131.xlsx"`,
			kind:        ReportItems,
			want:        "rkap_items_20240101_20240131.xlsx",
		},
		{
			name: "Fallback Name",
			kind: ReportAttachments,
			want: "rkap_attachments_20240101.zip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/reports/"+string(tt.kind), r.URL.Path)

				if tt.disposition != "" {
					w.Header().Set("Content-Disposition", tt.disposition)
				}

				io.WriteString(w, "payload")
			}))
			defer srv.Close()

			dir := t.TempDir()
			start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

			path, err := New(srv.URL).DownloadReport(context.Background(), tt.kind, start, start.AddDate(0, 1, -1), dir)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.want), path)

			b, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "payload", string(b))
		})
	}
}
