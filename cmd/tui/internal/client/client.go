// Package client talks to the RKAP HTTP API on behalf of the TUI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

var ErrUnauthorized = errors.New("not logged in or session expired")

// APIError is a non-2xx response carrying the server's message.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%d: %s", e.Status, e.Message)
	}

	parts := make([]string, 0, len(e.Fields))
	for _, k := range slices.Sorted(maps.Keys(e.Fields)) {
		parts = append(parts, k+" "+e.Fields[k])
	}

	return fmt.Sprintf("%d: %s (%s)", e.Status, e.Message, strings.Join(parts, ", "))
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api/v1",
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type User struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type BalanceSheet struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Balance int64  `json:"balance"`
}

type Item struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	CategoryID   int64  `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

type Transaction struct {
	ID               int64  `json:"id"`
	Date             string `json:"date"`
	CategoryName     string `json:"categoryName"`
	ItemName         string `json:"itemName"`
	Payee            string `json:"payee"`
	Amount           int64  `json:"amount"`
	Type             string `json:"type"`
	BalanceSheetName string `json:"balanceSheetName"`
	AttachmentURL    string `json:"attachmentUrl"`
}

type NewTransaction struct {
	Date           string `json:"date"`
	ItemID         int64  `json:"itemId"`
	Payee          string `json:"payee"`
	Amount         int64  `json:"amount"`
	BalanceSheetID *int64 `json:"balanceSheetId,omitempty"`
}

type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	SuccessCount int          `json:"successCount"`
	SkippedRows  []SkippedRow `json:"skippedRows"`
}

// ReportKind selects one of the downloadable reports.
type ReportKind string

const (
	ReportCategories  ReportKind = "categories"
	ReportItems       ReportKind = "items"
	ReportAttachments ReportKind = "attachments"
)

func (c *Client) LoggedIn() bool {
	return c.token != ""
}

func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var resp struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}

	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return nil, err
	}

	c.token = resp.Token

	return &resp.User, nil
}

func (c *Client) BalanceSummary(ctx context.Context) ([]BalanceSheet, error) {
	var sheets []BalanceSheet
	if err := c.do(ctx, http.MethodGet, "/balancesheet/summary", nil, &sheets); err != nil {
		return nil, err
	}

	return sheets, nil
}

func (c *Client) Items(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := c.do(ctx, http.MethodGet, "/items", nil, &items); err != nil {
		return nil, err
	}

	return items, nil
}

// Transactions lists transactions, optionally limited to [start, end].
func (c *Client) Transactions(ctx context.Context, start, end *time.Time) ([]Transaction, error) {
	q := url.Values{}
	if start != nil {
		q.Set("startDate", start.Format(time.DateOnly))
	}

	if end != nil {
		q.Set("endDate", end.Format(time.DateOnly))
	}

	path := "/transactions"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var txs []Transaction
	if err := c.do(ctx, http.MethodGet, path, nil, &txs); err != nil {
		return nil, err
	}

	return txs, nil
}

func (c *Client) CreateTransaction(ctx context.Context, tx NewTransaction) (*Transaction, error) {
	var created Transaction
	if err := c.do(ctx, http.MethodPost, "/transactions", tx, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

func (c *Client) DeleteTransactions(ctx context.Context, ids []int64) error {
	return c.do(ctx, http.MethodDelete, "/transactions", map[string][]int64{"ids": ids}, nil)
}

// ImportFile uploads a CSV or XLSX file for bulk import.
func (c *Client) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}

	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/transactions/import/csv", &buf)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", mw.FormDataContentType())

	var result ImportResult
	if err := c.send(req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// DownloadReport saves a report for [start, end] into dir and returns the
// written path.
func (c *Client) DownloadReport(ctx context.Context, kind ReportKind, start, end time.Time, dir string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"startDate": start.Format(time.DateOnly),
		"endDate":   end.Format(time.DateOnly),
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/reports/"+string(kind), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeError(resp)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, reportFilename(resp, kind, start))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	return path, nil
}

// reportFilename prefers the server's Content-Disposition name.
func reportFilename(resp *http.Response, kind ReportKind, start time.Time) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := params["filename"]; name != "" {
				return strings.ReplaceAll(filepath.Base(name), " ", "_")
			}
		}
	}

	ext := ".xlsx"
	if kind == ReportAttachments {
		ext = ".zip"
	}

	return fmt.Sprintf("rkap_%s_%s%s", kind, start.Format("20060102"), ext)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader

	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}

		body = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

func decodeError(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized && !strings.HasSuffix(resp.Request.URL.Path, "/auth/login") {
		return ErrUnauthorized
	}

	apiErr := &APIError{Status: resp.StatusCode}

	var body struct {
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		apiErr.Message = http.StatusText(resp.StatusCode)
		return apiErr
	}

	apiErr.Message = body.Message
	apiErr.Fields = body.Fields

	return apiErr
}
