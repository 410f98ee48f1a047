package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/rkap/internal/attachment"
	"github.com/MrJamesThe3rd/rkap/internal/auth"
	"github.com/MrJamesThe3rd/rkap/internal/balancesheet"
	"github.com/MrJamesThe3rd/rkap/internal/category"
	rkapHttp "github.com/MrJamesThe3rd/rkap/internal/http"
	attHandler "github.com/MrJamesThe3rd/rkap/internal/http/attachment"
	authHandler "github.com/MrJamesThe3rd/rkap/internal/http/auth"
	bsHandler "github.com/MrJamesThe3rd/rkap/internal/http/balancesheet"
	catHandler "github.com/MrJamesThe3rd/rkap/internal/http/category"
	reportHandler "github.com/MrJamesThe3rd/rkap/internal/http/report"
	txHandler "github.com/MrJamesThe3rd/rkap/internal/http/transaction"
	userHandler "github.com/MrJamesThe3rd/rkap/internal/http/user"
	"github.com/MrJamesThe3rd/rkap/internal/importer"
	"github.com/MrJamesThe3rd/rkap/internal/report"
	"github.com/MrJamesThe3rd/rkap/internal/transaction"
	"github.com/MrJamesThe3rd/rkap/internal/user"
)

type fixture struct {
	users      *user.MockRepository
	categories *category.MockRepository
	tokens     *auth.Tokens
	router     http.Handler
}

func setup(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		users:      user.NewMockRepository(ctrl),
		categories: category.NewMockRepository(ctrl),
		tokens:     auth.NewTokens("router-secret", time.Hour),
	}

	files, err := attachment.NewStore(t.TempDir())
	require.NoError(t, err)

	userService := user.NewService(f.users)

	f.router = rkapHttp.New(rkapHttp.Handlers{
		Auth:          authHandler.NewHandler(userService, f.tokens),
		Users:         userHandler.NewHandler(userService),
		Categories:    catHandler.NewHandler(category.NewService(f.categories)),
		BalanceSheets: bsHandler.NewHandler(balancesheet.NewService(balancesheet.NewMockRepository(ctrl))),
		Transactions: txHandler.NewHandler(
			transaction.NewService(transaction.NewMockRepository(ctrl), files), importer.NewService(), 1<<20),
		Attachments: attHandler.NewHandler(files, 1<<20),
		Reports:     reportHandler.NewHandler(report.NewService(report.NewMockRepository(ctrl), files)),
	}, f.tokens, []string{"http://localhost:3000"})

	return f
}

func (f *fixture) token(t *testing.T, role user.Role) string {
	t.Helper()

	token, _, err := f.tokens.Issue(&user.User{ID: 1, Role: role})
	require.NoError(t, err)

	return token
}

func (f *fixture) do(method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func TestRouter_RequiresToken(t *testing.T) {
	f := setup(t)

	for _, path := range []string{
		"/api/v1/categories",
		"/api/v1/items",
		"/api/v1/balancesheet/summary",
		"/api/v1/transactions",
		"/api/v1/auth/me",
	} {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, path, "").Code)
		})
	}
}

func TestRouter_UsersAreAdminOnly(t *testing.T) {
	f := setup(t)

	assert.Equal(t, http.StatusForbidden, f.do(http.MethodGet, "/api/v1/users", f.token(t, user.RoleMember)).Code)
	assert.Equal(t, http.StatusForbidden, f.do(http.MethodGet, "/api/v1/users", f.token(t, user.RoleAssistantAdmin)).Code)

	f.users.EXPECT().ListUsers(gomock.Any()).Return([]user.User{{ID: 1, Role: user.RoleAdmin}}, nil)

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/v1/users", f.token(t, user.RoleAdmin)).Code)
}

func TestRouter_AuthenticatedRoute(t *testing.T) {
	f := setup(t)

	f.categories.EXPECT().ListCategories(gomock.Any()).Return(nil, nil)

	rec := f.do(http.MethodGet, "/api/v1/categories", f.token(t, user.RoleMember))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestRouter_LoginIsPublic(t *testing.T) {
	f := setup(t)

	rec := f.do(http.MethodPost, "/api/v1/auth/login", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	f := setup(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/transactions", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
