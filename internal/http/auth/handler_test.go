package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/rkap/internal/auth"
	authHandler "github.com/MrJamesThe3rd/rkap/internal/http/auth"
	"github.com/MrJamesThe3rd/rkap/internal/user"
)

func setup(t *testing.T) (*user.MockRepository, *auth.Tokens, http.Handler) {
	t.Helper()

	repo := user.NewMockRepository(gomock.NewController(t))
	tokens := auth.NewTokens("test-secret", time.Hour)
	h := authHandler.NewHandler(user.NewService(repo).WithCost(bcrypt.MinCost), tokens)

	r := chi.NewRouter()
	r.Route("/auth", func(r chi.Router) {
		h.Routes(r)
		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware)
			h.SessionRoutes(r)
		})
	})

	return repo, tokens, r
}

func serve(h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func hashed(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return string(hash)
}

func TestHandler_Login(t *testing.T) {
	repo, tokens, h := setup(t)

	account := &user.User{ID: 7, Email: "admin@example.com", Role: user.RoleAdmin, PasswordHash: hashed(t, "secret123")}
	repo.EXPECT().GetUserByEmail(gomock.Any(), "admin@example.com").Return(account, nil).Times(2)

	rec := serve(h, http.MethodPost, "/auth/login", `{"email":" Admin@Example.com ","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "admin", body.User["role"])

	claims, err := tokens.Parse(body.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)

	rec = serve(h, http.MethodPost, "/auth/login", `{"email":"admin@example.com","password":"wrong-pass"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_LoginMissingFields(t *testing.T) {
	_, _, h := setup(t)

	rec := serve(h, http.MethodPost, "/auth/login", `{"email":"admin@example.com"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"password"`)
}

func TestHandler_Me(t *testing.T) {
	repo, tokens, h := setup(t)

	account := &user.User{ID: 7, FullName: "Admin", Role: user.RoleAdmin}

	token, _, err := tokens.Issue(account)
	require.NoError(t, err)

	repo.EXPECT().GetUser(gomock.Any(), int64(7)).Return(account, nil)

	rec := serve(h, http.MethodGet, "/auth/me", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"fullName":"Admin"`)

	rec = serve(h, http.MethodGet, "/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
