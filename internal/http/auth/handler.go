package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/rkap/internal/auth"
	"github.com/MrJamesThe3rd/rkap/internal/http/render"
	userHandler "github.com/MrJamesThe3rd/rkap/internal/http/user"
	"github.com/MrJamesThe3rd/rkap/internal/user"
	"github.com/MrJamesThe3rd/rkap/internal/validation"
)

type Handler struct {
	users  *user.Service
	tokens *auth.Tokens
}

func NewHandler(users *user.Service, tokens *auth.Tokens) *Handler {
	return &Handler{users: users, tokens: tokens}
}

// Routes registers the public endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.login)
}

// SessionRoutes registers endpoints that need an authenticated caller.
func (h *Handler) SessionRoutes(r chi.Router) {
	r.Get("/me", h.me)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expiresAt"`
	User      userHandler.Response `json:"user"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !render.Decode(w, r, &req) {
		return
	}

	if err := validation.Struct(req); err != nil {
		render.Error(w, r, err)
		return
	}

	u, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	token, expires, err := h.tokens.Issue(u)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: expires,
		User:      userHandler.ToResponse(u),
	})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		render.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}

	u, err := h.users.Get(r.Context(), claims.UserID)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, userHandler.ToResponse(u))
}
