package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/rkap/internal/auth"
	"github.com/MrJamesThe3rd/rkap/internal/http/attachment"
	authHandler "github.com/MrJamesThe3rd/rkap/internal/http/auth"
	"github.com/MrJamesThe3rd/rkap/internal/http/balancesheet"
	"github.com/MrJamesThe3rd/rkap/internal/http/category"
	"github.com/MrJamesThe3rd/rkap/internal/http/report"
	"github.com/MrJamesThe3rd/rkap/internal/http/transaction"
	userHandler "github.com/MrJamesThe3rd/rkap/internal/http/user"
	"github.com/MrJamesThe3rd/rkap/internal/user"
)

type Handlers struct {
	Auth          *authHandler.Handler
	Users         *userHandler.Handler
	Categories    *category.Handler
	BalanceSheets *balancesheet.Handler
	Transactions  *transaction.Handler
	Attachments   *attachment.Handler
	Reports       *report.Handler
}

func New(h Handlers, tokens *auth.Tokens, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			h.Auth.Routes(r)

			r.Group(func(r chi.Router) {
				r.Use(tokens.Middleware)
				h.Auth.SessionRoutes(r)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware)

			r.Route("/users", func(r chi.Router) {
				r.Use(auth.RequireRole(user.RoleAdmin))
				r.Use(middleware.AllowContentType("application/json"))
				h.Users.Routes(r)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Categories.CategoryRoutes(r)
			})

			r.Route("/items", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Categories.ItemRoutes(r)
			})

			r.Route("/balancesheet", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.BalanceSheets.Routes(r)
			})

			r.Route("/transactions", h.Transactions.Routes)
			r.Route("/attachments", h.Attachments.Routes)

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Reports.Routes(r)
			})
		})
	})

	return router
}
