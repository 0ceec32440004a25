package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/moneymuse/internal/auth"
	authHandler "github.com/MrJamesThe3rd/moneymuse/internal/http/auth"
	budgetHandler "github.com/MrJamesThe3rd/moneymuse/internal/http/budget"
	categoryHandler "github.com/MrJamesThe3rd/moneymuse/internal/http/category"
	"github.com/MrJamesThe3rd/moneymuse/internal/http/importcsv"
	transactionHandler "github.com/MrJamesThe3rd/moneymuse/internal/http/transaction"
	userHandler "github.com/MrJamesThe3rd/moneymuse/internal/http/user"
)

func New(
	tokens *auth.Manager,
	allowedOrigins []string,
	uploadsDir string,
	authV1 *authHandler.Handler,
	usersV1 *userHandler.Handler,
	categoriesV1 *categoryHandler.Handler,
	budgetsV1 *budgetHandler.Handler,
	transactionsV1 *transactionHandler.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Uploaded receipts and avatars.
	router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(tokens))

			r.Route("/users", usersV1.Routes)
			r.Route("/categories", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				categoriesV1.Routes(r)
			})
			r.Route("/budgets", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				budgetsV1.Routes(r)
			})
			r.Route("/transactions", transactionsV1.Routes)
			r.Route("/import", importV1.Routes)
		})
	})

	return router
}
