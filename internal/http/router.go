package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	exportHandler "github.com/alekseyp/fintrack/internal/http/export"
	"github.com/alekseyp/fintrack/internal/http/importcsv"
	reportHandler "github.com/alekseyp/fintrack/internal/http/report"
	transactionHandler "github.com/alekseyp/fintrack/internal/http/transaction"
	walletHandler "github.com/alekseyp/fintrack/internal/http/wallet"
)

func New(
	walletsV1 *walletHandler.Handler,
	transactionsV1 *transactionHandler.Handler,
	reportsV1 *reportHandler.Handler,
	importV1 *importcsv.Handler,
	exportV1 *exportHandler.Handler,
	authSecret string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		if authSecret != "" {
			r.Use(Auth(authSecret))
		}

		r.Route("/wallets", func(r chi.Router) {
			walletsV1.Routes(r)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/reports", reportsV1.Routes)

		r.Route("/import", importV1.Routes)

		r.Route("/export", exportV1.Routes)
	})

	return router
}
