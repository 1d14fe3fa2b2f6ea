package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/rogerio-castellano/promo-quoter/internal/auth"
	_ "github.com/rogerio-castellano/promo-quoter/internal/docs"
	"github.com/rogerio-castellano/promo-quoter/internal/http/ban"
	"github.com/rogerio-castellano/promo-quoter/internal/http/handlers"
	mw "github.com/rogerio-castellano/promo-quoter/internal/http/middleware"
	rl "github.com/rogerio-castellano/promo-quoter/internal/http/rate_limiter"
	"github.com/rogerio-castellano/promo-quoter/internal/metrics"
)

type Options struct {
	JWT *auth.JWTManager
	// Limiter and Guard are optional; without them /api is not rate limited.
	Limiter        *rl.Limiter
	Guard          *ban.Guard
	CORSOrigins    []string
	RequestTimeout time.Duration
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.Recoverer)
	r.Use(mw.RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if opts.RequestTimeout > 0 {
		r.Use(chimw.Timeout(opts.RequestTimeout))
	}

	r.Get("/health", handlers.HealthHandler)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api", func(r chi.Router) {
		if opts.Limiter != nil && opts.Guard != nil {
			r.Use(mw.RateLimit(opts.Limiter, opts.Guard))
		}

		r.Get("/health", handlers.HealthHandler)

		r.Post("/auth/register", handlers.RegisterHandler)
		r.Post("/auth/login", handlers.LoginHandler)
		r.Post("/auth/refresh", handlers.RefreshHandler)

		r.Group(func(r chi.Router) {
			r.Use(mw.Auth(opts.JWT))

			r.Get("/auth/me", handlers.MeHandler)

			r.Get("/products", handlers.GetProductsHandler)
			r.Post("/products", handlers.CreateProductHandler)
			r.Delete("/products", handlers.DeleteAllProductsHandler)
			r.Post("/products/upload-excel", handlers.ImportProductsHandler)
			r.Get("/products/{id}", handlers.GetProductHandler)
			r.Delete("/products/{id}", handlers.DeleteProductHandler)

			r.Get("/marking-techniques", handlers.GetTechniquesHandler)
			r.Post("/marking-techniques", handlers.CreateTechniqueHandler)
			r.Post("/marking-techniques/predefined", handlers.SeedTechniquesHandler)

			r.Post("/quotes/generate", handlers.GenerateQuoteHandler)
			r.Get("/quotes", handlers.GetQuotesHandler)
			r.Get("/quotes/{id}", handlers.GetQuoteHandler)

			r.Get("/download/{name}", handlers.DownloadTemplateHandler)

			r.Get("/stats", handlers.StatsHandler)
		})
	})

	return r
}
