package handlers

import (
	"context"

	"github.com/rogerio-castellano/promo-quoter/internal/auth"
	"github.com/rogerio-castellano/promo-quoter/internal/importer"
	"github.com/rogerio-castellano/promo-quoter/internal/quoting"
	repo "github.com/rogerio-castellano/promo-quoter/internal/repo"
)

var (
	productRepo     repo.ProductRepository
	techniqueRepo   repo.TechniqueRepository
	statsRepo       repo.StatsRepository
	authService     *auth.AuthService
	quoteEngine     *quoting.Engine
	catalogImporter *importer.Importer

	maxUploadBytes int64 = 10 << 20
	healthCheck          = func(context.Context) error { return nil }
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetTechniqueRepo(r repo.TechniqueRepository) {
	techniqueRepo = r
}

func SetStatsRepo(r repo.StatsRepository) {
	statsRepo = r
}

func SetAuthService(a *auth.AuthService) {
	authService = a
}

func SetQuoteEngine(e *quoting.Engine) {
	quoteEngine = e
}

func SetImporter(im *importer.Importer) {
	catalogImporter = im
}

func SetMaxUploadBytes(n int64) {
	maxUploadBytes = n
}

// SetHealthCheck installs the probe behind /health, e.g. a database ping.
func SetHealthCheck(f func(context.Context) error) {
	healthCheck = f
}
