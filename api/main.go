package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/promo-quoter/internal/auth"
	"github.com/rogerio-castellano/promo-quoter/internal/config"
	"github.com/rogerio-castellano/promo-quoter/internal/db"
	"github.com/rogerio-castellano/promo-quoter/internal/http/ban"
	"github.com/rogerio-castellano/promo-quoter/internal/http/handlers"
	rl "github.com/rogerio-castellano/promo-quoter/internal/http/rate_limiter"
	"github.com/rogerio-castellano/promo-quoter/internal/http/router"
	"github.com/rogerio-castellano/promo-quoter/internal/importer"
	"github.com/rogerio-castellano/promo-quoter/internal/logger"
	"github.com/rogerio-castellano/promo-quoter/internal/quoting"
	"github.com/rogerio-castellano/promo-quoter/internal/redissvc"
	"github.com/rogerio-castellano/promo-quoter/internal/repo"
)

type repositories struct {
	products   repo.ProductRepository
	techniques repo.TechniqueRepository
	quotes     repo.QuoteRepository
	users      repo.UserRepository
}

// @title Promotional Products Quoter API
// @version 1.0
// @description REST API for catalog import and three-tier quotes of promotional products.
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not load config:", err)
		os.Exit(1)
	}

	log, flush, err := logger.Init(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not init logger:", err)
		os.Exit(1)
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, database := openRepositories(ctx, cfg, log)
	if database != nil {
		defer database.Close()
	}

	var (
		refreshStore auth.RefreshTokenStore
		banStore     ban.Store
	)
	if cfg.Redis.Addr != "" {
		rdb, err := redissvc.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("could not connect to redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		defer rdb.Close()

		rs := redissvc.NewRedisService(rdb)
		repos.quotes = repo.NewCachedQuoteRepository(repos.quotes, rs, cfg.Redis.QuoteTTL)
		refreshStore = auth.NewRedisRefreshTokenStore(rs)
		banStore = ban.NewRedisStore(rs)
		log.Info("redis enabled", zap.String("addr", cfg.Redis.Addr))
	} else {
		mem := auth.NewMemoryRefreshTokenStore()
		go mem.StartCleaner(ctx, 30*time.Minute)
		refreshStore = mem
		banStore = ban.NewMemoryStore()
		log.Info("redis disabled, using in-memory tokens and bans")
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	authService := auth.NewAuthService(repos.users, jwtManager, refreshStore, cfg.Auth.RefreshTokenTTL)

	handlers.SetProductRepo(repos.products)
	handlers.SetTechniqueRepo(repos.techniques)
	handlers.SetStatsRepo(repo.NewCountingStatsRepository(repos.products, repos.techniques, repos.quotes))
	handlers.SetAuthService(authService)
	handlers.SetQuoteEngine(quoting.NewEngine(repos.products, repos.techniques, repos.quotes))
	handlers.SetImporter(importer.New(repos.products))
	handlers.SetMaxUploadBytes(cfg.Import.MaxUploadBytes)
	if database != nil {
		handlers.SetHealthCheck(database.PingContext)
	}

	limiter := rl.New(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	go limiter.StartVisitorCleanupLoop(ctx, time.Minute, 3*time.Minute)

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: router.NewRouter(router.Options{
			JWT:            jwtManager,
			Limiter:        limiter,
			Guard:          ban.NewGuard(banStore, cfg.RateLimit.MaxStrikes, cfg.RateLimit.BanDuration),
			CORSOrigins:    cfg.Server.CORSOrigins,
			RequestTimeout: cfg.Server.RequestTimeout,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

// openRepositories returns Postgres repositories when a database URL is
// configured, in-memory ones otherwise. The returned *sql.DB is nil in memory mode.
func openRepositories(ctx context.Context, cfg *config.Config, log *zap.Logger) (repositories, *sql.DB) {
	if cfg.Database.URL == "" {
		log.Warn("DATABASE_URL not set, using in-memory repositories")
		return repositories{
			products:   repo.NewInMemoryProductRepository(),
			techniques: repo.NewInMemoryTechniqueRepository(),
			quotes:     repo.NewInMemoryQuoteRepository(),
			users:      repo.NewInMemoryUserRepository(),
		}, nil
	}

	database, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal("could not connect to database", zap.Error(err))
	}
	if err := db.Migrate(ctx, database); err != nil {
		log.Fatal("could not apply schema", zap.Error(err))
	}

	timeout := cfg.Database.QueryTimeout
	return repositories{
		products:   repo.NewPostgresProductRepository(database, timeout),
		techniques: repo.NewPostgresTechniqueRepository(database, timeout),
		quotes:     repo.NewPostgresQuoteRepository(database, timeout),
		users:      repo.NewPostgresUserRepository(database, timeout),
	}, database
}
