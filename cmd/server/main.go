package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/filter"
	"storefront/internal/handler"
	"storefront/internal/logging"
	"storefront/internal/repository"
	"storefront/internal/service"
	"storefront/internal/storefront"

	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("storefront service starting")

	gin.SetMode(cfg.Server.GinMode)

	// Page view logging is optional
	var recorder service.PageViewRecorder
	var pageViewHandler *handler.PageViewHandler
	if cfg.PageViewLogEnabled() {
		repo, err := repository.NewPostgresRepository(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer repo.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = repo.EnsureSchema(ctx)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to prepare page view schema")
		}

		recorder = repo
		pageViewHandler = handler.NewPageViewHandler(repo, log)
		log.Info().Msg("page view log enabled")
	} else {
		log.Info().Msg("page view log disabled, set DATABASE_URL to enable it")
	}

	sfClient := storefront.NewClient(storefront.Options{
		StoreDomain:        cfg.Storefront.StoreDomain,
		APIVersion:         cfg.Storefront.APIVersion,
		PublicAccessToken:  cfg.Storefront.PublicAccessToken,
		PrivateAccessToken: cfg.Storefront.PrivateAccessToken,
		StorefrontID:       cfg.Storefront.StorefrontID,
		Country:            cfg.Storefront.Country,
		Language:           cfg.Storefront.Language,
		Timeout:            time.Duration(cfg.Storefront.Timeout) * time.Second,
		RetryMax:           cfg.Storefront.RetryMax,
	}, log.With().Str("component", "storefront").Logger())
	log.Info().Str("endpoint", sfClient.URL()).Msg("storefront client initialized")

	collectionService := service.NewCollectionService(
		sfClient,
		recorder,
		filter.NewTranslator(),
		service.Settings{
			PageSize:         cfg.Catalog.PageSize,
			CollectionsFirst: cfg.Catalog.CollectionsSize,
			MetaobjectField:  cfg.Storefront.MetaobjectCollectField,
		},
		log.With().Str("component", "collections").Logger(),
	)

	collectionHandler := handler.NewCollectionHandler(collectionService, cfg.Catalog.DefaultHandle, log)
	router := handler.NewRouter(handler.RouterConfig{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: cfg.Server.AllowedMethods,
		AllowedHeaders: cfg.Server.AllowedHeaders,
		StaticDir:      cfg.Server.StaticDir,
		TrustedProxies: cfg.Server.TrustedProxies,
		Build: handler.BuildInfo{
			Version:   Version,
			BuildTime: BuildTime,
			GitCommit: GitCommit,
		},
	}, collectionHandler, pageViewHandler, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}
