// @title PetTrackr API
// @version 1.0
// @description Owners, mascotas, comidas, medicaciones y visitas al veterinario.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"net/http"
	"os"

	goredis "github.com/redis/go-redis/v9"

	pg "pettrackr/internal/adapters/storage/postgres"
	rds "pettrackr/internal/adapters/storage/redis"
	"pettrackr/internal/config"
	"pettrackr/internal/platform/lifecycle"
	"pettrackr/internal/platform/logger"
	"pettrackr/internal/router"
)

func main() {
	seedDemo := flag.Bool("seed", false, "cargar cuentas de demo (se saltea si ya existen)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"error": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})
	if zl, ok := log.(*logger.ZapLogger); ok {
		defer func() { _ = zl.Sync() }()
	}

	if err := run(cfg, log, *seedDemo); err != nil {
		log.Error("server error", map[string]any{"error": err})
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger, seedDemo bool) error {
	lc := lifecycle.New(cfg.Server.ShutdownTimeout, log)
	ctx, stop := lc.Signals(context.Background())
	defer stop()

	var db *sql.DB
	if cfg.Database.DSN != "" {
		opened, err := pg.Open(cfg.Database.DSN)
		if err != nil {
			return err
		}
		if err := pg.Migrate(ctx, opened); err != nil {
			_ = opened.Close()
			return err
		}
		db = opened
		lc.RegisterCloser("postgres", db)
		log.Info("using postgres storage", nil)
	} else {
		log.Warn("DB_DSN not set, using in-memory storage", nil)
	}

	var redisClient *goredis.Client
	if cfg.Redis.URL != "" {
		c, err := rds.NewClient(cfg.Redis)
		if err != nil {
			return err
		}
		redisClient = c
		lc.RegisterCloser("redis", redisClient)
		log.Info("using redis sessions", nil)
	}

	handler, err := router.NewRouter(router.Options{
		Config: cfg,
		Logger: log,
		DB:     db,
		Redis:  redisClient,
		Seed:   seedDemo,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	lc.Register("http", srv.Shutdown)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.Join(err, lc.Shutdown(context.Background()))
		}
	case <-ctx.Done():
	}

	return lc.Shutdown(context.Background())
}
