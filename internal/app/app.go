package app

import (
	"context"
	"fmt"
	"log/slog"

	httpapp "virtual_gallery/internal/app/http"
	"virtual_gallery/internal/config"
	"virtual_gallery/internal/lib/logger/sl"
	"virtual_gallery/internal/lib/netutil"
	"virtual_gallery/internal/repository"
	"virtual_gallery/internal/schema"
	artists "virtual_gallery/internal/services/artist_service"
	exhibitions "virtual_gallery/internal/services/exhibition_service"
	pictures "virtual_gallery/internal/services/picture_service"
	seed "virtual_gallery/internal/services/seed_service"
	"virtual_gallery/internal/storage/postgresql"
	httprouters "virtual_gallery/internal/transport/http"
)

type App struct {
	log        *slog.Logger
	HTTPServer *httpapp.Server
	storage    *postgresql.Storage
	port       int
}

// New connects to the database, prepares the schema and builds the HTTP server
// on the first free port starting from cfg.HTTP.Port.
func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	if err := schema.Validate(schema.Entities, schema.Relations); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	storage, err := postgresql.New(ctx, cfg.Postgres.DSN(), postgresql.PoolOptions{
		MinConns: cfg.Postgres.MinConns,
		MaxConns: cfg.Postgres.MaxConns,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := storage.Migrate(ctx); err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("database schema is ready")

	repo := repository.New(storage.Pool())

	artistService := artists.NewArtistService(log, repo.Artists)
	pictureService := pictures.NewPictureService(log, repo.Pictures, artistService)
	exhibitionService := exhibitions.NewExhibitionService(log, repo.Exhibitions, repo.Pictures)

	if cfg.Seed {
		seed.NewSeedService(log, repo.Artists, repo.Pictures).SeedAndLog(ctx)
	}

	listener, err := netutil.ListenFirstFree(cfg.HTTP.Host, cfg.HTTP.Port)
	if err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	port := netutil.Port(listener)
	if port != cfg.HTTP.Port {
		log.Warn("configured port is busy", slog.Int("configured", cfg.HTTP.Port), slog.Int("port", port))
	}

	routers := httprouters.NewRouter(log, pictureService, artistService, exhibitionService, storage)

	server := httpapp.New(log, listener, cfg.StaticDir, cfg.HTTP.ShutdownTimeout, routers)
	server.BuildRouters()

	return &App{
		log:        log,
		HTTPServer: server,
		storage:    storage,
		port:       port,
	}, nil
}

func (a *App) Port() int {
	return a.port
}

func (a *App) Stop() {
	if err := a.HTTPServer.Stop(); err != nil {
		a.log.Error("failed to stop http server", sl.Err(err))
	}

	a.storage.Stop()
}
