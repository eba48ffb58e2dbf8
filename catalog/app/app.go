package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/catalog-service/catalog/config"
	"github.com/Astemirdum/catalog-service/catalog/internal/handler"
	"github.com/Astemirdum/catalog-service/catalog/internal/repository"
	"github.com/Astemirdum/catalog-service/catalog/internal/server"
	"github.com/Astemirdum/catalog-service/catalog/internal/service"
	"github.com/Astemirdum/catalog-service/catalog/internal/views"
	"github.com/Astemirdum/catalog-service/catalog/migrations"
	"github.com/Astemirdum/catalog-service/pkg/kafka"
	"github.com/Astemirdum/catalog-service/pkg/logger"
	"github.com/Astemirdum/catalog-service/pkg/postgres"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "catalog")
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := newRepository(ctx, cfg, log)
	if err != nil {
		log.Fatal("repository init", zap.Error(err))
	}
	defer closeRepo()

	enqueuer, closeEnqueuer := newEnqueuer(cfg.Kafka, log)
	defer closeEnqueuer()

	svc := service.NewService(repo, enqueuer, log)

	renderer, err := views.NewRenderer()
	if err != nil {
		log.Fatal("views.NewRenderer", zap.Error(err))
	}
	h := handler.New(svc, renderer, log)
	srv := server.NewServer(cfg.Server, h.NewRouter(h.Routes(), cfg.Server.RateLimit))

	group, gCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("http server start ON: ", zap.String("addr", srv.Addr()))
		return srv.Run()
	})
	group.Go(func() error {
		<-gCtx.Done()
		log.Debug("Graceful shutdown")

		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		return srv.Stop(closeCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server stopped", zap.Error(err))
		return
	}
	log.Info("Graceful shutdown finished")
}

func newRepository(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.Repository, func(), error) {
	if cfg.Storage == config.StorageMemory {
		log.Warn("using in-memory storage; records are lost on restart")
		return repository.NewMemRepository(log), func() {}, nil
	}
	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return nil, nil, err
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return repo, func() { _ = db.Close() }, nil
}

func newEnqueuer(cfg kafka.Config, log *zap.Logger) (service.Enqueuer, func()) {
	if !cfg.Enabled() {
		return service.NewNopEnqueuer(), func() {}
	}
	producer, err := kafka.NewProducer(cfg)
	if err != nil {
		log.Error("kafka.NewProducer; book events disabled", zap.Error(err))
		return service.NewNopEnqueuer(), func() {}
	}
	return service.NewEnqueuer(producer, kafka.CatalogTopic), func() {
		if err := producer.Close(); err != nil {
			log.Warn("producer.Close", zap.Error(err))
		}
	}
}
