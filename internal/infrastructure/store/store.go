package store

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/rishusinha26/portfolio-backend/config"
	"github.com/rishusinha26/portfolio-backend/internal/domain/repository"
	"github.com/rishusinha26/portfolio-backend/internal/infrastructure/mongodb"
	pginfra "github.com/rishusinha26/portfolio-backend/internal/infrastructure/postgres"
)

// Store bundles the repositories of the configured backend.
type Store struct {
	Messages    repository.MessageRepository
	Users       repository.UserRepository
	Projects    repository.ProjectRepository
	Experiences repository.ExperienceRepository

	closeFn func()
}

// Close releases the underlying connection pool.
func (s *Store) Close() {
	if s != nil && s.closeFn != nil {
		s.closeFn()
	}
}

// Open connects to the store selected by STORE_DRIVER. Callers treat an error as fatal.
func Open(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Store, error) {
	switch cfg.StoreDriver {
	case "", "mongo", "mongodb":
		return openMongo(ctx, cfg, logger)
	case "postgres", "pg":
		return openPostgres(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

func openMongo(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Store, error) {
	client, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoTimeout)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	db := client.Database(cfg.MongoDB)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		logger.WithError(err).Warn("mongo index creation failed")
	}
	logger.WithField("db", cfg.MongoDB).Info("connected to mongodb")
	return &Store{
		Messages:    mongodb.NewMessageRepository(db),
		Users:       mongodb.NewUserRepository(db),
		Projects:    mongodb.NewProjectRepository(db),
		Experiences: mongodb.NewExperienceRepository(db),
		closeFn:     func() { _ = client.Disconnect(context.Background()) },
	}, nil
}

func openPostgres(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Store, error) {
	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logger.WithField("db", cfg.DBName).Info("connected to postgres")
	return &Store{
		Messages:    pginfra.NewMessageRepository(pool),
		Users:       pginfra.NewUserRepository(pool),
		Projects:    pginfra.NewProjectRepository(pool),
		Experiences: pginfra.NewExperienceRepository(pool),
		closeFn:     pool.Close,
	}, nil
}
