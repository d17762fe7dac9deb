package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"membership-backend/internal/config"
	infraCache "membership-backend/internal/infrastructure/cache"
	"membership-backend/internal/infrastructure/database"
	"membership-backend/internal/infrastructure/storage"
	"membership-backend/pkg/cache"
	"membership-backend/pkg/jwt"

	membreHandler "membership-backend/internal/domains/membre/handler"
	membreRepo "membership-backend/internal/domains/membre/repository"
	membreService "membership-backend/internal/domains/membre/service"
	utilisateurHandler "membership-backend/internal/domains/utilisateur/handler"
	utilisateurRepo "membership-backend/internal/domains/utilisateur/repository"
	utilisateurService "membership-backend/internal/domains/utilisateur/service"
)

// Container holds the full dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config,
// infrastructure, repositories, services, handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Storage    *storage.MinIOStorage
	JWTManager *jwt.Manager

	MembreRepo      membreRepo.RepositoryInterface
	UtilisateurRepo utilisateurRepo.RepositoryInterface

	MembreService      membreService.ServiceInterface
	UtilisateurService utilisateurService.ServiceInterface

	MembreHandler      *membreHandler.MembreHandler
	UtilisateurHandler *utilisateurHandler.UtilisateurHandler

	redisCache *infraCache.RedisCache
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("configuration loaded")

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Info().Msg("database connected")

	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err := redisCache.Connect(context.Background()); err != nil {
		// repositories fall back to the database on cache errors
		log.Warn().Err(err).Msg("redis connection failed, continuing without cache")
	} else {
		log.Info().Msg("redis connected")
	}
	c.redisCache = redisCache
	c.Cache = redisCache

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init minio storage: %w", err)
	}
	c.Storage = minioStorage
	log.Info().Str("bucket", cfg.MinIO.Bucket).Msg("minio storage ready")

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
	)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("dependency container initialized")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.MembreRepo = membreRepo.NewPostgresRepository(pool, c.Cache)
	c.UtilisateurRepo = utilisateurRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.MembreService = membreService.NewMembreService(c.MembreRepo, c.Storage)
	c.UtilisateurService = utilisateurService.NewUtilisateurService(c.UtilisateurRepo, c.JWTManager)
}

func (c *Container) initHandlers() {
	c.MembreHandler = membreHandler.NewMembreHandler(c.MembreService)
	c.UtilisateurHandler = utilisateurHandler.NewUtilisateurHandler(c.UtilisateurService)
}

// Cleanup releases infrastructure resources. Called on shutdown.
func (c *Container) Cleanup() {
	if c.redisCache != nil {
		if err := c.redisCache.Close(); err != nil {
			log.Error().Err(err).Msg("error closing redis connection")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Info().Msg("container cleanup complete")
}
