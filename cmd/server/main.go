package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"artmuseum/docs"
	"artmuseum/internal/auth"
	"artmuseum/internal/config"
	"artmuseum/internal/db"
	"artmuseum/internal/document"
	"artmuseum/internal/handler"
	"artmuseum/internal/log"
	"artmuseum/internal/metrics"
	"artmuseum/internal/model"
	"artmuseum/internal/repository"
	"artmuseum/internal/router"
	"artmuseum/internal/sequence"
	"artmuseum/internal/service"
)

// @title Art Museum Catalog API
// @version 1.0
// @description Museum catalog CRUD over MySQL, MongoDB and Neo4j with JWT authentication.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load("")
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := log.NewLogger(cfg.LogLevel, cfg.LogOutput)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

// run owns every connection it opens; all of them are released before it
// returns, whatever the outcome.
func run(cfg *config.Config, logger log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := openBackends(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer b.Close()

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)

	// Login falls back to the secondary store only when it is enabled and
	// distinct from the primary.
	var fallback repository.UserRepository
	if cfg.SecondaryUserBackend != cfg.PrimaryUserBackend {
		fallback = b.users[cfg.SecondaryUserBackend]
	}
	authService := service.NewAuthService(jwtService, b.users[cfg.PrimaryUserBackend], fallback)

	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(authService, logger.Component("auth")),
		Collections: map[string]*handler.CollectionHandler{},
		Users:       map[string]*handler.UserHandler{},
	}
	for backend, repo := range b.collections {
		prefix := "/api/" + backend + "/Collections"
		handlers.Collections[backend] = handler.NewCollectionHandler(repo, prefix, logger.Component(backend))
	}
	for backend, repo := range b.users {
		prefix := "/api/" + backend + "/Users"
		handlers.Users[backend] = handler.NewUserHandler(service.NewUserService(repo), prefix, logger.Component(backend))
	}
	if b.mongo != nil {
		docLog := logger.Component(config.BackendMongo)
		handlers.Artists = handler.NewArtistHandler(repository.NewMongoArtistRepository(b.mongo), "/api/mongo/Artists", docLog)
		handlers.Artworks = handler.NewDocumentHandler[document.Artwork](
			repository.NewMongoDocumentRepository[document.Artwork](b.mongo, document.ArtworksCollection), "/api/mongo/Artworks", docLog)
		handlers.Exhibitions = handler.NewDocumentHandler[document.Exhibition](
			repository.NewMongoDocumentRepository[document.Exhibition](b.mongo, document.ExhibitionsCollection), "/api/mongo/Exhibitions", docLog)
		handlers.Locations = handler.NewDocumentHandler[document.Location](
			repository.NewMongoDocumentRepository[document.Location](b.mongo, document.LocationsCollection), "/api/mongo/Locations", docLog)
	}

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, jwtService, handlers, logger, metrics.New())

	logger.Info().
		Strs("backends", cfg.EnabledBackends()).
		Str("primary_users", cfg.PrimaryUserBackend).
		Str("id_allocator", cfg.IDAllocator).
		Str("swagger", swaggerURL(cfg.SwaggerHost)).
		Msg("starting server")

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown")
		}
	}()

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server start %s: %w", addr, err)
	}
	return nil
}

// backends holds the repositories of every enabled store and the functions
// that release their connections.
type backends struct {
	collections map[string]repository.CollectionRepository
	users       map[string]repository.UserRepository
	mongo       *mongo.Database
	closers     []func()
}

// Close releases connections in reverse order of opening.
func (b *backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
	b.closers = nil
}

// openBackends connects every enabled store. On failure whatever was already
// opened is closed before the error is returned.
func openBackends(ctx context.Context, cfg *config.Config, logger log.Logger) (_ *backends, err error) {
	b := &backends{
		collections: map[string]repository.CollectionRepository{},
		users:       map[string]repository.UserRepository{},
	}
	defer func() {
		if err != nil {
			b.Close()
		}
	}()

	var alloc sequence.Allocator
	if cfg.IDAllocator == config.AllocatorRedis {
		counter := sequence.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		b.closers = append(b.closers, func() { _ = counter.Close() })
		if err := counter.Ping(ctx); err != nil {
			return nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
		}
		alloc = counter
	}

	if cfg.Enabled(config.BackendMySQL) {
		logger.Info().Str("dsn", db.MaskDSN(cfg.MySQLDSN)).Msg("connecting to mysql")
		gormDB, err := db.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, fmt.Errorf("database init: %w", err)
		}
		if sqlDB, err := gormDB.DB(); err == nil {
			b.closers = append(b.closers, func() { _ = sqlDB.Close() })
		}
		if cfg.MySQLAutoMigrate {
			if err := gormDB.AutoMigrate(model.All()...); err != nil {
				return nil, fmt.Errorf("auto-migrate: %w", err)
			}
		}
		b.collections[config.BackendMySQL] = repository.NewMySQLCollectionRepository(gormDB, repository.CallDeleteCollection)
		b.users[config.BackendMySQL] = repository.NewMySQLUserRepository(gormDB)
	}

	if cfg.Enabled(config.BackendMongo) {
		mongoDB, err := db.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("mongo init: %w", err)
		}
		b.closers = append(b.closers, func() { _ = mongoDB.Client().Disconnect(context.Background()) })
		b.mongo = mongoDB
		b.collections[config.BackendMongo] = repository.NewMongoCollectionRepository(mongoDB, alloc)
		b.users[config.BackendMongo] = repository.NewMongoUserRepository(mongoDB, alloc)
	}

	if cfg.Enabled(config.BackendNeo4j) {
		graph, err := db.NewNeo4j(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase)
		if err != nil {
			return nil, fmt.Errorf("neo4j init: %w", err)
		}
		b.closers = append(b.closers, func() { _ = graph.Close(context.Background()) })
		b.collections[config.BackendNeo4j] = repository.NewNeo4jCollectionRepository(graph, alloc)
		b.users[config.BackendNeo4j] = repository.NewNeo4jUserRepository(graph, alloc)
	}

	return b, nil
}

func swaggerURL(host string) string {
	switch {
	case host == "":
		return "http://localhost:5000/swagger/index.html"
	case strings.HasPrefix(host, "http://"), strings.HasPrefix(host, "https://"):
		return host + "/swagger/index.html"
	default:
		return "http://" + host + "/swagger/index.html"
	}
}
