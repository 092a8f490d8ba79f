package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/folio-site/folio/backend/handlers"
	achrepo "github.com/folio-site/folio/backend/internal/achievements/repository"
	achservice "github.com/folio-site/folio/backend/internal/achievements/service"
	"github.com/folio-site/folio/backend/internal/config"
	contactrepo "github.com/folio-site/folio/backend/internal/contact/repository"
	contactservice "github.com/folio-site/folio/backend/internal/contact/service"
	pfrepo "github.com/folio-site/folio/backend/internal/portfolio/repository"
	pfservice "github.com/folio-site/folio/backend/internal/portfolio/service"
	"github.com/folio-site/folio/backend/internal/storage"
	"github.com/folio-site/folio/backend/internal/users"
	"github.com/folio-site/folio/backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	UsersCollection        = "users"
	PortfolioCollection    = "portfolios"
	AchievementsCollection = "achievements"
	ContactsCollection     = "contacts"
)

// App owns the external connections behind a running server.
type App struct {
	Mongo *mongo.Client
	DB    *mongo.Database
	Redis *redis.Client
	Deps  Deps
}

// ConnectMongo retries with exponential backoff to tolerate startup races
// with the database container.
func ConnectMongo(ctx context.Context, cfg config.MongoDBConfig) (*mongo.Client, error) {
	const maxAttempts = 5
	backoff := time.Second
	var errConn error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, err := dialMongo(ctx, cfg)
		if err == nil {
			return client, nil
		}
		errConn = err
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, err)
		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}
	return nil, fmt.Errorf("could not connect to MongoDB after %d attempts: %w", maxAttempts, errConn)
}

// dialMongo makes a single connection attempt bounded by cfg.Timeout. The
// client is only returned once the primary answers a ping.
func dialMongo(ctx context.Context, cfg config.MongoDBConfig) (*mongo.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().ApplyURI(cfg.URI).SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(dialCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping %s: %w", cfg.Database, err)
	}
	return client, nil
}

// connectRedis returns nil when Redis is not configured or unreachable;
// the server then falls back to in-process rate limiting.
func connectRedis(ctx context.Context, cfg config.RedisConfig) *redis.Client {
	if cfg.Host == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Host, cfg.Port, err)
		_ = rdb.Close()
		return nil
	}
	logger.Infof("connected to Redis %s:%s", cfg.Host, cfg.Port)
	return rdb
}

// Open connects to MongoDB (and Redis when configured) and builds every service.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	client, err := ConnectMongo(ctx, cfg.MongoDB)
	if err != nil {
		return nil, err
	}
	app := &App{Mongo: client, DB: client.Database(cfg.MongoDB.Database)}

	fail := func(err error) (*App, error) {
		app.Close(context.Background())
		return nil, err
	}

	userRepo, err := users.NewMongoUserRepository(ctx, app.DB.Collection(UsersCollection))
	if err != nil {
		return fail(fmt.Errorf("users repository: %w", err))
	}
	pr, err := pfrepo.NewMongoRepo(ctx, app.DB.Collection(PortfolioCollection))
	if err != nil {
		return fail(fmt.Errorf("portfolio repository: %w", err))
	}
	ar, err := achrepo.NewMongoRepo(ctx, app.DB.Collection(AchievementsCollection))
	if err != nil {
		return fail(fmt.Errorf("achievements repository: %w", err))
	}
	cr, err := contactrepo.NewMongoRepo(ctx, app.DB.Collection(ContactsCollection))
	if err != nil {
		return fail(fmt.Errorf("contact repository: %w", err))
	}
	store, err := storage.New(cfg.Storage)
	if err != nil {
		return fail(fmt.Errorf("storage: %w", err))
	}
	app.Redis = connectRedis(ctx, cfg.Redis)

	checks := map[string]handlers.Check{
		"mongo": func(ctx context.Context) error { return client.Ping(ctx, nil) },
	}
	if app.Redis != nil {
		rdb := app.Redis
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	app.Deps = Deps{
		Users:        users.NewService(userRepo),
		Portfolio:    pfservice.New(pr, store),
		Achievements: achservice.New(ar),
		Contact:      contactservice.New(cr),
		Storage:      store,
		Redis:        app.Redis,
		Checks:       checks,
	}
	return app, nil
}

func (a *App) Close(ctx context.Context) {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.Mongo != nil {
		if err := a.Mongo.Disconnect(ctx); err != nil {
			logger.Warnf("mongo disconnect: %v", err)
		}
	}
}

// Run opens every connection and serves until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	app, err := Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close(context.Background())
	return Serve(ctx, cfg, app.Deps)
}

// MemoryDeps wires every service to in-memory repositories. Nothing
// survives a restart; used by tests and `server --memory`.
func MemoryDeps(store storage.ObjectStorage) Deps {
	return Deps{
		Users:        users.NewService(users.NewMemoryUserRepository()),
		Portfolio:    pfservice.New(pfrepo.NewMemoryRepo(), store),
		Achievements: achservice.New(achrepo.NewMemoryRepo()),
		Contact:      contactservice.New(contactrepo.NewMemoryRepo()),
		Storage:      store,
	}
}

// Serve runs the HTTP server on deps until ctx is cancelled, then shuts
// down gracefully.
func Serve(ctx context.Context, cfg *config.Config, deps Deps) error {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      NewRouter(cfg, deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("starting server on %s (storage=%s, redis=%v)", srv.Addr, cfg.Storage.Backend, deps.Redis != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
