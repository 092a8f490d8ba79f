package server

import (
	"sync"
	"time"

	"github.com/folio-site/folio/backend/handlers"
	achhandler "github.com/folio-site/folio/backend/internal/achievements/handler"
	achservice "github.com/folio-site/folio/backend/internal/achievements/service"
	"github.com/folio-site/folio/backend/internal/config"
	contacthandler "github.com/folio-site/folio/backend/internal/contact/handler"
	contactservice "github.com/folio-site/folio/backend/internal/contact/service"
	pfhandler "github.com/folio-site/folio/backend/internal/portfolio/handler"
	pfservice "github.com/folio-site/folio/backend/internal/portfolio/service"
	"github.com/folio-site/folio/backend/internal/storage"
	"github.com/folio-site/folio/backend/internal/tokens"
	"github.com/folio-site/folio/backend/internal/users"
	"github.com/folio-site/folio/backend/pkg/logger"
	"github.com/folio-site/folio/backend/pkg/metrics"
	"github.com/folio-site/folio/backend/pkg/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Deps are the services the HTTP surface is built from. Redis and Checks
// are optional.
type Deps struct {
	Users        *users.Service
	Portfolio    *pfservice.Service
	Achievements *achservice.Service
	Contact      *contactservice.Service
	Storage      storage.ObjectStorage
	Redis        *redis.Client
	Checks       map[string]handlers.Check
}

var registerOnce sync.Once

// NewRouter assembles the gin engine with every route mounted.
func NewRouter(cfg *config.Config, d Deps) *gin.Engine {
	registerOnce.Do(func() { metrics.RegisterCollectors(prometheus.DefaultRegisterer) })

	r := gin.New()
	r.Use(logger.GinMiddleware(), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))

	auth := middleware.AuthMiddleware(tokens.NewVerifier(cfg.JWT.Secret))

	handlers.RegisterHealth(r, time.Now(), d.Checks)
	handlers.RegisterSwagger(r)
	handlers.RegisterUploads(r, d.Storage)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.NewAuthHandler(d.Users, cfg.JWT.Secret, cfg.JWT.AccessTokenTTL).Register(r, auth)
	pfhandler.RegisterPortfolioRoutes(r, d.Portfolio, auth)
	achhandler.RegisterAchievementRoutes(r, d.Achievements, auth)
	contacthandler.RegisterContactRoutes(r, d.Contact, auth, contactLimiter(cfg.RateLimit, d.Redis))
	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	return c
}

// contactLimiter returns nil when rate limiting is disabled.
func contactLimiter(rl config.RateLimitConfig, rdb *redis.Client) gin.HandlerFunc {
	if !rl.Enabled {
		return nil
	}
	if rl.UseRedis && rdb != nil {
		win := time.Duration(rl.WindowSeconds) * time.Second
		logger.Infof("contact form: redis rate limiter (%d/%s)", rl.Burst, win)
		return middleware.RedisRateLimitMiddleware(rdb, "contact", rl.RPS, rl.Burst, win)
	}
	logger.Infof("contact form: in-memory rate limiter (rps=%.2f burst=%d)", rl.RPS, rl.Burst)
	return middleware.RateLimitMiddleware(rl.RPS, rl.Burst)
}
