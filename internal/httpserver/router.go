package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"webauth/internal/handler"
)

// Pinger reports database readiness; *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *handler.AuthHandler,
	db Pinger,
	maxBodyBytes int64,
	logger *zap.Logger,
) *Router {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(
		gin.Recovery(),
		Trace(),
		AccessLog(logger),
		CORS(),
		MaxBody(maxBodyBytes),
	)

	r.NoMethod(func(c *gin.Context) {
		handler.Fail(c, http.StatusMethodNotAllowed, handler.KindMethodNotAllowed, "Method not allowed")
	})
	r.NoRoute(func(c *gin.Context) {
		handler.Fail(c, http.StatusNotFound, handler.KindNotFound, "Not found")
	})

	// Health endpoints
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.Warn("readiness check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_not_ready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	auth := r.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.OPTIONS("/signup", preflight)
		auth.POST("/login", authHandler.Login)
		auth.OPTIONS("/login", preflight)
	}

	return &Router{Engine: r}
}

// preflight answers OPTIONS with 200 and no body; CORS() already set the headers.
func preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Server wraps the engine in an http.Server listening on addr.
func (r *Router) Server(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           r.Engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
