package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/arkadasai/demo-api/internal/config"
	"github.com/arkadasai/demo-api/internal/db"
	"github.com/arkadasai/demo-api/internal/http/api/front"
	"github.com/arkadasai/demo-api/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// shutdownTimeout bounds graceful drain on exit.
const shutdownTimeout = 5 * time.Second

// RunServer boots the API server over a fresh in-memory store and blocks
// until ctx is cancelled or the listener fails.
func RunServer(ctx context.Context, cfg config.Config) error {
	conn, err := db.Open()
	if err != nil {
		return err
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}
	if errSeed := db.SeedCatalog(conn, cfg.Plans); errSeed != nil {
		return errSeed
	}

	sessions := session.NewStore()

	gin.SetMode(gin.ReleaseMode)
	engine := NewEngine(conn, sessions, cfg)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if errShutdown := srv.Shutdown(shutdownCtx); errShutdown != nil {
			return fmt.Errorf("app: shutdown: %w", errShutdown)
		}
		return nil
	case errServe := <-errCh:
		if errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			return fmt.Errorf("app: serve: %w", errServe)
		}
		return nil
	}
}

// NewEngine assembles the gin engine with middleware and routes.
func NewEngine(conn *gorm.DB, sessions *session.Store, cfg config.Config) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger())
	engine.Use(cors.New(corsConfig()))
	front.RegisterRoutes(engine, conn, sessions, cfg.Chat)
	return engine
}

// corsConfig allows any origin so mobile and web clients need no extra setup.
func corsConfig() cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Authorization", "Content-Type"}
	return corsCfg
}

// requestLogger emits one structured line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("request")
	}
}
