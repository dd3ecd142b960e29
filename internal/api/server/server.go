// Package server wires the gin router and HTTP lifecycle for the history API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"memo-whisper/internal/api/handlers"
	"memo-whisper/internal/api/middleware"
	"memo-whisper/internal/app/repository"
	"memo-whisper/internal/config"
)

// Server exposes the transcription history over HTTP.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
}

func New(cfg config.Config, db repository.TranscriptionDAO, logger *zap.Logger) *Server {
	if !cfg.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logging(logger))
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		})
	})

	transcriptions := handlers.NewTranscriptionHandler(db)
	v1 := router.Group("/api/v1")
	{
		v1.GET("/transcriptions", transcriptions.List)
		v1.GET("/transcriptions/search", transcriptions.Search)
		v1.GET("/stats", transcriptions.Stats)
	}

	httpServer := &http.Server{
		Addr:         cfg.Serve.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		router:     router,
		httpServer: httpServer,
		logger:     logger,
	}
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info("starting history server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down history server")
	return s.httpServer.Shutdown(ctx)
}

// Router returns the gin engine, for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
