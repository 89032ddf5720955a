// Package api exposes recorded sweep results over HTTP. It reads the flat
// CSV sink; there is no database behind it.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Server struct {
	router      *gin.Engine
	server      *http.Server
	resultsPath string
	configPath  string
}

type ServerConfig struct {
	Bind        string
	Port        string
	ResultsPath string
	ConfigPath  string
}

func NewServer(cfg ServerConfig) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(accessLogger())

	server := &Server{
		router:      router,
		resultsPath: cfg.ResultsPath,
		configPath:  cfg.ConfigPath,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%s", cfg.Bind, cfg.Port),
			Handler:      router.Handler(),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	server.setupRoutes()

	return server
}

func (s *Server) Start() error {
	log.Info().Str("address", s.server.Addr).Msg("Starting api server")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start api server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown() {
	log.Info().Msg("Stopping API server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping API server")
	}

	log.Info().Msg("API server stopped successfully")
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.HealthCheckHandler)

	api := s.router.Group("/api/url-check")
	api.GET("/reports", s.GetSweepReport)
	api.POST("/config", s.UpdateConfigHandler)
}

func accessLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		}

		event.Str("method", c.Request.Method).
			Str("path", c.Request.URL.RequestURI()).
			Str("client", c.ClientIP()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("report request")
	}
}
