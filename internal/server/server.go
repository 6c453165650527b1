// Package server exposes the session's action surface over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/sora-estate/maisoku/internal/config"
	"github.com/sora-estate/maisoku/internal/fetch"
	"github.com/sora-estate/maisoku/internal/session"
)

// Server serves the flyer conversion API.
type Server struct {
	httpServer *http.Server
}

// New builds the router and wires the handlers.
func New(cfg config.Config, sess *session.Session, downloader *fetch.Downloader) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:           cfg.ListenAddr,
			Handler:        newRouter(sess, downloader),
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   5 * time.Minute, // conversion + print can be slow
			MaxHeaderBytes: 1 << 20,
		},
	}
}

func newRouter(sess *session.Session, downloader sourceFetcher) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	h := newHandler(sess, downloader)

	router.GET("/health", h.health)
	router.GET("/preview", h.preview)

	api := router.Group("/api")
	{
		api.POST("/upload", h.upload)
		api.POST("/stage", h.stageURL)
		api.POST("/convert", h.convert)
		api.PUT("/language", h.setLanguage)
		api.GET("/listing", h.getListing)
		api.GET("/export", h.export)
	}

	return router
}

// Run blocks serving HTTP until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	log.Info().Str("addr", s.httpServer.Addr).Msg("server listening")
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("shutting down server")
	return s.httpServer.Shutdown(ctx)
}
