// Package server exposes the HTTP surface: the snapshot API, the embedded
// viewer page, the WebSocket endpoint and operational routes.
package server

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"trading-monitor/internal/hub"
	"trading-monitor/internal/metrics"
	"trading-monitor/internal/model"
)

//go:embed index.html
var indexHTML []byte

// SnapshotProvider serves the aggregate market snapshot.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*model.AggregateSnapshot, error)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server wires the routes over gin and owns the listener lifecycle.
type Server struct {
	log      *slog.Logger
	hub      *hub.Hub
	provider SnapshotProvider
	metrics  *metrics.Metrics
	router   *gin.Engine
	httpSrv  *http.Server
}

// New builds the router. metrics may be nil, which drops the /metrics route.
func New(log *slog.Logger, provider SnapshotProvider, h *hub.Hub, m *metrics.Metrics) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		log:      log,
		hub:      h,
		provider: provider,
		metrics:  m,
	}

	r := gin.New()
	r.Use(gin.Recovery(), corsMiddleware())

	r.GET("/", s.handleIndex)
	r.GET("/api/data", s.handleData)
	r.GET("/api/health", s.handleHealth)
	r.GET("/ws", s.handleWS)
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	s.router = r
	return s
}

// corsMiddleware answers every request permissively and short-circuits
// preflight with 204.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (s *Server) handleData(c *gin.Context) {
	snap, err := s.provider.Snapshot(c.Request.Context())
	if err != nil {
		s.log.Error("snapshot failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"clients": s.hub.ClientCount(),
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "err", err)
		return
	}
	s.hub.Register(conn)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", addr)
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
