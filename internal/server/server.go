package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shouni/go-storyboard-kit/pkg/chat"
	"github.com/shouni/go-storyboard-kit/pkg/pipeline"
)

const (
	maxBodyBytes      = 1 << 20
	maxMessageBytes   = 10 << 10
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// ResponderFactory は会話ごとに新しいチャット相手を作成します。
type ResponderFactory func() (chat.Responder, error)

// Config は Server の依存関係です。
type Config struct {
	Generator    pipeline.Generator
	NewResponder ResponderFactory
	SessionTTL   time.Duration
	Registry     *prometheus.Registry
	Logger       *slog.Logger
}

// Server はストーリーボード生成とチャットを HTTP で提供します。
type Server struct {
	engine    *gin.Engine
	generator pipeline.Generator
	newChat   ResponderFactory
	sessions  *SessionStore
	metrics   *Metrics
	logger    *slog.Logger
}

// New はルーティングを設定した Server を返します。
func New(cfg Config) (*Server, error) {
	if cfg.Generator == nil {
		return nil, fmt.Errorf("storyboard generator is required")
	}
	if cfg.NewResponder == nil {
		return nil, fmt.Errorf("responder factory is required")
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("session TTL must be positive")
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Server{
		engine:    gin.New(),
		generator: cfg.Generator,
		newChat:   cfg.NewResponder,
		sessions:  NewSessionStore(cfg.SessionTTL),
		metrics:   NewMetrics(cfg.Registry),
		logger:    cfg.Logger,
	}
	s.routes(cfg.Registry)
	return s, nil
}

func (s *Server) routes(reg *prometheus.Registry) {
	s.engine.Use(gin.Recovery(), RequestLogger(s.logger))

	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	api := s.engine.Group("/api", LimitBody(maxBodyBytes))
	{
		api.POST("/storyboards", s.handleGenerate)
		api.POST("/storyboards/stream", s.handleGenerateStream)

		api.POST("/chat/sessions", s.handleCreateChat)
		api.GET("/chat/sessions/:id/messages", s.handleListMessages)
		api.POST("/chat/sessions/:id/messages", s.handleSendMessage)
	}
}

// Handler は http.Handler としてのルーターを返します。
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run は addr で待ち受け、ctx がキャンセルされたら処理中のリクエストを待って停止します。
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	return nil
}
