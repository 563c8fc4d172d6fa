// Package server exposes game sessions over HTTP and websockets.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/lox/wildpoker/internal/game"
	"github.com/lox/wildpoker/internal/items"
	"github.com/lox/wildpoker/internal/store"
)

// Config holds what the server needs to host sessions.
type Config struct {
	Rules          game.Rules
	Store          store.Store
	Seed           int64
	AllowedOrigins []string
	Logger         *log.Logger
}

// Server hosts game sessions
type Server struct {
	sessions *SessionManager
	router   *gin.Engine
	upgrader websocket.Upgrader
	origins  []string
	logger   *log.Logger
}

// NewServer creates a server and registers its routes
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		sessions: NewSessionManager(cfg.Rules, cfg.Store, cfg.Seed, logger),
		origins:  cfg.AllowedOrigins,
		logger:   logger.WithPrefix("server"),
	}
	s.upgrader = websocket.Upgrader{
		CheckOrigin:     s.checkOrigin,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler for all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Sessions returns the session manager.
func (s *Server) Sessions() *SessionManager {
	return s.sessions
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) allowAll() bool {
	return len(s.origins) == 0 || slices.Contains(s.origins, "*")
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return origin == "" || s.allowAll() || slices.Contains(s.origins, origin)
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if s.allowAll() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.origins
	}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "OK") })
	r.GET("/catalog", s.handleCatalog)

	api := r.Group("/sessions")
	{
		api.POST("", s.handleCreate)
		api.GET("/:id", s.handleGet)
		api.GET("/:id/multipliers", s.handleMultipliers)
		api.GET("/:id/ws", s.handleWebSocket)

		api.POST("/:id/start", s.handleMove(MessageTypeStart))
		api.POST("/:id/toggle", s.handleMove(MessageTypeToggle))
		api.POST("/:id/confirm", s.handleMove(MessageTypeConfirm))
		api.POST("/:id/next-subround", s.handleMove(MessageTypeNextSubround))
		api.POST("/:id/next-round", s.handleMove(MessageTypeNextRound))
		api.POST("/:id/reset", s.handleMove(MessageTypeReset))
		api.POST("/:id/shop/refresh", s.handleMove(MessageTypeRefreshShop))
		api.POST("/:id/shop/buy", s.handleMove(MessageTypeBuy))
		api.POST("/:id/shop/sell", s.handleMove(MessageTypeSell))
	}
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("Request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status, body := errorStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, body)
}

func (s *Server) handleCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, items.Catalog())
}

func (s *Server) handleCreate(c *gin.Context) {
	session, err := s.sessions.Create(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, session.Snapshot())
}

func (s *Server) handleGet(c *gin.Context) {
	session, err := s.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

func (s *Server) handleMultipliers(c *gin.Context) {
	session, err := s.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	view := session.Snapshot()
	c.JSON(http.StatusOK, session.engine.Multipliers(view.State))
}

// handleMove applies the move named by t. Toggle, buy and sell read their
// argument from the JSON body.
func (s *Server) handleMove(t MessageType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var args CommandArgs
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&args); err != nil {
				s.fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
				return
			}
		}
		move, _ := commandMove(t, args)

		view, err := s.sessions.Mutate(c.Request.Context(), c.Param("id"), move)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func (s *Server) handleWebSocket(c *gin.Context) {
	id := c.Param("id")
	session, err := s.sessions.Get(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}

	ws, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	conn := NewConnection(ws, id, s, s.logger)
	session.attach(conn)
	conn.Start()
	s.logger.Info("Client connected", "session", id)

	if msg, err := NewMessage(MessageTypeState, session.Snapshot()); err == nil {
		_ = conn.SendMessage(msg)
	}

	go func() {
		<-conn.Done()
		session.detach(conn)
		s.logger.Info("Client disconnected", "session", id)
	}()
}
