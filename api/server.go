package api

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/moyoez/configd/api/controllers"
	"github.com/moyoez/configd/api/middlewares"
	"github.com/moyoez/configd/api/notifyhub"
	"github.com/moyoez/configd/tool"
)

// Server represents the local-only HTTP API for the GUI config.
type Server struct {
	addr    string
	ctrl    *controllers.ConfigController
	hub     *notifyhub.Hub
	limiter *middlewares.RateLimiter
	server  *http.Server
	mu      sync.RWMutex
}

// NewServer creates a new API server instance. hub and limiter may be nil.
func NewServer(addr string, ctrl *controllers.ConfigController, hub *notifyhub.Hub, limiter *middlewares.RateLimiter) *Server {
	return &Server{
		addr:    addr,
		ctrl:    ctrl,
		hub:     hub,
		limiter: limiter,
	}
}

// Handler builds the routed engine.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

func (s *Server) setupRoutes() *gin.Engine {
	if tool.DefaultLogger.GetLevel() == log.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())
	engine.Use(middlewares.AllowAllCORS())

	self := engine.Group("/api/self/v1", middlewares.OnlyAllowLocal)
	{
		self.GET("/status", s.ctrl.HandleStatus)                                       // running / loading / loaded
		self.GET("/config", s.ctrl.HandleConfigGet)                                    // current snapshot
		self.PATCH("/config", s.limiter.Middleware(), s.ctrl.HandleConfigPatch)        // partial update
		self.POST("/config/reload", s.limiter.Middleware(), s.ctrl.HandleConfigReload) // re-run load
		self.POST("/config/reset", s.limiter.Middleware(), s.ctrl.HandleConfigReset)   // back to defaults
		self.POST("/config/flush", s.ctrl.HandleConfigFlush)                           // write pending changes now
		self.GET("/presentation", s.ctrl.HandlePresentationGet)                        // theme / fonts / size
		if s.hub != nil {
			self.GET("/notify-ws", notifyhub.HandleNotifyWS(s.hub))
		}
	}
	return engine
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	engine := s.setupRoutes()

	s.mu.Lock()
	s.server = &http.Server{
		Addr:    s.addr,
		Handler: engine,
	}
	srv := s.server
	s.mu.Unlock()

	tool.DefaultLogger.Infof("Starting API server on http://%s", s.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops a started server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.RLock()
	srv := s.server
	s.mu.RUnlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
