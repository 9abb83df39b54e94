package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/lambdakit/logger"
	"github.com/kbukum/lambdakit/server/middleware"
)

// ProxyFunc is an API Gateway proxy handler, as passed to lambda.Start.
type ProxyFunc func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// Server serves proxy handlers over HTTP using Gin.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     Config
	log        *logger.Logger
}

// New creates a new Server. No middleware is applied yet.
func New(cfg Config, log *logger.Logger) *Server {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	h2s := &http2.Server{
		IdleTimeout: time.Duration(cfg.IdleTimeout) * time.Second,
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      h2c.NewHandler(engine, h2s),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		engine:     engine,
		config:     cfg,
		log:        log.WithComponent("server"),
	}
}

// ApplyMiddleware applies recovery, request-id and request logging.
func (s *Server) ApplyMiddleware() {
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Recovery(s.log, WriteError))
	s.engine.Use(middleware.RequestLogger(s.log))
}

// Mount routes method and an API Gateway resource path to fn.
func (s *Server) Mount(method, resource string, fn ProxyFunc) {
	s.engine.Handle(method, ginRoute(resource), s.proxy(resource, fn))
	s.log.Debug("Handler mounted", map[string]interface{}{
		logger.FieldMethod: method,
		logger.FieldPath:   resource,
	})
}

func (s *Server) proxy(resource string, fn ProxyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := toProxyRequest(c, resource, s.config.Stage)
		if err != nil {
			WriteError(c, err)
			return
		}

		ctx := logger.ContextWithRequestID(c.Request.Context(), req.RequestContext.RequestID)
		resp, err := fn(ctx, req)
		if err != nil {
			// API Gateway answers 502 when the function itself fails.
			s.log.WithContext(ctx).Error("Handler returned error", logger.ErrorFields("invoke", err))
			resp := errorResponse(c, err)
			resp.StatusCode = http.StatusBadGateway
			writeProxyResponse(c, resp)
			return
		}
		writeProxyResponse(c, resp)
	}
}

// Handler returns the HTTP handler, for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start binds the port and begins serving in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("Server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	s.log.Info("HTTP server started", map[string]interface{}{
		"addr": listener.Addr().String(),
	})
	return nil
}

// Stop gracefully shuts down the server with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	s.log.Info("HTTP server shut down")
	return nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
