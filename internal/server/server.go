// internal/server/server.go
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mitoseqfix-core/window"
	"mitoseqfix/internal/cmdutil"
	"mitoseqfix/internal/config"
	"mitoseqfix/internal/logger"
	"mitoseqfix/internal/metrics"
	"mitoseqfix/internal/output"
	"mitoseqfix/internal/version"
	"mitoseqfix/pkg/api"
)

const shutdownTimeout = 10 * time.Second

// Server exposes the repair pipeline over HTTP.
type Server struct {
	cfg     config.Server
	rep     cmdutil.Repairer
	log     logger.Logger
	metrics *metrics.Metrics
	router  *gin.Engine
}

// New builds the router. m may be nil, in which case /metrics is not served.
func New(cfg config.Server, rep cmdutil.Repairer, log logger.Logger, m *metrics.Metrics) *Server {
	s := &Server{cfg: cfg, rep: rep, log: log, metrics: m}
	s.router = s.buildRouter()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(s.log))
	r.Use(CORSMiddleware(s.cfg.CORSOrigins))

	r.GET("/healthz", s.health)
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}
	apiGroup := r.Group("/api", BodySizeLimiter(s.cfg.MaxBodyBytes))
	apiGroup.POST("/repair", s.repair)
	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Get()})
}

// repair answers 200 with the repaired sequence, or 400 with the error text
// in the repaired field and success=false.
func (s *Server) repair(c *gin.Context) {
	var req api.RepairRequestV1
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, fmt.Errorf("invalid request body: %w", err))
		return
	}
	res, ok, err := cmdutil.RepairText(c.Request.Context(), s.rep, req.Sequence)
	if err != nil {
		s.fail(c, err)
		return
	}
	if !ok {
		s.fail(c, window.ErrEmptySequence)
		return
	}
	c.JSON(http.StatusOK, output.ToAPI(res))
}

func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, api.RepairV1{Repaired: "Error: " + err.Error()})
}

// Serve listens on cfg.Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener is Serve on an existing listener.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	s.log.Info("Starting HTTP server", "address", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	s.log.Debug("Shutdown requested, draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("Server shutdown completed")
	return <-errCh
}
