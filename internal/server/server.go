// Package server exposes the pipelines as on-demand HTTP triggers.
package server

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/signalworks/sigscan/pkg/sigscan"
)

// Runner is one triggerable pipeline.
type Runner interface {
	Name() string
	Run(ctx context.Context) (sigscan.RunReport, error)
}

// statusResponse is the JSON body returned by trigger endpoints.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Agent   string `json:"agent"`
}

// Server routes trigger requests to the registered pipelines.
type Server struct {
	engine *gin.Engine
	logger *log.Logger
}

// New builds the router. Each runner gets a POST trigger route at
// /run/<slug>; GET is accepted too for manual invocation from a browser.
func New(logger *log.Logger, runners ...Runner) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{engine: engine, logger: logger}
	for _, r := range runners {
		path := "/run/" + slug(r.Name())
		engine.POST(path, s.trigger(r))
		engine.GET(path, s.trigger(r))
	}
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.engine }

// ListenAndServe blocks serving trigger requests on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Printf("listening on %s", addr)
	return s.engine.Run(addr)
}

func (s *Server) trigger(r Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.logger.Printf("trigger: %s", r.Name())
		report, err := r.Run(c.Request.Context())
		if err != nil {
			s.logger.Printf("%s run failed: %v", r.Name(), err)
			c.JSON(http.StatusInternalServerError, statusResponse{
				Status:  "error",
				Message: err.Error(),
				Agent:   r.Name(),
			})
			return
		}
		c.JSON(http.StatusOK, statusResponse{
			Status:  "success",
			Message: report.String(),
			Agent:   r.Name(),
		})
	}
}

// slug turns an agent name into a URL path segment, e.g.
// "Debt Scanner" -> "debt-scanner".
func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
