package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/percept-vision/percept/internal/config"
)

// Config holds server configuration.
type Config struct {
	Host              string
	Port              int
	CORSOrigin        string
	MaxUploadMB       int
	TimeoutSec        int
	IoUThreshold      float32
	ImageThreshold    uint8
	ImageMaxValue     uint8
	RateLimitEnabled  bool
	RequestsPerMinute int
}

// ConfigFromApp maps the application configuration onto server settings.
func ConfigFromApp(cfg *config.Config) Config {
	return Config{
		Host:              cfg.Server.Host,
		Port:              cfg.Server.Port,
		CORSOrigin:        cfg.Server.CORSOrigin,
		MaxUploadMB:       cfg.Server.MaxUploadMB,
		TimeoutSec:        cfg.Server.TimeoutSec,
		IoUThreshold:      float32(cfg.Postprocess.IoUThreshold),
		ImageThreshold:    uint8(cfg.Image.Threshold),
		ImageMaxValue:     uint8(cfg.Image.MaxValue),
		RateLimitEnabled:  cfg.Server.RateLimitEnabled,
		RequestsPerMinute: cfg.Server.RequestsPerMinute,
	}
}

// Server wraps the HTTP API for box post-processing and image operations.
type Server struct {
	config      Config
	rateLimiter *RateLimiter
}

// NewServer creates a server with the given configuration.
func NewServer(cfg Config) *Server {
	s := &Server{config: cfg}
	if cfg.RateLimitEnabled {
		s.rateLimiter = NewRateLimiter(cfg.RequestsPerMinute)
	}
	return s
}

// Addr returns the listen address derived from the configuration.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// SetupRoutes registers all HTTP handlers on the given mux.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.metricsMiddleware("/health", s.handleHealth)))
	mux.HandleFunc("/version", s.corsMiddleware(s.metricsMiddleware("/version", s.handleVersion)))
	mux.HandleFunc("/postprocess/nms", s.corsMiddleware(s.metricsMiddleware("/postprocess/nms", s.rateLimitMiddleware(s.handleNMS))))
	mux.HandleFunc("/image/invert", s.corsMiddleware(s.metricsMiddleware("/image/invert", s.rateLimitMiddleware(s.handleInvert))))
	mux.HandleFunc("/image/threshold", s.corsMiddleware(s.metricsMiddleware("/image/threshold", s.rateLimitMiddleware(s.handleThreshold))))
	mux.HandleFunc("/ws/nms", s.handleNMSStream)
}

// Timeout returns the per-request timeout.
func (s *Server) Timeout() time.Duration {
	return time.Duration(s.config.TimeoutSec) * time.Second
}

// NMSRequest is the JSON body accepted by the NMS endpoint. Boxes are
// corner-form [x1, y1, x2, y2] quadruples and must match Scores in length.
type NMSRequest struct {
	Boxes     [][4]float32 `json:"boxes"`
	Scores    []float32    `json:"scores"`
	Threshold *float32     `json:"threshold,omitempty"`
}

// NMSResponse lists the indices of boxes kept by suppression, in
// acceptance order.
type NMSResponse struct {
	Keep      []int   `json:"keep"`
	Count     int     `json:"count"`
	Threshold float32 `json:"threshold"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// VersionResponse is returned by the version endpoint.
type VersionResponse struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
}

// ErrorResponse is the JSON error envelope for all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
