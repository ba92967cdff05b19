// Package server exposes a trained network over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/born-ml/densenet/internal/matrix"
	"github.com/born-ml/densenet/internal/nn"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Config holds configuration for the HTTP server.
type Config struct {
	MaxBatch        int           // Largest accepted batch (default: 1024)
	ShutdownTimeout time.Duration // Grace period for in-flight requests (default: 5s)
	Logger          *slog.Logger  // Request log destination (default: discard)
}

// ModelInfo describes the served network.
type ModelInfo struct {
	ID         uuid.UUID `json:"id"`
	InputSize  int       `json:"input_size"`
	OutputSize int       `json:"output_size"`
	Activation string    `json:"activation"`
	Loss       string    `json:"loss"`
	Layers     [][2]int  `json:"layers"` // [outputSize, inputSize] per layer
}

// PredictRequest is the body of POST /v1/predict.
type PredictRequest struct {
	Input []float64 `json:"input" binding:"required"`
}

// PredictResponse is the reply of POST /v1/predict.
type PredictResponse struct {
	Output []float64 `json:"output"`
}

// BatchRequest is the body of POST /v1/predict/batch.
type BatchRequest struct {
	Inputs [][]float64 `json:"inputs" binding:"required"`
}

// BatchResponse is the reply of POST /v1/predict/batch.
type BatchResponse struct {
	Outputs [][]float64 `json:"outputs"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server serves inference requests for one network.
type Server struct {
	net    *nn.Network
	info   ModelInfo
	cfg    Config
	engine *gin.Engine
}

// New creates a server for net, reported under id.
func New(net *nn.Network, id uuid.UUID, cfg Config) *Server {
	if cfg.MaxBatch <= 0 {
		cfg.MaxBatch = 1024
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	info := ModelInfo{
		ID:         id,
		InputSize:  net.InputSize(),
		OutputSize: net.OutputSize(),
		Activation: net.Activation().Name,
		Loss:       net.Loss().Name,
	}
	for i := 0; i < net.NumLayers(); i++ {
		l := net.Layer(i)
		info.Layers = append(info.Layers, [2]int{l.OutputSize(), l.InputSize()})
	}

	s := &Server{net: net, info: info, cfg: cfg}
	s.engine = gin.New()
	s.engine.Use(gin.Recovery(), requestLogger(cfg.Logger))
	s.engine.GET("/healthz", s.health)
	v1 := s.engine.Group("/v1")
	v1.GET("/model", s.model)
	v1.POST("/predict", s.predict)
	v1.POST("/predict/batch", s.predictBatch)
	return s
}

// Handler returns the HTTP handler serving every endpoint.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("serving", "addr", addr, "model", s.info.ID)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) model(c *gin.Context) {
	c.JSON(http.StatusOK, s.info)
}

func (s *Server) predict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	out, err := s.net.FeedForward(req.Input)
	if err != nil {
		s.fail(c, err)
		return
	}
	if !finite(out) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "network output is not finite"})
		return
	}
	c.JSON(http.StatusOK, PredictResponse{Output: out})
}

func (s *Server) predictBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if len(req.Inputs) > s.cfg.MaxBatch {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Error: fmt.Sprintf("batch of %d exceeds limit %d", len(req.Inputs), s.cfg.MaxBatch),
		})
		return
	}
	outs, err := s.net.PredictBatch(req.Inputs)
	if err != nil {
		s.fail(c, err)
		return
	}
	for _, out := range outs {
		if !finite(out) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "network output is not finite"})
			return
		}
	}
	c.JSON(http.StatusOK, BatchResponse{Outputs: outs})
}

// fail maps an inference error to a status code.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, matrix.ErrInvalidArgument) {
		status = http.StatusBadRequest
	} else {
		s.cfg.Logger.Error("inference failed", "error", err)
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func finite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
