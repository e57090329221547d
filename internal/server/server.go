package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agenthands/orderbot/internal/core"
	"github.com/agenthands/orderbot/internal/core/model"
	"github.com/agenthands/orderbot/internal/logger"
)

// QueryHandler is the part of core.Orchestrator the HTTP layer needs.
type QueryHandler interface {
	Handle(ctx context.Context, query string) (*model.QueryResponse, error)
	DegradedRecords() uint64
}

type Server struct {
	Orchestrator QueryHandler

	logger      *zap.Logger
	corsOrigins []string
}

func NewServer(o QueryHandler, l *zap.Logger, corsOrigins []string) *Server {
	return &Server{
		Orchestrator: o,
		logger:       logger.OrNop(l),
		corsOrigins:  corsOrigins,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(s.logger))

	if len(s.corsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     s.corsOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", RequestIDHeader},
			ExposeHeaders:    []string{RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.POST("/query-items", s.QueryItems)
	r.GET("/health", s.Health)

	return r
}

type QueryRequest struct {
	Prompt string `json:"prompt"`
}

func (s *Server) QueryItems(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	resp, err := s.Orchestrator.Handle(c.Request.Context(), req.Prompt)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "ok",
		"degraded_records": s.Orchestrator.DegradedRecords(),
	})
}

// fail maps gateway errors to 502, or 504 when the gateway timed out.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusBadGateway
	if core.IsTimeout(err) {
		status = http.StatusGatewayTimeout
	}

	var (
		re    *core.RetrievalError
		ce    *core.CompletionError
		kind  = "request failed"
		cause = err
	)
	switch {
	case errors.As(err, &re):
		kind, cause = "retrieval failed", re.Cause
	case errors.As(err, &ce):
		kind, cause = "completion failed", ce.Cause
	default:
		status = http.StatusInternalServerError
	}

	s.logger.Error("query failed",
		zap.String("request_id", GetRequestID(c)),
		zap.Int("status", status),
		zap.Error(err))

	c.JSON(status, gin.H{"error": kind, "detail": cause.Error()})
}
