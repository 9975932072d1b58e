// Package server exposes the category store and query engine over HTTP.
package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mile-high-maps/nearby-cli/internal/model"
	"github.com/mile-high-maps/nearby-cli/internal/query"
	"github.com/mile-high-maps/nearby-cli/internal/store"
)

// Server wires HTTP routes to the store and query engine. Load reports are
// captured once at startup; the store itself always serves current items.
type Server struct {
	view    store.View
	engine  *query.Engine
	reports []model.CategoryLoadReport
	logger  *zap.Logger
}

// New builds a server. reports may be nil when no load ran.
func New(view store.View, engine *query.Engine, reports []model.CategoryLoadReport) *Server {
	return &Server{
		view:    view,
		engine:  engine,
		reports: reports,
		logger:  zap.L().With(zap.String("component", "server")),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.Default())

	engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := engine.Group("/api/v1")
	v1.GET("/nearby", s.handleNearby)
	v1.GET("/categories", s.handleCategories)
	v1.GET("/status", s.handleStatus)

	return engine
}

// Run serves the router on the given port until the listener fails.
func (s *Server) Run(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.logger.Info("listening", zap.String("addr", addr))
	return s.Router().Run(addr)
}

func (s *Server) handleNearby(c *gin.Context) {
	lat, ok := queryFloat(c, "lat")
	if !ok {
		return
	}
	lng, ok := queryFloat(c, "lng")
	if !ok {
		return
	}

	c.JSON(http.StatusOK, s.engine.QueryNearby(lat, lng))
}

// categoryInfo is category metadata plus the current item count, without the
// item payload itself.
type categoryInfo struct {
	Key         model.CategoryKey `json:"key"`
	Label       string            `json:"label"`
	Color       string            `json:"color"`
	SourceLabel string            `json:"source_label"`
	RadiusMiles float64           `json:"radius_miles"`
	ItemCount   int               `json:"item_count"`
}

func (s *Server) handleCategories(c *gin.Context) {
	cats := s.view.All()
	infos := make([]categoryInfo, 0, len(cats))
	for _, cat := range cats {
		infos = append(infos, categoryInfo{
			Key:         cat.Key,
			Label:       cat.Label,
			Color:       cat.Color,
			SourceLabel: cat.SourceLabel,
			RadiusMiles: cat.RadiusMiles,
			ItemCount:   len(cat.Items),
		})
	}
	c.JSON(http.StatusOK, gin.H{"categories": infos})
}

func (s *Server) handleStatus(c *gin.Context) {
	degraded := false
	for _, r := range s.reports {
		if r.Outcome == model.OutcomeFallback {
			degraded = true
			break
		}
	}
	c.JSON(http.StatusOK, gin.H{"degraded": degraded, "loads": s.reports})
}

// queryFloat parses a required finite float query parameter, writing a 400
// response when it is missing or malformed.
func queryFloat(c *gin.Context, name string) (float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required parameter " + name})
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid value for parameter " + name})
		return 0, false
	}
	return v, true
}
