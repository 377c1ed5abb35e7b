// Package server exposes the layout engine over HTTP with gin.
package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/piwi3910/PlankLay/internal/engine"
	"github.com/piwi3910/PlankLay/internal/export"
	"github.com/piwi3910/PlankLay/internal/model"
	"github.com/piwi3910/PlankLay/internal/project"
)

// Server answers layout requests using the app config for plan defaults
// and custom profiles next to the built-in ones.
type Server struct {
	config model.AppConfig
	custom []model.SupplyProfile
	logger *slog.Logger
}

// LayoutResponse is returned by POST /layout.
type LayoutResponse struct {
	Plan    model.Plan        `json:"plan"`
	Result  model.PlanResult  `json:"result"`
	Edges   model.EdgeSummary `json:"edges"`
	Offcuts []model.Offcut    `json:"offcuts"`
	Error   string            `json:"error,omitempty"` // Set when a region hit the row limit
}

// EstimateRequest asks how many boards of a profile cover an area. The
// area comes from Room when given, otherwise from AreaM2.
type EstimateRequest struct {
	ProfileName string      `json:"profile_name"`
	AreaM2      float64     `json:"area_m2"`
	Room        *model.Room `json:"room,omitempty"`
	WastePct    *float64    `json:"waste_pct,omitempty"`
}

// New creates a server. A nil logger falls back to slog.Default().
func New(config model.AppConfig, custom []model.SupplyProfile, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{config: config, custom: custom, logger: logger}
}

// Router builds the gin engine with all routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/profiles", s.handleProfiles)
	r.POST("/layout", s.handleLayout)
	r.POST("/layout/pdf", s.handleLayoutPDF)
	r.POST("/layout/chart", s.handleLayoutChart)
	r.POST("/estimate", s.handleEstimate)
	return r
}

// Run serves on addr until the listener fails.
func (s *Server) Run(addr string) error {
	s.logger.Info("server: listening", "addr", addr)
	return s.Router().Run(addr)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("server: request",
			"method", c.Request.Method, "path", c.Request.URL.Path,
			"status", c.Writer.Status(), "took", time.Since(start))
	}
}

func (s *Server) handleProfiles(c *gin.Context) {
	profiles := append([]model.SupplyProfile{}, model.SupplyProfiles...)
	profiles = append(profiles, s.custom...)
	c.JSON(http.StatusOK, profiles)
}

// layoutRun is a laid plan. err is only ever a row-limit error; the
// result then holds the rows placed before the limit.
type layoutRun struct {
	plan   model.Plan
	result model.PlanResult
	err    error
}

// runPlan binds a plan file from the request body and lays it out. On
// failure it writes the error response itself and returns false.
func (s *Server) runPlan(c *gin.Context) (layoutRun, bool) {
	var pf project.PlanFile
	if err := c.ShouldBindJSON(&pf); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return layoutRun{}, false
	}
	plan, err := pf.Resolve(s.config, s.custom)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return layoutRun{}, false
	}

	result, err := engine.Run(plan, s.logger)
	if err != nil && !errors.Is(err, engine.ErrRowLimit) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return layoutRun{}, false
	}
	return layoutRun{plan: plan, result: result, err: err}, true
}

func (s *Server) handleLayout(c *gin.Context) {
	run, ok := s.runPlan(c)
	if !ok {
		return
	}

	resp := LayoutResponse{
		Plan:    run.plan,
		Result:  run.result,
		Edges:   model.CalculateEdgeSummary(run.result.Placements()),
		Offcuts: model.CollectOffcuts(run.result),
	}
	status := http.StatusOK
	if run.err != nil {
		resp.Error = run.err.Error()
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, resp)
}

func (s *Server) handleLayoutPDF(c *gin.Context) {
	run, ok := s.runPlan(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", run.plan.Name+".pdf"))
	if err := export.WritePDF(c.Writer, run.plan, run.result); err != nil {
		s.logger.Error("server: pdf failed", "plan", run.plan.Name, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (s *Server) handleLayoutChart(c *gin.Context) {
	run, ok := s.runPlan(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := export.RenderUsageChart(c.Writer, run.plan, run.result); err != nil {
		s.logger.Error("server: chart failed", "plan", run.plan.Name, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (s *Server) handleEstimate(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := req.ProfileName
	if name == "" {
		name = s.config.DefaultProfile
	}
	profile, ok := model.FindSupplyProfile(name, s.custom)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown profile %q", name)})
		return
	}

	area := req.AreaM2 * 1e6
	if req.Room != nil {
		if err := req.Room.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		area = req.Room.Floor().Area()
	}
	if area <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "area must be positive"})
		return
	}

	waste := s.config.DefaultWastePct
	if req.WastePct != nil {
		waste = *req.WastePct
	}
	c.JSON(http.StatusOK, model.CalculatePurchaseEstimate(area, profile, waste))
}
