package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goldfin/backend/internal/infrastructure/persistence"
	"github.com/goldfin/backend/internal/infrastructure/scheduler"
	"github.com/goldfin/backend/internal/interfaces/http/dto"
)

// SystemHandler handles health and operational endpoints
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	sweeper   *scheduler.OverdueScheduler
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler. The scheduler may be nil
// when the sweep is disabled.
func NewSystemHandler(db *persistence.Database, sweeper *scheduler.OverdueScheduler) *SystemHandler {
	return &SystemHandler{
		db:        db,
		sweeper:   sweeper,
		startTime: time.Now(),
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	{
		system.GET("/info", h.GetSystemInfo)
		system.GET("/scheduler", h.SchedulerStatus)
		system.POST("/scheduler/run", h.TriggerSweep)
	}
	rg.GET("/health", h.Health)
}

// SystemInfoResponse represents the system information response
// @name HandlerSystemInfoResponse
type SystemInfoResponse struct {
	Name      string `json:"name" example:"GoldFin Backend API"`
	Version   string `json:"version" example:"1.0.0"`
	GoVersion string `json:"go_version" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// GetSystemInfo godoc
// @ID           getSystemInfo
// @Summary      Get system information
// @Description  Returns basic system information including version and uptime
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[SystemInfoResponse]
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      "GoldFin Backend API",
		Version:   "1.0.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// HealthResponse reports service and dependency health
// @name HandlerHealthResponse
type HealthResponse struct {
	Status   string                       `json:"status" example:"ok"`
	Database string                       `json:"database" example:"ok"`
	Stats    *persistence.ConnectionStats `json:"stats,omitempty"`
}

// Health godoc
// @ID           getHealth
// @Summary      Health check
// @Description  Verifies database connectivity and reports connection pool stats
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[HealthResponse]
// @Failure      503 {object} APIResponse[HealthResponse]
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{Status: "ok", Database: "ok"}

	if err := h.db.Ping(); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		c.JSON(http.StatusServiceUnavailable, dto.NewSuccessResponse(resp))
		return
	}

	if stats, err := h.db.Stats(); err == nil {
		resp.Stats = &stats
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// SchedulerStatus godoc
// @ID           getSchedulerStatus
// @Summary      Overdue sweep scheduler status
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[map[string]interface{}]
// @Router       /system/scheduler [get]
func (h *SystemHandler) SchedulerStatus(c *gin.Context) {
	if h.sweeper == nil {
		h.Success(c, gin.H{"enabled": false})
		return
	}
	h.Success(c, h.sweeper.GetStatus())
}

// TriggerSweep godoc
// @ID           triggerOverdueSweep
// @Summary      Trigger an overdue sweep now
// @Description  Runs the daily overdue status sweep immediately instead of waiting for the schedule
// @Tags         system
// @Produce      json
// @Success      202 {object} SuccessResponse
// @Failure      409 {object} ErrorResponse
// @Router       /system/scheduler/run [post]
func (h *SystemHandler) TriggerSweep(c *gin.Context) {
	if h.sweeper == nil {
		h.Conflict(c, "Overdue sweep scheduler is not running")
		return
	}
	if err := h.sweeper.TriggerManualRun(c.Request.Context()); err != nil {
		h.Conflict(c, err.Error())
		return
	}
	c.JSON(http.StatusAccepted, dto.NewSuccessResponse(gin.H{"triggered": true}))
}
