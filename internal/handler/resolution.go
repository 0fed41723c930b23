package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"motormarket/internal/cache"
	"motormarket/internal/service"
)

const latestReportKey = "resolution:latest"

type ResolutionHandler struct {
	Service   *service.ResolutionService
	Cache     cache.Store
	Logger    *zap.Logger
	ReportTTL time.Duration
}

func (h *ResolutionHandler) Register(r *gin.Engine) {
	r.POST("/api/v1/resolution/run", h.run)
	r.GET("/api/v1/resolution/latest", h.latest)
}

// run triggers a full resolution sweep synchronously and returns the report.
// The report is also cached so latest can serve it without replaying the run.
func (h *ResolutionHandler) run(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "resolution unavailable", nil)
		return
	}
	report, err := h.Service.RunOnce(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	h.cacheReport(c, report)
	Ok(c, report, nil)
}

func (h *ResolutionHandler) latest(c *gin.Context) {
	if h.Cache == nil {
		Error(c, http.StatusNotFound, "no resolution report available", nil)
		return
	}
	raw, found, err := h.Cache.Get(c.Request.Context(), latestReportKey)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if !found {
		Error(c, http.StatusNotFound, "no resolution report available", nil)
		return
	}
	var report service.RunReport
	if err := json.Unmarshal(raw, &report); err != nil {
		Error(c, http.StatusInternalServerError, "stored report unreadable", nil)
		return
	}
	Ok(c, report, nil)
}

func (h *ResolutionHandler) cacheReport(c *gin.Context, report service.RunReport) {
	if h.Cache == nil {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := h.Cache.Set(c.Request.Context(), latestReportKey, raw, h.ReportTTL); err != nil && h.Logger != nil {
		h.Logger.Warn("cache resolution report failed", zap.Error(err))
	}
}
