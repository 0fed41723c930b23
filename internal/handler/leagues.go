package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"motormarket/internal/models"
	"motormarket/internal/repository"
)

type LeagueHandler struct {
	Repo repository.Repository
}

func (h *LeagueHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/leagues")
	group.GET("", h.list)
	group.POST("", h.upsert)
	group.GET("/:code/participants", h.participants)
	group.POST("/:code/participants", h.upsertParticipant)
	group.GET("/:code/bids", h.bids)
	group.GET("/:code/awards", h.awards)
}

// @Summary List leagues
// @Tags leagues
// @Router /api/v1/leagues [get]
func (h *LeagueHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	leagues, err := h.Repo.ListLeagues(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if code := strings.TrimSpace(c.Query("code")); code != "" {
		for _, lg := range leagues {
			if lg.Code == code {
				Ok(c, lg, nil)
				return
			}
		}
		Error(c, http.StatusNotFound, "league not found", nil)
		return
	}
	Ok(c, leagues, map[string]any{"count": len(leagues)})
}

type upsertLeagueRequest struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Season string `json:"season"`
}

func (h *LeagueHandler) upsert(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	var req upsertLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	req.Code = strings.TrimSpace(req.Code)
	if req.Code == "" {
		Error(c, http.StatusBadRequest, "code required", nil)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = req.Code
	}
	item := &models.League{
		Code:   req.Code,
		Name:   name,
		Season: strings.TrimSpace(req.Season),
	}
	if err := h.Repo.UpsertLeague(c.Request.Context(), item); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

type upsertParticipantRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Budget string `json:"budget"`
}

// upsertParticipant seats a player in a league with a starting budget and an
// empty team. Re-posting an existing id resets the seat.
func (h *LeagueHandler) upsertParticipant(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	code := strings.TrimSpace(c.Param("code"))
	league, err := h.Repo.GetLeagueByCode(c.Request.Context(), code)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if league == nil {
		Error(c, http.StatusNotFound, "league not found", nil)
		return
	}
	var req upsertParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	req.ID = strings.TrimSpace(req.ID)
	req.UserID = strings.TrimSpace(req.UserID)
	if req.ID == "" || req.UserID == "" {
		Error(c, http.StatusBadRequest, "id and user_id required", nil)
		return
	}
	budget, err := decimal.NewFromString(strings.TrimSpace(req.Budget))
	if err != nil || budget.IsNegative() {
		Error(c, http.StatusBadRequest, "invalid budget", nil)
		return
	}
	item := &models.Participant{
		ID:         req.ID,
		UserID:     req.UserID,
		LeagueCode: league.Code,
		Budget:     budget,
		TeamCars:   datatypes.JSON([]byte(`[]`)),
		TeamParts:  datatypes.JSON([]byte(`[]`)),
	}
	if err := h.Repo.UpsertParticipant(c.Request.Context(), item); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

func (h *LeagueHandler) participants(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	code := strings.TrimSpace(c.Param("code"))
	items, err := h.Repo.ListParticipantsByLeagueCode(c.Request.Context(), code)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, map[string]any{"count": len(items)})
}

func (h *LeagueHandler) bids(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	code := strings.TrimSpace(c.Param("code"))
	league, err := h.Repo.GetLeagueByCode(c.Request.Context(), code)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if league == nil {
		Error(c, http.StatusNotFound, "league not found", nil)
		return
	}
	items, err := h.Repo.ListBidsByLeague(c.Request.Context(), league.ID)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, map[string]any{"count": len(items)})
}

func (h *LeagueHandler) awards(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	code := strings.TrimSpace(c.Param("code"))
	items, err := h.Repo.ListAwardRecords(c.Request.Context(), repository.ListAwardRecordsParams{
		LeagueCode: &code,
	})
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, map[string]any{"count": len(items)})
}
