package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"motormarket/internal/models"
	"motormarket/internal/repository"
)

type MarketHandler struct {
	Repo   repository.Repository
	MinBid decimal.Decimal
}

func (h *MarketHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/leagues/:code/items", h.items)
	r.POST("/api/v1/leagues/:code/items", h.listItem)
	r.POST("/api/v1/bids", h.placeBid)
}

func (h *MarketHandler) items(c *gin.Context) {
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
	items, err := h.Repo.ListMarketItemsByLeague(c.Request.Context(), league.ID)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, map[string]any{"count": len(items)})
}

type listItemRequest struct {
	ID       string          `json:"id"`
	ItemType string          `json:"item_type"`
	Payload  json.RawMessage `json:"payload"`
	ClosesAt *time.Time      `json:"closes_at"`
}

// listItem puts a car or part up for auction in a league. The payload is the
// snapshot copied into every bid, so it must be valid JSON up front.
func (h *MarketHandler) listItem(c *gin.Context) {
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
	var req listItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	req.ID = strings.TrimSpace(req.ID)
	if req.ID == "" {
		Error(c, http.StatusBadRequest, "id required", nil)
		return
	}
	if req.ItemType != models.ItemTypeCar && req.ItemType != models.ItemTypePart {
		Error(c, http.StatusBadRequest, "item_type must be car or part", nil)
		return
	}
	if len(req.Payload) == 0 || !json.Valid(req.Payload) {
		Error(c, http.StatusBadRequest, "payload must be valid json", nil)
		return
	}
	item := &models.MarketItem{
		ID:       req.ID,
		LeagueID: league.ID,
		ItemType: req.ItemType,
		Payload:  datatypes.JSON(req.Payload),
		ClosesAt: req.ClosesAt,
	}
	if err := h.Repo.UpsertMarketItem(c.Request.Context(), item); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

type placeBidRequest struct {
	LeagueCode    string `json:"league_code"`
	ItemID        string `json:"item_id"`
	ParticipantID string `json:"participant_id"`
	Amount        string `json:"amount"`
}

// placeBid records a sealed offer. The item payload is snapshotted into the
// bid so resolution is independent of later listing changes. Budget is only
// reserved at resolution time, not here: a participant may overcommit across
// items and lose the later ones to the budget check.
func (h *MarketHandler) placeBid(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	var req placeBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	req.LeagueCode = strings.TrimSpace(req.LeagueCode)
	req.ItemID = strings.TrimSpace(req.ItemID)
	req.ParticipantID = strings.TrimSpace(req.ParticipantID)
	if req.LeagueCode == "" || req.ItemID == "" || req.ParticipantID == "" {
		Error(c, http.StatusBadRequest, "league_code, item_id and participant_id required", nil)
		return
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid amount", nil)
		return
	}
	if amount.IsNegative() || amount.Cmp(h.MinBid) < 0 {
		Error(c, http.StatusBadRequest, "amount below minimum bid", nil)
		return
	}

	league, err := h.Repo.GetLeagueByCode(c.Request.Context(), req.LeagueCode)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if league == nil {
		Error(c, http.StatusNotFound, "league not found", nil)
		return
	}

	participant, err := h.Repo.GetParticipantByID(c.Request.Context(), req.ParticipantID)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if participant == nil || participant.LeagueCode != league.Code {
		Error(c, http.StatusNotFound, "participant not in league", nil)
		return
	}

	item, err := h.Repo.GetMarketItemByID(c.Request.Context(), req.ItemID)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil || item.LeagueID != league.ID {
		Error(c, http.StatusNotFound, "item not listed in league", nil)
		return
	}
	now := time.Now().UTC()
	if item.ClosesAt != nil && item.ClosesAt.Before(now) {
		Error(c, http.StatusConflict, "listing closed", nil)
		return
	}

	bid := &models.Bid{
		ID:            uuid.NewString(),
		LeagueID:      league.ID,
		ItemID:        item.ID,
		ParticipantID: participant.ID,
		ItemType:      item.ItemType,
		ItemData:      item.Payload,
		Amount:        amount,
		CreatedAt:     now,
	}
	if err := h.Repo.InsertBid(c.Request.Context(), bid); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, bid, nil)
}
