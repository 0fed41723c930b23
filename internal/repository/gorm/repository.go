package gormrepository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"motormarket/internal/models"
	"motormarket/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// --- leagues ----------------------------------------------------------------

func (s *Store) ListLeagues(ctx context.Context) ([]models.League, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.League
	if err := s.db.WithContext(ctx).
		Model(&models.League{}).
		Order("code asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) GetLeagueByCode(ctx context.Context, code string) (*models.League, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	var item models.League
	err := s.db.WithContext(ctx).Where("code = ?", code).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpsertLeague(ctx context.Context, item *models.League) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.Code) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name",
			"season",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) UpdateLeagueResolvedAt(ctx context.Context, id uint64, resolvedAt time.Time) error {
	if s == nil || s.db == nil || id == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.League{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"last_resolved_at": resolvedAt,
			"updated_at":       time.Now().UTC(),
		}).Error
}

// --- bids -------------------------------------------------------------------

func (s *Store) InsertBid(ctx context.Context, item *models.Bid) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListBidsByLeague(ctx context.Context, leagueID uint64) ([]models.Bid, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Bid
	if err := s.db.WithContext(ctx).
		Model(&models.Bid{}).
		Where("league_id = ?", leagueID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) DeleteBidsByLeague(ctx context.Context, leagueID uint64) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Where("league_id = ?", leagueID).
		Delete(&models.Bid{})
	return res.RowsAffected, res.Error
}

// --- participants -----------------------------------------------------------

func (s *Store) ListParticipantsByLeagueCode(ctx context.Context, leagueCode string) ([]models.Participant, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Participant
	if err := s.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("league_code = ?", strings.TrimSpace(leagueCode)).
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) GetParticipantByID(ctx context.Context, id string) (*models.Participant, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	var item models.Participant
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpsertParticipant(ctx context.Context, item *models.Participant) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.ID) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id",
			"league_code",
			"budget",
			"team_cars",
			"team_parts",
			"updated_at",
		}),
	}).Create(item).Error
}

// UpdateParticipantTeam writes back exactly the fields resolution mutates:
// remaining budget, car slot, and part list.
func (s *Store) UpdateParticipantTeam(ctx context.Context, id string, budget decimal.Decimal, teamCars, teamParts datatypes.JSON) error {
	if s == nil || s.db == nil {
		return nil
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"budget":     budget,
			"team_cars":  teamCars,
			"team_parts": teamParts,
			"updated_at": time.Now().UTC(),
		}).Error
}

// --- market items -----------------------------------------------------------

func (s *Store) UpsertMarketItem(ctx context.Context, item *models.MarketItem) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.ID) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"league_id",
			"item_type",
			"payload",
			"closes_at",
		}),
	}).Create(item).Error
}

func (s *Store) GetMarketItemByID(ctx context.Context, id string) (*models.MarketItem, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	var item models.MarketItem
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListMarketItemsByLeague(ctx context.Context, leagueID uint64) ([]models.MarketItem, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.MarketItem
	if err := s.db.WithContext(ctx).
		Model(&models.MarketItem{}).
		Where("league_id = ?", leagueID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- award history ----------------------------------------------------------

func (s *Store) InsertAwardRecord(ctx context.Context, item *models.AwardRecord) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListAwardRecords(ctx context.Context, params repository.ListAwardRecordsParams) ([]models.AwardRecord, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.AwardRecord{})
	if params.LeagueCode != nil && strings.TrimSpace(*params.LeagueCode) != "" {
		query = query.Where("league_code = ?", strings.TrimSpace(*params.LeagueCode))
	}
	if params.UserID != nil && strings.TrimSpace(*params.UserID) != "" {
		query = query.Where("user_id = ?", strings.TrimSpace(*params.UserID))
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("created_at >= ?", *params.Since)
	}
	query = applyOrder(query, params.OrderBy, params.Asc, "created_at")
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.AwardRecord
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- system settings --------------------------------------------------------

func (s *Store) UpsertSystemSetting(ctx context.Context, item *models.SystemSetting) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.Key) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"value",
			"description",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) GetSystemSettingByKey(ctx context.Context, key string) (*models.SystemSetting, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil
	}
	var item models.SystemSetting
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListSystemSettings(ctx context.Context, params repository.ListSystemSettingsParams) ([]models.SystemSetting, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.SystemSetting{})
	if params.Prefix != nil && strings.TrimSpace(*params.Prefix) != "" {
		query = query.Where("key LIKE ?", strings.TrimSpace(*params.Prefix)+"%")
	}
	query = applyOrder(query, params.OrderBy, params.Asc, "key")
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.SystemSetting
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- helpers ----------------------------------------------------------------

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	if column == "" {
		column = fallback
	}
	direction := "desc"
	if asc != nil && *asc {
		direction = "asc"
	}
	return query.Order(column + " " + direction)
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
