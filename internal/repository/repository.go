package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"motormarket/internal/models"
)

// Repository is the persistence surface consumed by the marketplace and the
// resolution run. The resolution core treats it as a generic store: read-all
// by key, conditional update, delete-by-key.
type Repository interface {
	// Leagues
	ListLeagues(ctx context.Context) ([]models.League, error)
	GetLeagueByCode(ctx context.Context, code string) (*models.League, error)
	UpsertLeague(ctx context.Context, item *models.League) error
	UpdateLeagueResolvedAt(ctx context.Context, id uint64, resolvedAt time.Time) error

	// Bids
	InsertBid(ctx context.Context, item *models.Bid) error
	ListBidsByLeague(ctx context.Context, leagueID uint64) ([]models.Bid, error)
	DeleteBidsByLeague(ctx context.Context, leagueID uint64) (int64, error)

	// Participants
	ListParticipantsByLeagueCode(ctx context.Context, leagueCode string) ([]models.Participant, error)
	GetParticipantByID(ctx context.Context, id string) (*models.Participant, error)
	UpsertParticipant(ctx context.Context, item *models.Participant) error
	UpdateParticipantTeam(ctx context.Context, id string, budget decimal.Decimal, teamCars, teamParts datatypes.JSON) error

	// Market items
	UpsertMarketItem(ctx context.Context, item *models.MarketItem) error
	GetMarketItemByID(ctx context.Context, id string) (*models.MarketItem, error)
	ListMarketItemsByLeague(ctx context.Context, leagueID uint64) ([]models.MarketItem, error)

	// Award history
	InsertAwardRecord(ctx context.Context, item *models.AwardRecord) error
	ListAwardRecords(ctx context.Context, params ListAwardRecordsParams) ([]models.AwardRecord, error)

	// System settings
	UpsertSystemSetting(ctx context.Context, item *models.SystemSetting) error
	GetSystemSettingByKey(ctx context.Context, key string) (*models.SystemSetting, error)
	ListSystemSettings(ctx context.Context, params ListSystemSettingsParams) ([]models.SystemSetting, error)
}

type ListAwardRecordsParams struct {
	Limit      int
	Offset     int
	LeagueCode *string
	UserID     *string
	Since      *time.Time
	OrderBy    string
	Asc        *bool
}

type ListSystemSettingsParams struct {
	Limit   int
	Offset  int
	Prefix  *string
	OrderBy string
	Asc     *bool
}
