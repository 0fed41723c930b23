package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"motormarket/internal/models"
	"motormarket/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
type stubRepo struct {
	leagues       []models.League
	bidsByLeague  map[uint64][]models.Bid
	participants  map[string][]models.Participant
	items         map[string]models.MarketItem
	settings      map[string]models.SystemSetting
	awards        []models.AwardRecord
	teamUpdates   map[string]int
	teamBudgets   map[string]decimal.Decimal
	teamCars      map[string]datatypes.JSON
	teamParts     map[string]datatypes.JSON
	deletedBids   []uint64
	listLeaguesErr error
	listBidsErr    map[uint64]error
	listPartsErr   map[string]error
	updateTeamErr  map[string]error
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		bidsByLeague:  map[uint64][]models.Bid{},
		participants:  map[string][]models.Participant{},
		items:         map[string]models.MarketItem{},
		settings:      map[string]models.SystemSetting{},
		teamUpdates:   map[string]int{},
		teamBudgets:   map[string]decimal.Decimal{},
		teamCars:      map[string]datatypes.JSON{},
		teamParts:     map[string]datatypes.JSON{},
		listBidsErr:   map[uint64]error{},
		listPartsErr:  map[string]error{},
		updateTeamErr: map[string]error{},
	}
}

func (s *stubRepo) ListLeagues(ctx context.Context) ([]models.League, error) {
	if s.listLeaguesErr != nil {
		return nil, s.listLeaguesErr
	}
	out := make([]models.League, len(s.leagues))
	copy(out, s.leagues)
	return out, nil
}

func (s *stubRepo) GetLeagueByCode(ctx context.Context, code string) (*models.League, error) {
	for i := range s.leagues {
		if s.leagues[i].Code == code {
			lg := s.leagues[i]
			return &lg, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) UpsertLeague(ctx context.Context, item *models.League) error {
	s.leagues = append(s.leagues, *item)
	return nil
}

func (s *stubRepo) UpdateLeagueResolvedAt(ctx context.Context, id uint64, resolvedAt time.Time) error {
	for i := range s.leagues {
		if s.leagues[i].ID == id {
			ts := resolvedAt
			s.leagues[i].LastResolvedAt = &ts
		}
	}
	return nil
}

func (s *stubRepo) InsertBid(ctx context.Context, item *models.Bid) error {
	s.bidsByLeague[item.LeagueID] = append(s.bidsByLeague[item.LeagueID], *item)
	return nil
}

func (s *stubRepo) ListBidsByLeague(ctx context.Context, leagueID uint64) ([]models.Bid, error) {
	if err := s.listBidsErr[leagueID]; err != nil {
		return nil, err
	}
	return s.bidsByLeague[leagueID], nil
}

func (s *stubRepo) DeleteBidsByLeague(ctx context.Context, leagueID uint64) (int64, error) {
	n := int64(len(s.bidsByLeague[leagueID]))
	delete(s.bidsByLeague, leagueID)
	s.deletedBids = append(s.deletedBids, leagueID)
	return n, nil
}

func (s *stubRepo) ListParticipantsByLeagueCode(ctx context.Context, leagueCode string) ([]models.Participant, error) {
	if err := s.listPartsErr[leagueCode]; err != nil {
		return nil, err
	}
	return s.participants[leagueCode], nil
}

func (s *stubRepo) GetParticipantByID(ctx context.Context, id string) (*models.Participant, error) {
	for _, list := range s.participants {
		for i := range list {
			if list[i].ID == id {
				p := list[i]
				return &p, nil
			}
		}
	}
	return nil, nil
}

func (s *stubRepo) UpsertParticipant(ctx context.Context, item *models.Participant) error {
	s.participants[item.LeagueCode] = append(s.participants[item.LeagueCode], *item)
	return nil
}

func (s *stubRepo) UpdateParticipantTeam(ctx context.Context, id string, budget decimal.Decimal, teamCars, teamParts datatypes.JSON) error {
	if err := s.updateTeamErr[id]; err != nil {
		return err
	}
	s.teamUpdates[id]++
	s.teamBudgets[id] = budget
	s.teamCars[id] = teamCars
	s.teamParts[id] = teamParts
	return nil
}

func (s *stubRepo) UpsertMarketItem(ctx context.Context, item *models.MarketItem) error {
	s.items[item.ID] = *item
	return nil
}

func (s *stubRepo) GetMarketItemByID(ctx context.Context, id string) (*models.MarketItem, error) {
	if item, ok := s.items[id]; ok {
		return &item, nil
	}
	return nil, nil
}

func (s *stubRepo) ListMarketItemsByLeague(ctx context.Context, leagueID uint64) ([]models.MarketItem, error) {
	var out []models.MarketItem
	for _, item := range s.items {
		if item.LeagueID == leagueID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubRepo) InsertAwardRecord(ctx context.Context, item *models.AwardRecord) error {
	s.awards = append(s.awards, *item)
	return nil
}

func (s *stubRepo) ListAwardRecords(ctx context.Context, params repository.ListAwardRecordsParams) ([]models.AwardRecord, error) {
	return s.awards, nil
}

func (s *stubRepo) UpsertSystemSetting(ctx context.Context, item *models.SystemSetting) error {
	s.settings[item.Key] = *item
	return nil
}

func (s *stubRepo) GetSystemSettingByKey(ctx context.Context, key string) (*models.SystemSetting, error) {
	if item, ok := s.settings[key]; ok {
		return &item, nil
	}
	return nil, nil
}

func (s *stubRepo) ListSystemSettings(ctx context.Context, params repository.ListSystemSettingsParams) ([]models.SystemSetting, error) {
	var out []models.SystemSetting
	for _, item := range s.settings {
		out = append(out, item)
	}
	return out, nil
}
