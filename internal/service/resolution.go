package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"motormarket/internal/auction"
	"motormarket/internal/config"
	"motormarket/internal/models"
	"motormarket/internal/notify"
	"motormarket/internal/repository"
)

// League terminal states for one resolution pass.
const (
	LeagueSkipped         = "skipped"
	LeagueResolved        = "resolved"
	LeaguePartiallyFailed = "partially_failed"
)

type LeagueReport struct {
	LeagueCode string               `json:"league_code"`
	Status     string               `json:"status"`
	Awards     []models.AwardRecord `json:"awards"`
}

type RunReport struct {
	Success     bool           `json:"success"`
	Message     string         `json:"message"`
	Results     []LeagueReport `json:"results"`
	TotalAwards int            `json:"total_awards"`
	Timestamp   time.Time      `json:"timestamp"`
}

// ResolutionService settles every league's sealed-bid round: one winner per
// contested item, budget and car-slot constraints enforced, participants
// persisted once, bids cleared, league stamped. Leagues are processed
// strictly sequentially and failures never cross league boundaries; only a
// failure to list the leagues themselves aborts a run.
type ResolutionService struct {
	Repo       repository.Repository
	Logger     *zap.Logger
	Config     config.ResolutionConfig
	Flags      *SystemSettingsService
	Webhook    *notify.WebhookSender
	WebhookURL string

	// Now is overridable in tests; time.Now otherwise.
	Now func() time.Time
}

// RunScheduled is the cron entrypoint. It honors the auto-resolve switch and
// only logs failures; cron has nobody to report them to.
func (s *ResolutionService) RunScheduled(ctx context.Context) {
	if s == nil || s.Repo == nil {
		return
	}
	if s.Flags != nil && !s.Flags.IsEnabled(ctx, FeatureAutoResolve, true) {
		return
	}
	report, err := s.RunOnce(ctx)
	if err != nil {
		s.logWarn("scheduled resolution failed", err)
		return
	}
	if s.Logger != nil {
		s.Logger.Info("scheduled resolution complete",
			zap.Int("leagues", len(report.Results)),
			zap.Int("awards", report.TotalAwards),
		)
	}
}

// RunOnce drives a full resolution sweep across all leagues.
func (s *ResolutionService) RunOnce(ctx context.Context) (RunReport, error) {
	start := s.now()
	leagues, err := s.Repo.ListLeagues(ctx)
	if err != nil {
		return RunReport{}, fmt.Errorf("list leagues: %w", err)
	}

	report := RunReport{Success: true, Timestamp: start}
	for _, league := range leagues {
		result, err := s.resolveLeague(ctx, league, start)
		if err != nil {
			// A fetch failure leaves the league untouched; the next league
			// still gets its turn.
			s.logWarn("league resolution aborted", err, zap.String("league", league.Code))
			continue
		}
		report.Results = append(report.Results, result)
		report.TotalAwards += len(result.Awards)
	}
	report.Message = fmt.Sprintf("processed %d leagues, %d awards", len(report.Results), report.TotalAwards)
	return report, nil
}

func (s *ResolutionService) resolveLeague(ctx context.Context, league models.League, runStart time.Time) (LeagueReport, error) {
	cutoff := s.cutoff(runStart)
	if league.LastResolvedAt != nil && !league.LastResolvedAt.Before(cutoff) {
		return LeagueReport{LeagueCode: league.Code, Status: LeagueSkipped, Awards: []models.AwardRecord{}}, nil
	}

	bids, err := s.Repo.ListBidsByLeague(ctx, league.ID)
	if err != nil {
		return LeagueReport{}, fmt.Errorf("fetch bids: %w", err)
	}
	if len(bids) == 0 {
		if err := s.Repo.UpdateLeagueResolvedAt(ctx, league.ID, runStart); err != nil {
			s.logWarn("stamp league failed", err, zap.String("league", league.Code))
		}
		return LeagueReport{LeagueCode: league.Code, Status: LeagueResolved, Awards: []models.AwardRecord{}}, nil
	}

	participants, err := s.Repo.ListParticipantsByLeagueCode(ctx, league.Code)
	if err != nil {
		return LeagueReport{}, fmt.Errorf("fetch participants: %w", err)
	}
	teams := buildTeamStates(participants)

	winners := auction.SelectWinners(bids)
	itemIDs := make([]string, 0, len(winners))
	for itemID := range winners {
		itemIDs = append(itemIDs, itemID)
	}
	sort.Strings(itemIDs)

	awards := []models.AwardRecord{}
	for _, itemID := range itemIDs {
		winner := winners[itemID]
		record, skip := auction.Award(winner, teams)
		if skip != "" {
			if s.Logger != nil {
				s.Logger.Info("winning bid skipped",
					zap.String("league", league.Code),
					zap.String("item", itemID),
					zap.String("participant", winner.ParticipantID),
					zap.String("reason", string(skip)),
				)
			}
			continue
		}
		record.LeagueCode = league.Code
		record.CreatedAt = runStart
		awards = append(awards, *record)
	}

	// Persist each touched participant exactly once, however many items they
	// won. Write failures are logged and do not abort sibling writes.
	partial := false
	for _, id := range dirtyTeamIDs(teams) {
		team := teams[id]
		carsJSON, partsJSON, err := encodeTeam(team)
		if err != nil {
			s.logWarn("encode team failed", err, zap.String("participant", id))
			partial = true
			continue
		}
		if err := s.Repo.UpdateParticipantTeam(ctx, id, team.Budget, carsJSON, partsJSON); err != nil {
			s.logWarn("persist participant failed", err, zap.String("participant", id))
			partial = true
		}
	}

	for i := range awards {
		if err := s.Repo.InsertAwardRecord(ctx, &awards[i]); err != nil {
			s.logWarn("insert award record failed", err, zap.String("league", league.Code))
			partial = true
		}
	}

	// All bids clear with the round, winners and losers alike.
	if _, err := s.Repo.DeleteBidsByLeague(ctx, league.ID); err != nil {
		s.logWarn("clear bids failed", err, zap.String("league", league.Code))
		partial = true
	}
	if err := s.Repo.UpdateLeagueResolvedAt(ctx, league.ID, runStart); err != nil {
		s.logWarn("stamp league failed", err, zap.String("league", league.Code))
		partial = true
	}

	status := LeagueResolved
	if partial {
		status = LeaguePartiallyFailed
	}

	s.announce(ctx, league.Code, awards)

	return LeagueReport{LeagueCode: league.Code, Status: status, Awards: awards}, nil
}

func (s *ResolutionService) announce(ctx context.Context, leagueCode string, awards []models.AwardRecord) {
	if s.Webhook == nil || strings.TrimSpace(s.WebhookURL) == "" || len(awards) == 0 {
		return
	}
	if s.Flags != nil && !s.Flags.IsEnabled(ctx, FeatureWebhookNotify, false) {
		return
	}
	sendCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err := s.Webhook.Send(sendCtx, s.WebhookURL, notify.LeagueResolvedPayload{
		Project:    "motormarket",
		Event:      "league_resolved",
		LeagueCode: leagueCode,
		Awards:     awards,
	})
	if err != nil {
		s.logWarn("webhook notify failed", err, zap.String("league", leagueCode))
	}
}

// cutoff is the most recent daily boundary: today's date at the configured
// hour in the configured zone. A league stamped at or after it stays closed
// until the next window.
func (s *ResolutionService) cutoff(now time.Time) time.Time {
	loc := time.UTC
	if tz := strings.TrimSpace(s.Config.Timezone); tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}
	hour := s.Config.CutoffHour
	if hour < 0 || hour > 23 {
		hour = 20
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
}

func (s *ResolutionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// buildTeamStates decodes stored participants into mutable run-local state.
// The decode is the defensive copy: nothing here aliases the fetch result.
func buildTeamStates(participants []models.Participant) map[string]*auction.TeamState {
	teams := make(map[string]*auction.TeamState, len(participants))
	for _, p := range participants {
		state := &auction.TeamState{
			ParticipantID: p.ID,
			UserID:        p.UserID,
			Budget:        p.Budget,
		}
		if len(p.TeamCars) > 0 {
			// Malformed stored payloads start the run as an empty garage
			// rather than poisoning the whole league.
			_ = json.Unmarshal(p.TeamCars, &state.Cars)
		}
		if len(p.TeamParts) > 0 {
			_ = json.Unmarshal(p.TeamParts, &state.Parts)
		}
		teams[p.ID] = state
	}
	return teams
}

func dirtyTeamIDs(teams map[string]*auction.TeamState) []string {
	ids := make([]string, 0, len(teams))
	for id, team := range teams {
		if team != nil && team.Dirty {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func encodeTeam(team *auction.TeamState) (datatypes.JSON, datatypes.JSON, error) {
	cars := team.Cars
	if cars == nil {
		cars = []models.Car{}
	}
	parts := team.Parts
	if parts == nil {
		parts = []models.Part{}
	}
	carsJSON, err := json.Marshal(cars)
	if err != nil {
		return nil, nil, err
	}
	partsJSON, err := json.Marshal(parts)
	if err != nil {
		return nil, nil, err
	}
	return datatypes.JSON(carsJSON), datatypes.JSON(partsJSON), nil
}

func (s *ResolutionService) logWarn(msg string, err error, fields ...zap.Field) {
	if s == nil || s.Logger == nil {
		return
	}
	s.Logger.Warn(msg, append(fields, zap.Error(err))...)
}
