package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/rotation-engine/internal/domain/fairness"
	"github.com/riskibarqy/rotation-engine/internal/domain/game"
	"github.com/riskibarqy/rotation-engine/internal/domain/roster"
	"github.com/riskibarqy/rotation-engine/internal/domain/rotation"
	"github.com/riskibarqy/rotation-engine/internal/platform/logging"
	"github.com/sourcegraph/conc/iter"
)

type FairnessInput struct {
	SeasonID   int64
	MaxWorkers int
}

type FairnessReport struct {
	SeasonID  int64 `json:"season_id"`
	GameCount int   `json:"game_count"`
	fairness.Report
}

// FairnessService builds season fairness reports from applied plans and
// batting orders.
type FairnessService struct {
	loader       seasonLoader
	rotationRepo rotation.Repository
	logger       *logging.Logger
}

func NewFairnessService(
	gameRepo game.Repository,
	rosterRepo roster.Repository,
	rotationRepo rotation.Repository,
	defaultRules rotation.RuleConfiguration,
	logger *logging.Logger,
) *FairnessService {
	if logger == nil {
		logger = logging.Default()
	}

	return &FairnessService{
		loader: seasonLoader{
			gameRepo:     gameRepo,
			rosterRepo:   rosterRepo,
			rotationRepo: rotationRepo,
			defaultRules: defaultRules,
		},
		rotationRepo: rotationRepo,
		logger:       logger,
	}
}

type fairnessPart struct {
	game fairness.SeasonGame
	err  error
}

// Report maps every game of the season to its partial report concurrently and
// reduces them with fairness.Merge. Games missing or carrying an unreadable
// plan or batting order are skipped for that metric only.
func (s *FairnessService) Report(ctx context.Context, input FairnessInput) (FairnessReport, error) {
	ctx, span := startSpan(ctx, "usecase.FairnessService.Report", seasonAttr(input.SeasonID))
	defer span.End()

	season, err := s.loader.load(ctx, input.SeasonID)
	if err != nil {
		return FairnessReport{}, err
	}
	rosterIDs := roster.IDs(season.players)

	mapper := iter.Mapper[game.Game, fairnessPart]{
		MaxGoroutines: normalizeWorkerCount(input.MaxWorkers, len(season.games)),
	}
	parts := mapper.Map(season.games, func(item *game.Game) fairnessPart {
		return s.loadGame(ctx, season, rosterIDs, *item)
	})

	report := fairness.NewReport()
	for _, part := range parts {
		if part.err != nil {
			return FairnessReport{}, part.err
		}
		report = fairness.Merge(report, fairness.GameReport(part.game, season.rules))
	}
	if err := ctx.Err(); err != nil {
		return FairnessReport{}, err
	}

	if len(report.SkippedBatting) > 0 || len(report.SkippedFielding) > 0 {
		s.logger.InfoContext(ctx, "fairness report skipped games",
			"season_id", season.seasonID,
			"skipped_batting", report.SkippedBatting,
			"skipped_fielding", report.SkippedFielding,
		)
	}
	if len(report.UncategorizedFielding) > 0 {
		s.logger.WarnContext(ctx, "fairness report ignored uncategorized positions",
			"season_id", season.seasonID,
			"game_ids", report.UncategorizedFielding,
		)
	}

	return FairnessReport{
		SeasonID:  season.seasonID,
		GameCount: len(season.games),
		Report:    report,
	}, nil
}

func (s *FairnessService) loadGame(ctx context.Context, season seasonData, rosterIDs []roster.PlayerID, item game.Game) fairnessPart {
	if err := ctx.Err(); err != nil {
		return fairnessPart{err: err}
	}

	out := fairness.SeasonGame{
		GameID:  item.ID,
		Innings: item.Innings,
		Roster:  rosterIDs,
	}

	plan, exists, err := s.loader.storedPlan(ctx, item.ID)
	switch {
	case errors.Is(err, rotation.ErrMalformedRecord):
		s.logger.WarnContext(ctx, "skip malformed plan", "game_id", item.ID, "error", err)
	case err != nil:
		return fairnessPart{err: err}
	case exists:
		out.Plan = &plan
	}

	order, exists, err := s.rotationRepo.GetBattingOrder(ctx, item.ID)
	switch {
	case errors.Is(err, rotation.ErrMalformedRecord):
		s.logger.WarnContext(ctx, "skip malformed batting order", "game_id", item.ID, "error", err)
	case err != nil:
		return fairnessPart{err: fmt.Errorf("get batting order: %w", err)}
	case exists:
		out.Order = &order
	}

	if out.Plan != nil {
		availability, err := s.loader.availability(ctx, item.ID)
		if err != nil {
			return fairnessPart{err: err}
		}
		out.Available = availableIDs(item.ID, season.players, availability)
	}

	return fairnessPart{game: out}
}
