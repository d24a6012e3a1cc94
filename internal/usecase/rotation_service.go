package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/rotation-engine/internal/domain/game"
	"github.com/riskibarqy/rotation-engine/internal/domain/roster"
	"github.com/riskibarqy/rotation-engine/internal/domain/rotation"
	"github.com/riskibarqy/rotation-engine/internal/platform/logging"
)

// DraftSource tells how a draft plan was constructed.
type DraftSource string

const (
	DraftFromApplied DraftSource = "applied_plan"
	DraftFromPrior   DraftSource = "prior_game"
	DraftFromBench   DraftSource = "bench"
)

type DraftResult struct {
	Version     rotation.PlanVersion `json:"version"`
	Source      DraftSource          `json:"source"`
	PriorGameID int64                `json:"prior_game_id,omitempty"`
}

type ValidatePlanInput struct {
	GameID int64
	// Plan is validated when set; otherwise the stored plan is used.
	Plan *rotation.RotationPlan
}

type ApplyPlanInput struct {
	GameID int64
	Plan   rotation.RotationPlan
	// AllowErrors persists a plan whose validation reported errors.
	AllowErrors bool
}

type RotationService struct {
	loader       seasonLoader
	rotationRepo rotation.Repository
	logger       *logging.Logger
}

func NewRotationService(
	gameRepo game.Repository,
	rosterRepo roster.Repository,
	rotationRepo rotation.Repository,
	defaultRules rotation.RuleConfiguration,
	logger *logging.Logger,
) *RotationService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RotationService{
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

// gameInputs is everything the validator needs for one game.
type gameInputs struct {
	game         game.Game
	players      []roster.Player
	availability []roster.Availability
	rules        rotation.RuleConfiguration
}

func (s *RotationService) loadGame(ctx context.Context, gameID int64) (gameInputs, error) {
	item, err := s.loader.game(ctx, gameID)
	if err != nil {
		return gameInputs{}, err
	}

	players, err := s.loader.rosterRepo.ListBySeason(ctx, item.SeasonID)
	if err != nil {
		return gameInputs{}, fmt.Errorf("list roster by season: %w", err)
	}

	availability, err := s.loader.availability(ctx, item.ID)
	if err != nil {
		return gameInputs{}, err
	}

	rules, err := s.loader.rules(ctx, item.SeasonID)
	if err != nil {
		return gameInputs{}, err
	}

	return gameInputs{
		game:         item,
		players:      players,
		availability: availability,
		rules:        rules,
	}, nil
}

// Draft opens an editable plan for a game. An applied plan is revised into a
// new version; otherwise the latest earlier game with an applied plan is
// copied; otherwise everyone starts on the bench.
func (s *RotationService) Draft(ctx context.Context, gameID int64) (DraftResult, error) {
	ctx, span := startSpan(ctx, "usecase.RotationService.Draft", gameAttr(gameID))
	defer span.End()

	in, err := s.loadGame(ctx, gameID)
	if err != nil {
		return DraftResult{}, err
	}

	stored, exists, err := s.loader.storedPlan(ctx, in.game.ID)
	if err != nil {
		if !errors.Is(err, rotation.ErrMalformedRecord) {
			return DraftResult{}, err
		}
		s.logger.WarnContext(ctx, "stored plan unreadable, drafting from scratch", "game_id", in.game.ID, "error", err)
	}
	if exists {
		applied := rotation.PlanVersion{
			GameID:  in.game.ID,
			Version: 1,
			State:   rotation.StateApplied,
			Plan:    stored,
		}
		revised, err := applied.Revise()
		if err != nil {
			return DraftResult{}, fmt.Errorf("revise applied plan: %w", err)
		}
		return DraftResult{Version: revised, Source: DraftFromApplied}, nil
	}

	prior, priorID, err := s.priorPlan(ctx, in.game)
	if err != nil {
		return DraftResult{}, err
	}
	if priorID > 0 {
		plan := rotation.CopyPlan(prior, in.game.Innings, in.players, in.availability)
		return DraftResult{
			Version:     rotation.NewDraft(in.game.ID, plan),
			Source:      DraftFromPrior,
			PriorGameID: priorID,
		}, nil
	}

	plan := rotation.NewBenchPlan(in.game.Innings, in.players, in.availability)
	return DraftResult{
		Version: rotation.NewDraft(in.game.ID, plan),
		Source:  DraftFromBench,
	}, nil
}

// priorPlan finds the applied plan of the closest earlier game in the season.
func (s *RotationService) priorPlan(ctx context.Context, current game.Game) (rotation.RotationPlan, int64, error) {
	games, err := s.loader.gameRepo.ListBySeason(ctx, current.SeasonID)
	if err != nil {
		return rotation.RotationPlan{}, 0, fmt.Errorf("list games by season: %w", err)
	}

	var (
		best     game.Game
		bestPlan rotation.RotationPlan
	)
	for _, g := range games {
		if g.ID == current.ID || g.Number >= current.Number {
			continue
		}
		if best.ID != 0 && g.Number <= best.Number {
			continue
		}
		plan, exists, err := s.loader.storedPlan(ctx, g.ID)
		if err != nil {
			if !errors.Is(err, rotation.ErrMalformedRecord) {
				return rotation.RotationPlan{}, 0, err
			}
			s.logger.WarnContext(ctx, "skip prior plan", "game_id", g.ID, "error", err)
			continue
		}
		if !exists {
			continue
		}
		best = g
		bestPlan = plan
	}

	return bestPlan, best.ID, nil
}

// ValidatePlan checks a candidate plan, or the stored one, against the game's
// roster, availability and season rules.
func (s *RotationService) ValidatePlan(ctx context.Context, input ValidatePlanInput) (rotation.PlanVersion, error) {
	ctx, span := startSpan(ctx, "usecase.RotationService.ValidatePlan", gameAttr(input.GameID))
	defer span.End()

	in, err := s.loadGame(ctx, input.GameID)
	if err != nil {
		return rotation.PlanVersion{}, err
	}

	var plan rotation.RotationPlan
	if input.Plan != nil {
		plan = *input.Plan
	} else {
		stored, exists, err := s.loader.storedPlan(ctx, in.game.ID)
		if err != nil {
			return rotation.PlanVersion{}, err
		}
		if !exists {
			return rotation.PlanVersion{}, fmt.Errorf("%w: no plan stored for game=%d", ErrNotFound, in.game.ID)
		}
		plan = stored
	}

	version, err := rotation.NewDraft(in.game.ID, plan).Validate(in.game.Innings, in.players, in.availability, in.rules)
	if err != nil {
		return rotation.PlanVersion{}, fmt.Errorf("validate plan: %w", err)
	}

	s.logger.DebugContext(ctx, "plan validated",
		"game_id", in.game.ID,
		"state", version.State,
		"errors", len(version.Result.Errors),
		"warnings", len(version.Result.Warnings),
	)
	return version, nil
}

// Apply validates and persists a plan. Plans with errors are refused unless
// AllowErrors is set; warnings never block.
func (s *RotationService) Apply(ctx context.Context, input ApplyPlanInput) (rotation.PlanVersion, error) {
	ctx, span := startSpan(ctx, "usecase.RotationService.Apply", gameAttr(input.GameID))
	defer span.End()

	in, err := s.loadGame(ctx, input.GameID)
	if err != nil {
		return rotation.PlanVersion{}, err
	}

	validated, err := rotation.NewDraft(in.game.ID, input.Plan).Validate(in.game.Innings, in.players, in.availability, in.rules)
	if err != nil {
		return rotation.PlanVersion{}, fmt.Errorf("validate plan: %w", err)
	}
	if validated.State == rotation.StateValidatedInvalid && !input.AllowErrors {
		return validated, fmt.Errorf("%w: plan for game=%d has %d errors", ErrInvalidInput, in.game.ID, len(validated.Result.Errors))
	}

	applied, err := validated.Apply()
	if err != nil {
		return rotation.PlanVersion{}, fmt.Errorf("apply plan: %w", err)
	}
	if err := s.rotationRepo.SavePlan(ctx, in.game.ID, applied.Plan); err != nil {
		return rotation.PlanVersion{}, fmt.Errorf("save plan: %w", err)
	}

	if validated.Result.HasErrors() {
		s.logger.WarnContext(ctx, "plan applied with errors",
			"game_id", in.game.ID,
			"errors", len(validated.Result.Errors),
		)
	}
	if validated.Result.HasWarnings() {
		s.logger.WarnContext(ctx, "plan applied with warnings",
			"game_id", in.game.ID,
			"warnings", validated.Result.CountByKind(),
		)
	}
	s.logger.InfoContext(ctx, "plan applied", "game_id", in.game.ID, "state", applied.State)
	return applied, nil
}
