package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/rotation-engine/internal/domain/fairness"
	"github.com/riskibarqy/rotation-engine/internal/domain/game"
	"github.com/riskibarqy/rotation-engine/internal/domain/roster"
	"github.com/riskibarqy/rotation-engine/internal/domain/rotation"
	"github.com/riskibarqy/rotation-engine/internal/platform/logging"
)

const (
	gameStatusClean       = "clean"
	gameStatusWarnings    = "warnings"
	gameStatusInvalid     = "invalid"
	gameStatusMissingPlan = "missing_plan"
	gameStatusFailed      = "failed"

	defaultSeasonWorkers = 4
)

type SeasonValidationInput struct {
	SeasonID   int64
	MaxWorkers int
}

type SeasonValidationResult struct {
	SeasonID         int64            `json:"season_id"`
	GameCount        int              `json:"game_count"`
	CompletedCount   int              `json:"completed_count"`
	CleanCount       int              `json:"clean_count"`
	WarningCount     int              `json:"warning_count"`
	InvalidCount     int              `json:"invalid_count"`
	MissingPlanCount int              `json:"missing_plan_count"`
	FailedCount      int              `json:"failed_count"`
	UnbalancedCount  int              `json:"unbalanced_count"`
	WorkerCount      int              `json:"worker_count"`
	EnforceBalance   bool             `json:"enforce_balance"`
	Games            []GameValidation `json:"games"`
}

type GameValidation struct {
	GameID     int64                      `json:"game_id"`
	GameNumber int                        `json:"game_number"`
	Status     string                     `json:"status"`
	Result     *rotation.ValidationResult `json:"result,omitempty"`
	Balance    *fairness.GameBalance      `json:"balance,omitempty"`
	Unbalanced bool                       `json:"unbalanced,omitempty"`
	DurationMs int64                      `json:"duration_ms"`
	Message    string                     `json:"message,omitempty"`
}

// SeasonService re-validates every applied plan of a season.
type SeasonService struct {
	loader seasonLoader
	logger *logging.Logger
}

func NewSeasonService(
	gameRepo game.Repository,
	rosterRepo roster.Repository,
	rotationRepo rotation.Repository,
	defaultRules rotation.RuleConfiguration,
	logger *logging.Logger,
) *SeasonService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SeasonService{
		loader: seasonLoader{
			gameRepo:     gameRepo,
			rosterRepo:   rosterRepo,
			rotationRepo: rotationRepo,
			defaultRules: defaultRules,
		},
		logger: logger,
	}
}

// ValidateSeason fans games out on a bounded worker pool. When ctx is
// cancelled no further games are submitted; the games already finished are
// returned together with ctx.Err().
func (s *SeasonService) ValidateSeason(ctx context.Context, input SeasonValidationInput) (SeasonValidationResult, error) {
	ctx, span := startSpan(ctx, "usecase.SeasonService.ValidateSeason", seasonAttr(input.SeasonID))
	defer span.End()

	season, err := s.loader.load(ctx, input.SeasonID)
	if err != nil {
		return SeasonValidationResult{}, err
	}

	workerCount := normalizeWorkerCount(input.MaxWorkers, len(season.games))
	result := SeasonValidationResult{
		SeasonID:       season.seasonID,
		GameCount:      len(season.games),
		WorkerCount:    workerCount,
		EnforceBalance: season.rules.EnforceBalance,
		Games:          make([]GameValidation, 0, len(season.games)),
	}
	if len(season.games) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return SeasonValidationResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan GameValidation, len(season.games))
	var completed atomic.Int32

	var workers sync.WaitGroup
	var cancelled error
	for _, item := range season.games {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}

		item := item
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if ctx.Err() != nil {
				return
			}

			row := s.validateGame(ctx, season, item)
			completed.Add(1)
			results <- row
		}); err != nil {
			workers.Done()
			return SeasonValidationResult{}, fmt.Errorf("submit game to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		switch row.Status {
		case gameStatusClean:
			result.CleanCount++
		case gameStatusWarnings:
			result.WarningCount++
		case gameStatusInvalid:
			result.InvalidCount++
		case gameStatusMissingPlan:
			result.MissingPlanCount++
		default:
			result.FailedCount++
		}
		if row.Unbalanced {
			result.UnbalancedCount++
		}
		result.Games = append(result.Games, row)
	}

	sort.SliceStable(result.Games, func(i, j int) bool {
		if result.Games[i].GameNumber != result.Games[j].GameNumber {
			return result.Games[i].GameNumber < result.Games[j].GameNumber
		}
		return result.Games[i].GameID < result.Games[j].GameID
	})
	result.CompletedCount = int(completed.Load())

	if cancelled == nil {
		cancelled = ctx.Err()
	}
	if cancelled != nil {
		s.logger.WarnContext(ctx, "season validation cancelled",
			"season_id", season.seasonID,
			"completed", result.CompletedCount,
			"total", result.GameCount,
		)
		return result, cancelled
	}

	s.logger.InfoContext(ctx, "season validated",
		"season_id", season.seasonID,
		"games", result.GameCount,
		"invalid", result.InvalidCount,
		"warnings", result.WarningCount,
		"missing_plan", result.MissingPlanCount,
		"failed", result.FailedCount,
	)
	return result, nil
}

func (s *SeasonService) validateGame(ctx context.Context, season seasonData, item game.Game) GameValidation {
	start := time.Now()
	row := GameValidation{
		GameID:     item.ID,
		GameNumber: item.Number,
	}
	finish := func(status string, err error) GameValidation {
		row.Status = status
		if err != nil {
			row.Message = err.Error()
		}
		row.DurationMs = time.Since(start).Milliseconds()
		return row
	}

	if err := item.Validate(); err != nil {
		return finish(gameStatusFailed, err)
	}

	plan, exists, err := s.loader.storedPlan(ctx, item.ID)
	if err != nil {
		return finish(gameStatusFailed, err)
	}
	if !exists {
		return finish(gameStatusMissingPlan, nil)
	}

	availability, err := s.loader.availability(ctx, item.ID)
	if err != nil {
		return finish(gameStatusFailed, err)
	}

	validation := rotation.Validate(plan, item.Innings, season.players, availability, season.rules)
	row.Result = &validation

	if season.rules.EnforceBalance {
		balance, ok := fairness.BalanceOf(fairness.FieldingGame{
			GameID:    item.ID,
			Plan:      &plan,
			Innings:   item.Innings,
			Rules:     season.rules,
			Available: availableIDs(item.ID, season.players, availability),
		})
		if ok {
			row.Balance = &balance
			row.Unbalanced = !balance.Balanced()
		}
	}

	switch rotation.StateFor(validation) {
	case rotation.StateValidatedInvalid:
		return finish(gameStatusInvalid, nil)
	case rotation.StateValidatedWithWarnings:
		return finish(gameStatusWarnings, nil)
	default:
		return finish(gameStatusClean, nil)
	}
}

func normalizeWorkerCount(value int, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = defaultSeasonWorkers
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
