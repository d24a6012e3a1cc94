package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/riskibarqy/rotation-engine/internal/domain/game"
	"github.com/riskibarqy/rotation-engine/internal/domain/roster"
	"github.com/riskibarqy/rotation-engine/internal/domain/rotation"
	gamemock "github.com/riskibarqy/rotation-engine/internal/mocks/domain/game"
	rostermock "github.com/riskibarqy/rotation-engine/internal/mocks/domain/roster"
	rotationmock "github.com/riskibarqy/rotation-engine/internal/mocks/domain/rotation"
	"github.com/riskibarqy/rotation-engine/internal/platform/logging"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRotationService_Draft_RevisesAppliedPlan(t *testing.T) {
	t.Parallel()

	service := newTestRotationService(newTestRepositories(testDataset()))

	got, err := service.Draft(context.Background(), 12)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if got.Source != DraftFromApplied {
		t.Fatalf("unexpected source: %s", got.Source)
	}
	if got.Version.State != rotation.StateDraft || got.Version.Version != 2 {
		t.Fatalf("expected draft version 2, got state=%s version=%d", got.Version.State, got.Version.Version)
	}
	if pos, _ := got.Version.Plan.PositionOf(1, 3); pos != "C" {
		t.Fatalf("expected applied assignment to carry over, got %q", pos)
	}
}

func TestRotationService_Draft_CopiesClosestPriorGame(t *testing.T) {
	t.Parallel()

	service := newTestRotationService(newTestRepositories(testDataset()))

	got, err := service.Draft(context.Background(), 13)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if got.Source != DraftFromPrior || got.PriorGameID != 12 {
		t.Fatalf("expected copy from game 12, got source=%s prior=%d", got.Source, got.PriorGameID)
	}
	if got.Version.GameID != 13 || got.Version.Version != 1 {
		t.Fatalf("unexpected version: %+v", got.Version)
	}
	if pos, _ := got.Version.Plan.PositionOf(2, 3); pos != "LF" {
		t.Fatalf("expected LF copied for player 3 in inning 2, got %q", pos)
	}
}

func TestRotationService_Draft_BenchWhenNothingApplied(t *testing.T) {
	t.Parallel()

	data := testDataset()
	data.Plans = nil
	data.Availability = append(data.Availability, roster.Availability{GameID: 13, PlayerID: 3, Available: false})
	service := newTestRotationService(newTestRepositories(data))

	got, err := service.Draft(context.Background(), 13)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if got.Source != DraftFromBench {
		t.Fatalf("unexpected source: %s", got.Source)
	}
	for inning := 1; inning <= 2; inning++ {
		for _, id := range []roster.PlayerID{1, 2} {
			if pos, _ := got.Version.Plan.PositionOf(inning, id); pos != rotation.PositionBench {
				t.Fatalf("inning %d player %d: expected Bench, got %q", inning, id, pos)
			}
		}
		if pos, _ := got.Version.Plan.PositionOf(inning, 3); pos != rotation.PositionOut {
			t.Fatalf("inning %d: expected unavailable player OUT, got %q", inning, pos)
		}
	}
}

func TestRotationService_Draft_GameLookup(t *testing.T) {
	t.Parallel()

	service := newTestRotationService(newTestRepositories(testDataset()))

	if _, err := service.Draft(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.Draft(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRotationService_ValidatePlan(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := newTestRotationService(newTestRepositories(testDataset()))

	stored, err := service.ValidatePlan(ctx, ValidatePlanInput{GameID: 12})
	require.NoError(t, err)
	require.Equal(t, rotation.StateValidatedWithWarnings, stored.State)
	require.NotNil(t, stored.Result)
	require.Len(t, stored.Result.Warnings, 1)
	require.Equal(t, rotation.IssueCatcherNotCapable, stored.Result.Warnings[0].Kind)
	require.Equal(t, roster.PlayerID(3), stored.Result.Warnings[0].PlayerID)

	candidate := rotation.RotationPlan{Innings: map[int][]rotation.Assignment{
		1: inning("P", 1, "C", 2, "Bench", 3),
		2: inning("P", 3, "C", 2, "OUT", 1),
	}}
	clean, err := service.ValidatePlan(ctx, ValidatePlanInput{GameID: 13, Plan: &candidate})
	require.NoError(t, err)
	require.Equal(t, rotation.StateValidatedClean, clean.State)

	_, err = service.ValidatePlan(ctx, ValidatePlanInput{GameID: 13})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRotationService_Apply_RefusesErrorsUnlessAllowed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repos := newTestRepositories(testDataset())
	service := newTestRotationService(repos)
	invalid := rotation.RotationPlan{Innings: map[int][]rotation.Assignment{
		1: inning("P", 1),
	}}

	refused, err := service.Apply(ctx, ApplyPlanInput{GameID: 13, Plan: invalid})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Equal(t, rotation.StateValidatedInvalid, refused.State)
	_, exists, err := repos.Rotation.GetPlan(ctx, 13)
	require.NoError(t, err)
	require.False(t, exists, "refused plan must not be stored")

	applied, err := service.Apply(ctx, ApplyPlanInput{GameID: 13, Plan: invalid, AllowErrors: true})
	require.NoError(t, err)
	require.Equal(t, rotation.StateApplied, applied.State)
	require.True(t, applied.Result.HasErrors())

	saved, exists, err := repos.Rotation.GetPlan(ctx, 13)
	require.NoError(t, err)
	require.True(t, exists)
	require.Len(t, saved.Innings[1], 1)
}

func TestRotationService_Apply_ThenDraftRevises(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := newTestRotationService(newTestRepositories(testDataset()))
	plan := rotation.RotationPlan{Innings: map[int][]rotation.Assignment{
		1: inning("P", 3, "C", 2, "Bench", 1),
		2: inning("P", 1, "C", 2, "LF", 3),
	}}

	applied, err := service.Apply(ctx, ApplyPlanInput{GameID: 13, Plan: plan})
	require.NoError(t, err)
	require.Equal(t, rotation.StateApplied, applied.State)

	draft, err := service.Draft(ctx, 13)
	require.NoError(t, err)
	require.Equal(t, DraftFromApplied, draft.Source)
	pos, ok := draft.Version.Plan.PositionOf(1, 3)
	require.True(t, ok)
	require.Equal(t, "P", pos)
}

func TestRotationService_Apply_SaveErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gameRepo := gamemock.NewRepository(t)
	rosterRepo := rostermock.NewRepository(t)
	rotationRepo := rotationmock.NewRepository(t)
	errDB := errors.New("connection reset")

	gameRepo.
		On("GetByID", mock.Anything, int64(13)).
		Return(game.Game{ID: 13, SeasonID: testSeasonID, Number: 3, Innings: 1}, true, nil).
		Once()
	rosterRepo.
		On("ListBySeason", mock.Anything, testSeasonID).
		Return(testDataset().Players, nil).
		Once()
	rosterRepo.
		On("ListAvailabilityByGame", mock.Anything, int64(13)).
		Return([]roster.Availability{{GameID: 13, PlayerID: 2, Available: true, CanPlayCatcher: true}}, nil).
		Once()
	rotationRepo.
		On("GetRules", mock.Anything, testSeasonID).
		Return(testRules(), true, nil).
		Once()
	rotationRepo.
		On("SavePlan", mock.Anything, int64(13), mock.AnythingOfType("rotation.RotationPlan")).
		Return(errDB).
		Once()

	service := NewRotationService(gameRepo, rosterRepo, rotationRepo, rotation.DefaultRules(), logging.NewNop())
	_, err := service.Apply(ctx, ApplyPlanInput{
		GameID: 13,
		Plan: rotation.RotationPlan{Innings: map[int][]rotation.Assignment{
			1: inning("P", 1, "C", 2, "Bench", 3),
		}},
	})
	if !errors.Is(err, errDB) {
		t.Fatalf("expected save error, got %v", err)
	}
}

func TestRotationService_RejectsDuplicateAvailabilityUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gameRepo := gamemock.NewRepository(t)
	rosterRepo := rostermock.NewRepository(t)
	rotationRepo := rotationmock.NewRepository(t)

	gameRepo.
		On("GetByID", mock.Anything, int64(13)).
		Return(game.Game{ID: 13, SeasonID: testSeasonID, Number: 3, Innings: 1}, true, nil).
		Once()
	rosterRepo.
		On("ListBySeason", mock.Anything, testSeasonID).
		Return(testDataset().Players, nil).
		Once()
	rosterRepo.
		On("ListAvailabilityByGame", mock.Anything, int64(13)).
		Return([]roster.Availability{
			{GameID: 13, PlayerID: 2, Available: true},
			{GameID: 13, PlayerID: 2, Available: false},
		}, nil).
		Once()

	service := NewRotationService(gameRepo, rosterRepo, rotationRepo, rotation.DefaultRules(), logging.NewNop())
	_, err := service.ValidatePlan(ctx, ValidatePlanInput{GameID: 13, Plan: &rotation.RotationPlan{}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !errors.Is(err, roster.ErrDuplicateAvailability) {
		t.Fatalf("expected ErrDuplicateAvailability in chain, got %v", err)
	}
}

func TestRotationService_FallsBackToDefaultRules(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	data := testDataset()
	data.Rules = nil
	repos := newTestRepositories(data)

	service := NewRotationService(repos.Game, repos.Roster, repos.Rotation, testRules(), logging.NewNop())
	got, err := service.ValidatePlan(ctx, ValidatePlanInput{GameID: 11})
	require.NoError(t, err)
	require.Equal(t, rotation.StateValidatedClean, got.State)

	broken := rotation.RuleConfiguration{RequiredPositions: []string{rotation.PositionBench}}
	service = NewRotationService(repos.Game, repos.Roster, repos.Rotation, broken, logging.NewNop())
	_, err = service.ValidatePlan(ctx, ValidatePlanInput{GameID: 11})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, rotation.ErrSentinelAsRequirement)
}

func expectGameInputs(gameRepo *gamemock.Repository, rosterRepo *rostermock.Repository, rotationRepo *rotationmock.Repository, item game.Game) {
	gameRepo.
		On("GetByID", mock.Anything, item.ID).
		Return(item, true, nil).
		Once()
	rosterRepo.
		On("ListBySeason", mock.Anything, item.SeasonID).
		Return(testDataset().Players, nil).
		Once()
	rosterRepo.
		On("ListAvailabilityByGame", mock.Anything, item.ID).
		Return([]roster.Availability{{GameID: item.ID, PlayerID: 2, Available: true, CanPlayCatcher: true}}, nil).
		Once()
	rotationRepo.
		On("GetRules", mock.Anything, item.SeasonID).
		Return(testRules(), true, nil).
		Once()
}

func TestRotationService_Draft_StoredPlanReadErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gameRepo := gamemock.NewRepository(t)
	rosterRepo := rostermock.NewRepository(t)
	rotationRepo := rotationmock.NewRepository(t)
	errDB := errors.New("connection refused")

	expectGameInputs(gameRepo, rosterRepo, rotationRepo, game.Game{ID: 12, SeasonID: testSeasonID, Number: 2, Innings: 1})
	rotationRepo.
		On("GetPlan", mock.Anything, int64(12)).
		Return(rotation.RotationPlan{}, false, errDB).
		Once()

	service := NewRotationService(gameRepo, rosterRepo, rotationRepo, rotation.DefaultRules(), logging.NewNop())
	_, err := service.Draft(ctx, 12)
	if !errors.Is(err, errDB) {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestRotationService_Draft_PriorPlanReadErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gameRepo := gamemock.NewRepository(t)
	rosterRepo := rostermock.NewRepository(t)
	rotationRepo := rotationmock.NewRepository(t)
	errDB := errors.New("connection refused")
	current := game.Game{ID: 12, SeasonID: testSeasonID, Number: 2, Innings: 1}

	expectGameInputs(gameRepo, rosterRepo, rotationRepo, current)
	rotationRepo.
		On("GetPlan", mock.Anything, int64(12)).
		Return(rotation.RotationPlan{}, false, nil).
		Once()
	gameRepo.
		On("ListBySeason", mock.Anything, testSeasonID).
		Return([]game.Game{{ID: 11, SeasonID: testSeasonID, Number: 1, Innings: 1}, current}, nil).
		Once()
	rotationRepo.
		On("GetPlan", mock.Anything, int64(11)).
		Return(rotation.RotationPlan{}, false, errDB).
		Once()

	service := NewRotationService(gameRepo, rosterRepo, rotationRepo, rotation.DefaultRules(), logging.NewNop())
	_, err := service.Draft(ctx, 12)
	if !errors.Is(err, errDB) {
		t.Fatalf("expected prior plan read error, got %v", err)
	}
}

func TestRotationService_Draft_MalformedPlanFallsThroughUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gameRepo := gamemock.NewRepository(t)
	rosterRepo := rostermock.NewRepository(t)
	rotationRepo := rotationmock.NewRepository(t)
	current := game.Game{ID: 12, SeasonID: testSeasonID, Number: 2, Innings: 1}

	expectGameInputs(gameRepo, rosterRepo, rotationRepo, current)
	rotationRepo.
		On("GetPlan", mock.Anything, int64(12)).
		Return(rotation.RotationPlan{}, false, fmt.Errorf("%w: bad inning key", rotation.ErrMalformedRecord)).
		Once()
	gameRepo.
		On("ListBySeason", mock.Anything, testSeasonID).
		Return([]game.Game{current}, nil).
		Once()

	service := NewRotationService(gameRepo, rosterRepo, rotationRepo, rotation.DefaultRules(), logging.NewNop())
	got, err := service.Draft(ctx, 12)
	require.NoError(t, err)
	require.Equal(t, DraftFromBench, got.Source)
}
