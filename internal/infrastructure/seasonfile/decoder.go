// Package seasonfile loads a single season document into the in-memory
// repositories.
package seasonfile

import (
	"encoding/json"
	"errors"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/rotation-engine/internal/config"
	"github.com/riskibarqy/rotation-engine/internal/domain/game"
	"github.com/riskibarqy/rotation-engine/internal/domain/roster"
	"github.com/riskibarqy/rotation-engine/internal/domain/rotation"
	"github.com/riskibarqy/rotation-engine/internal/infrastructure/repository/memory"
)

var ErrInvalidSeasonFile = errors.New("invalid season file")

type document struct {
	SeasonID      int64                                 `json:"season_id" validate:"gt=0"`
	Rules         json.RawMessage                       `json:"rules"`
	Players       []playerDTO                           `json:"players" validate:"dive"`
	Games         []gameDTO                             `json:"games" validate:"dive"`
	Availability  []availabilityDTO                     `json:"availability" validate:"dive"`
	Plans         map[string]map[string][]assignmentDTO `json:"plans" validate:"dive,dive,dive"`
	BattingOrders map[string][]int64                    `json:"batting_orders"`
}

type playerDTO struct {
	ID             int64  `json:"id" validate:"gt=0"`
	JerseyNumber   string `json:"jersey_number"`
	DisplayName    string `json:"display_name" validate:"required"`
	CanPlayCatcher bool   `json:"can_play_catcher"`
}

type gameDTO struct {
	ID       int64     `json:"id" validate:"gt=0"`
	Number   int       `json:"number" validate:"gte=0"`
	Opponent string    `json:"opponent"`
	Innings  int       `json:"innings" validate:"gt=0"`
	PlayedAt time.Time `json:"played_at"`
}

type availabilityDTO struct {
	GameID         int64 `json:"game_id" validate:"gt=0"`
	PlayerID       int64 `json:"player_id" validate:"gt=0"`
	Available      *bool `json:"available"`
	CanPlayCatcher bool  `json:"can_play_catcher"`
}

type assignmentDTO struct {
	Position string `json:"position" validate:"required"`
	PlayerID int64  `json:"player_id" validate:"gt=0"`
}

// Load reads and decodes the season document at path.
func Load(path string) (memory.Dataset, error) {
	raw, err := os.ReadFile(strings.TrimSpace(path))
	if err != nil {
		return memory.Dataset{}, crerr.Wrap(err, "read season file")
	}
	return Decode(raw)
}

// Decode turns a season document into a dataset. Omitting "rules" leaves the
// season without stored rules so callers fall back to their default. A
// missing "available" flag means available.
func Decode(raw []byte) (memory.Dataset, error) {
	var doc document
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return memory.Dataset{}, crerr.Wrapf(ErrInvalidSeasonFile, "decode: %v", err)
	}
	if err := validator.New().Struct(doc); err != nil {
		return memory.Dataset{}, crerr.Wrapf(ErrInvalidSeasonFile, "validate: %v", err)
	}

	out := memory.Dataset{
		Plans:  make(map[int64]rotation.RotationPlan, len(doc.Plans)),
		Orders: make(map[int64]rotation.BattingOrder, len(doc.BattingOrders)),
		Rules:  make(map[int64]rotation.RuleConfiguration, 1),
	}

	if len(doc.Rules) > 0 && string(doc.Rules) != "null" {
		rules, err := config.ParseRules(doc.Rules)
		if err != nil {
			return memory.Dataset{}, crerr.Wrapf(ErrInvalidSeasonFile, "rules: %v", err)
		}
		out.Rules[doc.SeasonID] = rules
	}

	playerIDs := make(map[roster.PlayerID]struct{}, len(doc.Players))
	for _, p := range doc.Players {
		id := roster.PlayerID(p.ID)
		if _, dup := playerIDs[id]; dup {
			return memory.Dataset{}, crerr.Wrapf(ErrInvalidSeasonFile, "player %d listed twice", p.ID)
		}
		playerIDs[id] = struct{}{}
		out.Players = append(out.Players, roster.Player{
			ID:             id,
			SeasonID:       doc.SeasonID,
			JerseyNumber:   strings.TrimSpace(p.JerseyNumber),
			DisplayName:    strings.TrimSpace(p.DisplayName),
			CanPlayCatcher: p.CanPlayCatcher,
		})
	}

	gameIDs := make(map[int64]struct{}, len(doc.Games))
	for _, g := range doc.Games {
		if _, dup := gameIDs[g.ID]; dup {
			return memory.Dataset{}, crerr.Wrapf(ErrInvalidSeasonFile, "game %d listed twice", g.ID)
		}
		gameIDs[g.ID] = struct{}{}
		out.Games = append(out.Games, game.Game{
			ID:       g.ID,
			SeasonID: doc.SeasonID,
			Number:   g.Number,
			Opponent: strings.TrimSpace(g.Opponent),
			Innings:  g.Innings,
			PlayedAt: g.PlayedAt,
		})
	}

	for _, a := range doc.Availability {
		if _, ok := gameIDs[a.GameID]; !ok {
			return memory.Dataset{}, crerr.Wrapf(ErrInvalidSeasonFile, "availability references unknown game %d", a.GameID)
		}
		available := true
		if a.Available != nil {
			available = *a.Available
		}
		out.Availability = append(out.Availability, roster.Availability{
			GameID:         a.GameID,
			PlayerID:       roster.PlayerID(a.PlayerID),
			Available:      available,
			CanPlayCatcher: a.CanPlayCatcher,
		})
	}

	for key, innings := range doc.Plans {
		gameID, err := parseGameKey(key, gameIDs)
		if err != nil {
			return memory.Dataset{}, err
		}
		plan, err := decodePlan(innings)
		if err != nil {
			return memory.Dataset{}, crerr.Wrapf(ErrInvalidSeasonFile, "plan for game %d: %v", gameID, err)
		}
		out.Plans[gameID] = plan
	}

	for key, ids := range doc.BattingOrders {
		gameID, err := parseGameKey(key, gameIDs)
		if err != nil {
			return memory.Dataset{}, err
		}
		order := rotation.BattingOrder{PlayerIDs: make([]roster.PlayerID, 0, len(ids))}
		seen := make(map[int64]struct{}, len(ids))
		for _, id := range ids {
			if _, dup := seen[id]; dup || id <= 0 {
				return memory.Dataset{}, crerr.Wrapf(ErrInvalidSeasonFile, "batting order for game %d has bad player %d", gameID, id)
			}
			seen[id] = struct{}{}
			order.PlayerIDs = append(order.PlayerIDs, roster.PlayerID(id))
		}
		out.Orders[gameID] = order
	}

	sort.SliceStable(out.Games, func(i, j int) bool {
		if out.Games[i].Number != out.Games[j].Number {
			return out.Games[i].Number < out.Games[j].Number
		}
		return out.Games[i].ID < out.Games[j].ID
	})

	return out, nil
}

func parseGameKey(key string, known map[int64]struct{}) (int64, error) {
	gameID, err := strconv.ParseInt(strings.TrimSpace(key), 10, 64)
	if err != nil {
		return 0, crerr.Wrapf(ErrInvalidSeasonFile, "game key %q is not a number", key)
	}
	if _, ok := known[gameID]; !ok {
		return 0, crerr.Wrapf(ErrInvalidSeasonFile, "unknown game %d", gameID)
	}
	return gameID, nil
}

func decodePlan(innings map[string][]assignmentDTO) (rotation.RotationPlan, error) {
	plan := rotation.NewRotationPlan()
	for key, items := range innings {
		inning, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || inning <= 0 {
			return rotation.RotationPlan{}, crerr.Newf("inning key %q must be a positive number", key)
		}
		assignments := make([]rotation.Assignment, 0, len(items))
		for _, item := range items {
			assignments = append(assignments, rotation.Assignment{
				Position: rotation.NormalizePosition(item.Position),
				PlayerID: roster.PlayerID(item.PlayerID),
			})
		}
		plan.Innings[inning] = assignments
	}
	return plan, nil
}
