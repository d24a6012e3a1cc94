package postgres

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/riskibarqy/rotation-engine/internal/domain/rotation"
)

func TestDecodePlan(t *testing.T) {
	t.Run("round trips encoded plan", func(t *testing.T) {
		plan := rotation.RotationPlan{Innings: map[int][]rotation.Assignment{
			1: {{Position: "P", PlayerID: 4}, {Position: "Bench", PlayerID: 5}},
			2: {{Position: "C", PlayerID: 4}},
		}}
		raw, err := encodePlan(plan)
		if err != nil {
			t.Fatalf("encode plan: %v", err)
		}

		got, err := decodePlan(9, raw)
		if err != nil {
			t.Fatalf("decode plan: %v", err)
		}
		if pos, _ := got.PositionOf(2, 4); pos != "C" {
			t.Fatalf("unexpected position: %q", pos)
		}
		if len(got.Innings[1]) != 2 {
			t.Fatalf("unexpected inning size: %d", len(got.Innings[1]))
		}
	})

	malformed := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: " "},
		{name: "not json", raw: "{innings"},
		{name: "no innings", raw: `{}`},
		{name: "zero inning", raw: `{"innings":{"0":[{"position":"P","player_id":1}]}}`},
		{name: "missing player", raw: `{"innings":{"1":[{"position":"P"}]}}`},
	}
	for _, tt := range malformed {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := decodePlan(9, tt.raw); !errors.Is(err, rotation.ErrMalformedRecord) {
				t.Fatalf("expected ErrMalformedRecord, got %v", err)
			}
		})
	}
}

func TestDecodeBattingOrder(t *testing.T) {
	got, err := decodeBattingOrder(battingOrderTableModel{GameID: 1, PlayerIDs: pq.Int64Array{3, 1, 2}})
	if err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if slot, _ := got.Slot(1); slot != 2 {
		t.Fatalf("unexpected slot: %d", slot)
	}

	if _, err := decodeBattingOrder(battingOrderTableModel{GameID: 1, PlayerIDs: pq.Int64Array{3, 3}}); !errors.Is(err, rotation.ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord for duplicate, got %v", err)
	}
	if _, err := decodeBattingOrder(battingOrderTableModel{GameID: 1, PlayerIDs: pq.Int64Array{0}}); !errors.Is(err, rotation.ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord for zero id, got %v", err)
	}
}

func TestDecodeRules(t *testing.T) {
	row := seasonRulesTableModel{
		SeasonID:                  1,
		RequiredPositions:         pq.StringArray{"P", "SS"},
		PositionCategories:        `{"P":"infield","SS":"Infield","LF":"outfield","bench":"bench"}`,
		CatcherPositions:          pq.StringArray{"C"},
		NoConsecutiveSameCategory: true,
	}

	got, err := decodeRules(row)
	if err != nil {
		t.Fatalf("decode rules: %v", err)
	}
	if got.PositionCategory["SS"] != rotation.CategoryInfield {
		t.Fatalf("unexpected category: %q", got.PositionCategory["SS"])
	}
	if got.PositionCategory[rotation.PositionBench] != rotation.CategoryBench {
		t.Fatalf("sentinel key not normalized: %v", got.PositionCategory)
	}
	if !got.NoConsecutiveSameCategory || got.AllowRepeatedPosition {
		t.Fatalf("unexpected flags: %+v", got)
	}

	row.PositionCategories = `{"P":"pitching"}`
	if _, err := decodeRules(row); !errors.Is(err, rotation.ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
}
