package fairness

import (
	"reflect"
	"testing"

	"github.com/riskibarqy/rotation-engine/internal/domain/roster"
	"github.com/riskibarqy/rotation-engine/internal/domain/rotation"
)

func TestBattingDistribution_ScenarioE(t *testing.T) {
	games := []BattingGame{
		{GameID: 1, Order: &rotation.BattingOrder{PlayerIDs: []roster.PlayerID{101, 102, 103}}},
		{GameID: 2, Order: &rotation.BattingOrder{PlayerIDs: []roster.PlayerID{103, 102, 101}}},
	}

	dist := BattingDistribution(games)
	if dist[102][2] != 2 {
		t.Fatalf("expected player 102 twice in slot 2, got %d", dist[102][2])
	}
	if dist[101][1] != 1 || dist[101][3] != 1 {
		t.Fatalf("unexpected distribution for 101: %v", dist[101])
	}
	if _, ok := dist[101][0]; ok {
		t.Fatalf("slot 0 must never be counted")
	}
}

func TestBattingDistribution_RosterWithoutSlotsAndMissingOrder(t *testing.T) {
	games := []BattingGame{
		{GameID: 1, Order: &rotation.BattingOrder{PlayerIDs: []roster.PlayerID{1}}, Roster: []roster.PlayerID{1, 2}},
		{GameID: 2, Order: nil, Roster: []roster.PlayerID{1, 2}},
	}

	dist := BattingDistribution(games)
	if got, ok := dist[2]; !ok || len(got) != 0 {
		t.Fatalf("expected empty entry for player 2, got %v (present=%t)", got, ok)
	}
	if !reflect.DeepEqual(dist[1], SlotCounts{1: 1}) {
		t.Fatalf("unexpected distribution for player 1: %v", dist[1])
	}
}

func TestFieldingDistribution_CountsAndOutSemantics(t *testing.T) {
	rules := rotation.DefaultRules()
	plan := &rotation.RotationPlan{Innings: map[int][]rotation.Assignment{
		1: {{Position: "SS", PlayerID: 1}, {Position: "LF", PlayerID: 2}, {Position: "OUT", PlayerID: 3}},
		2: {{Position: "Bench", PlayerID: 1}, {Position: "P", PlayerID: 2}, {Position: "OUT", PlayerID: 3}},
		3: {{Position: "RF", PlayerID: 1}, {Position: "Bench", PlayerID: 2}, {Position: "OUT", PlayerID: 3}},
	}}

	dist := FieldingDistribution([]FieldingGame{{GameID: 1, Plan: plan, Innings: 3, Rules: rules}})

	want := map[roster.PlayerID]FieldingStats{
		1: {Infield: 1, Outfield: 1, Bench: 1, Total: 3, HasData: true},
		2: {Infield: 1, Outfield: 1, Bench: 1, Total: 3, HasData: true},
		3: {},
	}
	if !reflect.DeepEqual(dist, want) {
		t.Fatalf("unexpected distribution:\nwant: %+v\ngot:  %+v", want, dist)
	}

	if _, ok := dist[3].Share(rotation.CategoryInfield); ok {
		t.Fatalf("share must not be reported without data")
	}
	share, ok := dist[1].Share(rotation.CategoryBench)
	if !ok || share < 0.33 || share > 0.34 {
		t.Fatalf("unexpected bench share: %v %t", share, ok)
	}
}

func TestFieldingDistribution_SkipsGamesWithoutPlan(t *testing.T) {
	rules := rotation.DefaultRules()
	plan := &rotation.RotationPlan{Innings: map[int][]rotation.Assignment{
		1: {{Position: "SS", PlayerID: 1}},
	}}

	dist := FieldingDistribution([]FieldingGame{
		{GameID: 1, Plan: nil, Innings: 6, Rules: rules},
		{GameID: 2, Plan: plan, Innings: 0, Rules: rules},
		{GameID: 3, Plan: plan, Innings: 1, Rules: rules},
	})
	if dist[1].Total != 1 || dist[1].Infield != 1 {
		t.Fatalf("only game 3 should count, got %+v", dist[1])
	}
}

func TestFieldingDistribution_CleanPlanRoundTrip(t *testing.T) {
	rules := rotation.DefaultRules()
	rules.RequiredPositions = []string{"P", "SS"}
	rules.NoConsecutiveSameCategory = false

	players := []roster.Player{{ID: 1, DisplayName: "a"}, {ID: 2, DisplayName: "b"}, {ID: 3, DisplayName: "c"}}
	plan := rotation.RotationPlan{Innings: map[int][]rotation.Assignment{
		1: {{Position: "P", PlayerID: 1}, {Position: "SS", PlayerID: 2}, {Position: "LF", PlayerID: 3}},
		2: {{Position: "LF", PlayerID: 1}, {Position: "P", PlayerID: 2}, {Position: "SS", PlayerID: 3}},
		3: {{Position: "SS", PlayerID: 1}, {Position: "RF", PlayerID: 2}, {Position: "P", PlayerID: 3}},
	}}

	result := rotation.Validate(plan, 3, players, nil, rules)
	if rotation.StateFor(result) != rotation.StateValidatedClean {
		t.Fatalf("fixture must be clean, got %+v", result)
	}

	dist := FieldingDistribution([]FieldingGame{{GameID: 1, Plan: &plan, Innings: 3, Rules: rules}})
	for _, p := range players {
		if dist[p.ID].Total != 3 || !dist[p.ID].HasData {
			t.Fatalf("player %d: expected 3 innings with data, got %+v", p.ID, dist[p.ID])
		}
	}
}

func TestBalanceOf(t *testing.T) {
	rules := rotation.DefaultRules()
	plan := &rotation.RotationPlan{Innings: map[int][]rotation.Assignment{
		1: {{Position: "SS", PlayerID: 1}, {Position: "LF", PlayerID: 2}, {Position: "Bench", PlayerID: 3}},
		2: {{Position: "SS", PlayerID: 1}, {Position: "LF", PlayerID: 2}, {Position: "Bench", PlayerID: 3}},
		3: {{Position: "SS", PlayerID: 1}, {Position: "Bench", PlayerID: 2}, {Position: "Bench", PlayerID: 3}},
	}}

	balance, ok := BalanceOf(FieldingGame{GameID: 7, Plan: plan, Innings: 3, Rules: rules, Available: []roster.PlayerID{1, 2, 3}})
	if !ok {
		t.Fatalf("expected balance for usable game")
	}
	want := GameBalance{GameID: 7, InfieldSpread: 3, OutfieldSpread: 2, BenchSpread: 2}
	if balance != want {
		t.Fatalf("unexpected balance:\nwant: %+v\ngot:  %+v", want, balance)
	}
	if balance.Balanced() {
		t.Fatalf("expected unbalanced game")
	}

	if _, ok := BalanceOf(FieldingGame{GameID: 8, Rules: rules}); ok {
		t.Fatalf("expected no balance without plan")
	}
}

func TestBuild_SkipsMetricsIndependently(t *testing.T) {
	rules := rotation.DefaultRules()
	plan := &rotation.RotationPlan{Innings: map[int][]rotation.Assignment{
		1: {{Position: "P", PlayerID: 1}, {Position: "C", PlayerID: 2}},
	}}
	order := &rotation.BattingOrder{PlayerIDs: []roster.PlayerID{2, 1}}

	games := []SeasonGame{
		{GameID: 1, Innings: 1, Plan: plan, Order: nil, Roster: []roster.PlayerID{1, 2}},
		{GameID: 2, Innings: 1, Plan: nil, Order: order, Roster: []roster.PlayerID{1, 2}},
		{GameID: 3, Innings: 1, Plan: plan, Order: order, Roster: []roster.PlayerID{1, 2, 4}},
	}

	report := Build(games, rules)
	if !reflect.DeepEqual(report.SkippedBatting, []int64{1}) {
		t.Fatalf("unexpected skipped batting: %v", report.SkippedBatting)
	}
	if !reflect.DeepEqual(report.SkippedFielding, []int64{2}) {
		t.Fatalf("unexpected skipped fielding: %v", report.SkippedFielding)
	}
	if report.Batting[2][1] != 2 || report.Batting[1][2] != 2 {
		t.Fatalf("unexpected batting: %v", report.Batting)
	}
	if report.Fielding[1].Infield != 2 || report.Fielding[2].Outfield != 2 {
		t.Fatalf("unexpected fielding: %+v", report.Fielding)
	}
	if stats, ok := report.Fielding[4]; !ok || stats.HasData {
		t.Fatalf("player 4 must be present without data, got %+v (present=%t)", stats, ok)
	}
	if len(report.Balance) != 2 {
		t.Fatalf("expected balance for two fielded games, got %d", len(report.Balance))
	}
}

func TestBuild_ListsGamesWithUncategorizedPositions(t *testing.T) {
	rules := rotation.DefaultRules()
	clean := &rotation.RotationPlan{Innings: map[int][]rotation.Assignment{
		1: {{Position: "P", PlayerID: 1}, {Position: "C", PlayerID: 2}},
	}}
	odd := &rotation.RotationPlan{Innings: map[int][]rotation.Assignment{
		1: {{Position: "P", PlayerID: 1}, {Position: "DH", PlayerID: 2}},
	}}

	report := Build([]SeasonGame{
		{GameID: 9, Innings: 1, Plan: odd, Roster: []roster.PlayerID{1, 2}},
		{GameID: 4, Innings: 1, Plan: clean, Roster: []roster.PlayerID{1, 2}},
		{GameID: 6, Innings: 1, Plan: odd, Roster: []roster.PlayerID{1, 2}},
		{GameID: 5, Innings: 1, Roster: []roster.PlayerID{1, 2}},
	}, rules)

	if !reflect.DeepEqual(report.UncategorizedFielding, []int64{6, 9}) {
		t.Fatalf("unexpected uncategorized games: %v", report.UncategorizedFielding)
	}
	if report.Fielding[2].Outfield != 1 || report.Fielding[2].Total != 1 {
		t.Fatalf("uncategorized slot must not count, got %+v", report.Fielding[2])
	}
}

func TestMerge_OrderIndependent(t *testing.T) {
	rules := rotation.DefaultRules()
	a := GameReport(SeasonGame{
		GameID:  1,
		Innings: 1,
		Plan:    &rotation.RotationPlan{Innings: map[int][]rotation.Assignment{1: {{Position: "P", PlayerID: 1}}}},
		Order:   &rotation.BattingOrder{PlayerIDs: []roster.PlayerID{1}},
	}, rules)
	b := GameReport(SeasonGame{
		GameID:  2,
		Innings: 1,
		Plan:    &rotation.RotationPlan{Innings: map[int][]rotation.Assignment{1: {{Position: "LF", PlayerID: 1}}}},
	}, rules)

	if !reflect.DeepEqual(Merge(a, b), Merge(b, a)) {
		t.Fatalf("merge must be commutative")
	}
}
