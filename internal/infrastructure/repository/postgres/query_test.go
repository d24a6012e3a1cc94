package postgres

import (
	"testing"

	qb "github.com/riskibarqy/rotation-engine/internal/platform/querybuilder"
)

func TestLiveRow(t *testing.T) {
	query, args, err := qb.Select("game_id").From("batting_orders").Where(liveRow("game_id", 12)...).Limit(1).ToSQL()
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	want := "SELECT game_id FROM batting_orders WHERE game_id = $1 AND deleted_at IS NULL LIMIT 1"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 1 || args[0] != int64(12) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestDescribe(t *testing.T) {
	if got := describe("games", []any{"season", int64(3)}); got != "games season=3" {
		t.Fatalf("unexpected description %q", got)
	}
	if got := describe("games", nil); got != "games" {
		t.Fatalf("unexpected description %q", got)
	}
}
