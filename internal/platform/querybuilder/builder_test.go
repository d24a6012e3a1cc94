package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("game_id", "plan").
		From("rotation_plans").
		Where(Eq("game_id", int64(12)), IsNull("deleted_at")).
		OrderBy("game_id").
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT game_id, plan FROM rotation_plans WHERE game_id = $1 AND deleted_at IS NULL ORDER BY game_id LIMIT 1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != int64(12) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_RequiresColumnsAndTable(t *testing.T) {
	if _, _, err := Select().From("games").ToSQL(); err == nil {
		t.Fatalf("expected error for missing columns")
	}
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatalf("expected error for missing table")
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("players").
		Columns("id", "display_name").
		Values(int64(1), "Ava").
		Values(int64(2), "Ben").
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO players (id, display_name) VALUES ($1, $2), ($3, $4) ON CONFLICT (id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[1] != "Ava" || args[2] != int64(2) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	if _, _, err := InsertInto("players").Columns("id", "display_name").Values(int64(1)).ToSQL(); err == nil {
		t.Fatalf("expected error for short row")
	}
}

func TestInsertModel(t *testing.T) {
	type planRow struct {
		GameID   int64  `db:"game_id"`
		Plan     string `db:"plan"`
		internal string
		Skipped  string `db:"-"`
	}

	query, args, err := InsertModel("rotation_plans", &planRow{GameID: 7, Plan: `{"innings":{}}`, internal: "x"}, "RETURNING game_id")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO rotation_plans (game_id, plan) VALUES ($1, $2) RETURNING game_id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != int64(7) {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModel("rotation_plans", (*planRow)(nil), ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
	if _, _, err := InsertModel("rotation_plans", 42, ""); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
}
