package app

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTraceQuery(t *testing.T) {
	got := traceQuery(" SELECT   game_id, plan\nFROM rotation_plans \t WHERE game_id = $1 ")
	want := "SELECT game_id, plan FROM rotation_plans WHERE game_id = $1"
	if got != want {
		t.Fatalf("unexpected formatted query: %q", got)
	}
}

func TestTraceQuery_Truncates(t *testing.T) {
	long := "SELECT " + strings.Repeat("é", maxTracedQueryLength)
	got := traceQuery(long)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected truncated query, got %d bytes", len(got))
	}
	if len(got) > maxTracedQueryLength+3 {
		t.Fatalf("query too long: %d", len(got))
	}
	if !strings.HasPrefix(got, "SELECT é") || !utf8.ValidString(got) {
		t.Fatalf("truncation split a rune: %q", got[len(got)-8:])
	}
}
