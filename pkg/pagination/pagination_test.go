package pagination

import (
	"testing"
	"time"
)

func TestNormalizeLimit(t *testing.T) {
	cases := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "zero uses default", limit: 0, want: DefaultLimit},
		{name: "negative uses default", limit: -3, want: DefaultLimit},
		{name: "within range", limit: 10, want: 10},
		{name: "above max capped", limit: 500, want: MaxLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeLimit(tc.limit); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestCursorRoundTrip(t *testing.T) {
	created := time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)
	encoded := EncodeCursor(Cursor{CreatedAt: created, ID: "cash_order_1741944600000_4821"})

	parsed, err := ParseCursor(encoded)
	if err != nil {
		t.Fatalf("parse cursor: %v", err)
	}
	if parsed == nil {
		t.Fatal("expected cursor, got nil")
	}
	if !parsed.CreatedAt.Equal(created) {
		t.Fatalf("expected %s, got %s", created, parsed.CreatedAt)
	}
	if parsed.ID != "cash_order_1741944600000_4821" {
		t.Fatalf("unexpected id %q", parsed.ID)
	}
}

func TestParseCursorEmptyReturnsNil(t *testing.T) {
	parsed, err := ParseCursor("   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != nil {
		t.Fatalf("expected nil cursor, got %+v", parsed)
	}
}

func TestParseCursorRejectsGarbage(t *testing.T) {
	if _, err := ParseCursor("not-base64!!"); err == nil {
		t.Fatal("expected decode error")
	}
	if _, err := ParseCursor("bm8tcGlwZQ=="); err == nil {
		t.Fatal("expected format error")
	}
}
