package head

import (
	"strings"
	"testing"
)

func TestTitleEscapesAndLastCallWins(t *testing.T) {
	b := New()
	b.SetTitle("First")
	b.SetTitle("Rosie's <Bakery>")

	got := string(b.Title())
	if strings.Contains(got, "<Bakery>") {
		t.Fatalf("title not escaped: %q", got)
	}
	if !strings.HasPrefix(got, "<title>") || !strings.HasSuffix(got, "</title>") {
		t.Fatalf("title not wrapped in tag: %q", got)
	}
	if strings.Contains(got, "First") {
		t.Fatalf("earlier title survived: %q", got)
	}
}

func TestEmptyTitleRendersNothing(t *testing.T) {
	if got := New().Title(); got != "" {
		t.Fatalf("empty builder rendered %q", got)
	}
}

func TestMetaDeduplicates(t *testing.T) {
	b := New()
	b.Meta(`<meta charset="utf-8">`)
	b.Meta(`<meta charset="utf-8">`)
	b.Meta(`<meta name="viewport" content="width=device-width">`)

	got := string(b.Metas())
	if strings.Count(got, "charset") != 1 {
		t.Fatalf("duplicate meta emitted: %q", got)
	}
	if !strings.Contains(got, "viewport") {
		t.Fatalf("second meta missing: %q", got)
	}
}
