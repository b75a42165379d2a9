package extract

import (
	"strings"
	"testing"
)

func TestPatterns_TaggedSpan(t *testing.T) {
	got := Patterns("<task>\nImplement feature X\n</task>")
	if len(got) != 1 {
		t.Fatalf("expected 1 pattern, got %d: %v", len(got), got)
	}
	if !strings.Contains(got[0], "<task>") || !strings.Contains(got[0], "Implement feature X") {
		t.Errorf("pattern missing tag or content: %q", got[0])
	}
}

func TestPatterns_MismatchedTagIgnored(t *testing.T) {
	got := Patterns("<task>something</thinking>")
	if len(got) != 0 {
		t.Errorf("mismatched tag pair should not match, got %v", got)
	}
}

func TestPatterns_Dedup(t *testing.T) {
	text := "<pattern>test</pattern> and again <pattern>test</pattern>"
	got := Patterns(text)
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 deduplicated pattern, got %d: %v", len(got), got)
	}
	if got[0] != "<pattern>test</pattern>" {
		t.Errorf("unexpected pattern %q", got[0])
	}
}

func TestPatterns_FirstSeenOrder(t *testing.T) {
	text := "<b>two</b> <a>one</a> <b>two</b>"
	got := Patterns(text)
	want := []string{"<b>two</b>", "<a>one</a>"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPatterns_NestedSameName(t *testing.T) {
	// Nested same-name tags get first-match semantics: the inner pair wins
	// because the outer open tag cannot span the inner `<`.
	got := Patterns("<a><a>x</a></a>")
	if len(got) != 1 || got[0] != "<a>x</a>" {
		t.Errorf("expected inner pair only, got %v", got)
	}
}

func TestTechnicalDetails_Path(t *testing.T) {
	got := TechnicalDetails("see src/components/Feature.tsx for details")
	if len(got) == 0 {
		t.Fatal("expected a path match")
	}
	if got[0] != "src/components/Feature.tsx" {
		t.Errorf("got %q, want src/components/Feature.tsx", got[0])
	}
}

func TestTechnicalDetails_AbsolutePath(t *testing.T) {
	got := TechnicalDetails("config lives at /etc/app/config.json")
	found := false
	for _, d := range got {
		if d == "/etc/app/config.json" {
			found = true
		}
	}
	if !found {
		t.Errorf("absolute path not extracted: %v", got)
	}
}

func TestTechnicalDetails_CodeSpan(t *testing.T) {
	got := TechnicalDetails("edit `src/components/Feature.tsx` next")
	found := false
	for _, d := range got {
		if d == "`src/components/Feature.tsx`" {
			found = true
		}
	}
	if !found {
		t.Errorf("backtick span not extracted verbatim: %v", got)
	}
}

func TestTechnicalDetails_Dedup(t *testing.T) {
	got := TechnicalDetails("run `make test` then `make test` again")
	count := 0
	for _, d := range got {
		if d == "`make test`" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected one deduplicated span, got %d in %v", count, got)
	}
}

func TestAll_NoMatches(t *testing.T) {
	r := All("plain prose with no markers at all")
	if len(r.Patterns) != 0 || len(r.TechnicalDetails) != 0 {
		t.Errorf("expected empty result, got %+v", r)
	}
}
