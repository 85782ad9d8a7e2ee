package suggest

import (
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "kitten", 0},
		{"kitten", "sitten", 1},
		{"kitten", "sitting", 3},
		{"teh", "the", 1},
		{"ca", "abc", 3},
		{"café", "cafe", 1},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.want {
				t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := Distance(tt.b, tt.a); got != tt.want {
				t.Errorf("Distance(%q, %q) = %d, want %d (symmetry)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestSuggester_Suggest(t *testing.T) {
	s := New([]string{"king", "kings", "kind", "queen", "ring", "kingdom", "the"})

	got := s.Suggest("kng")
	want := []string{"king", "kind", "kings", "ring"}
	if len(got) != len(want) {
		t.Fatalf("Suggest(kng) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Suggest(kng)[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	if got := s.Suggest("teh"); len(got) != 1 || got[0] != "the" {
		t.Errorf("Suggest(teh) = %v", got)
	}
	if got := s.Suggest("king"); len(got) == 0 || got[0] == "king" {
		t.Errorf("Suggest must not return the query itself: %v", got)
	}
	if got := s.Suggest("zzzzzzzz"); got != nil {
		t.Errorf("expected nil suggestions, got %#v", got)
	}
}

func TestSuggester_Options(t *testing.T) {
	s := New([]string{"aa", "ab", "ac", "ad"}, WithMaxSuggestions(2), WithMaxDistance(1))
	got := s.Suggest("a")
	if len(got) != 2 || got[0] != "aa" || got[1] != "ab" {
		t.Errorf("Suggest(a) = %v", got)
	}
	if got := New(nil).Suggest("x"); got != nil {
		t.Errorf("empty vocabulary should suggest nothing, got %v", got)
	}
	var nilSuggester *Suggester
	if got := nilSuggester.Suggest("x"); got != nil {
		t.Errorf("nil suggester should suggest nothing, got %v", got)
	}
}
