package imports

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Ductile Iron", "ductile-iron"},
		{"strips extension", "k7-pipe.jpg", "k7-pipe"},
		{"collapses separator runs", "Pipes  &  Fittings", "pipes-fittings"},
		{"trims outer hyphens", "--Valves--", "valves"},
		{"mixed case and digits", "K-7 Class DI Pipe 150mm", "k-7-class-di-pipe-150mm"},
		{"only separators", "///", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"Ductile Iron", "k7-pipe.jpg", "Pipes & Fittings", "Manhole Covers"}

	for _, input := range inputs {
		once := Slugify(input)
		if twice := Slugify(once); twice != once {
			t.Errorf("Slugify not idempotent for %q: %q != %q", input, twice, once)
		}
	}
}

func TestProductSlug(t *testing.T) {
	slug := ProductSlug("K-7 Pipe")

	if !strings.HasPrefix(slug, "k-7-pipe-") {
		t.Fatalf("ProductSlug(%q) = %q, want prefix %q", "K-7 Pipe", slug, "k-7-pipe-")
	}

	if suffix := strings.TrimPrefix(slug, "k-7-pipe-"); suffix == "" {
		t.Error("ProductSlug produced an empty disambiguator")
	}
}
