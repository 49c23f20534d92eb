package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Plumbing", "plumbing"},
		{"Drywall & Paint", "drywall-paint"},
		{"Sanitär", "sanitaer"},
		{"Türen/Fenster", "tueren-fenster"},
		{"Außenanlagen", "aussenanlagen"},
		{"  Electrical  ", "electrical"},
		{"Bad OG", "bad-og"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.name); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestSlugify_Stable(t *testing.T) {
	// Same input must always produce the same id.
	if Slugify("Bodenbeläge") != Slugify("Bodenbeläge") {
		t.Error("Slugify is not deterministic")
	}
}
