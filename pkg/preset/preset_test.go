package preset

import (
	"testing"

	"github.com/pplot/pplot/pkg/colorset"
	"github.com/pplot/pplot/pkg/errors"
)

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 8 {
		t.Fatalf("len(Names()) = %d, want 8", len(names))
	}
	if names[0] != "ieee-modern" {
		t.Errorf("Names()[0] = %q, want %q", names[0], "ieee-modern")
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		style    string
		colorSet string
	}{
		{"ieee modern", "ieee-modern", "IEEE", "Modern Scientific"},
		{"ieee contrast1", "ieee-contrast1", "IEEE", "Contrast Set 1"},
		{"ieee okabe", "ieee-okabe", "IEEE", "Okabe-Ito"},
		{"gb modern", "gb-modern", "GB", "Modern Scientific"},
		{"gb contrast2", "gb-contrast2", "GB", "Contrast Set 2"},
		{"gb okabe", "gb-okabe", "GB", "Okabe-Ito"},
		{"ieee gray", "ieee-gray", "IEEE", "Grayscale-Safe"},
		{"gb gray", "gb-gray", "GB", "Grayscale-Safe"},
		{"case insensitive", "IEEE-Okabe", "IEEE", "Okabe-Ito"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Get(tt.query)
			if err != nil {
				t.Fatalf("Get(%q) error = %v", tt.query, err)
			}
			if p.Style != tt.style {
				t.Errorf("Style = %q, want %q", p.Style, tt.style)
			}
			if p.ColorSet != tt.colorSet {
				t.Errorf("ColorSet = %q, want %q", p.ColorSet, tt.colorSet)
			}
		})
	}
}

func TestGetUnknown(t *testing.T) {
	_, err := Get("apa-neon")
	if err == nil {
		t.Fatal("Get(unknown) error = nil, want error")
	}
	if !errors.Is(err, errors.ErrCodeUnknownPreset) {
		t.Errorf("GetCode = %v, want %v", errors.GetCode(err), errors.ErrCodeUnknownPreset)
	}
}

func TestEveryPresetColorSetExists(t *testing.T) {
	for _, p := range All() {
		if _, err := colorset.Get(p.ColorSet); err != nil {
			t.Errorf("preset %s references unknown color set %q: %v", p.Name, p.ColorSet, err)
		}
	}
}
