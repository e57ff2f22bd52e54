package pointlist

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/inamate/transformlab/internal/document"
	"github.com/inamate/transformlab/internal/engine"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want engine.Shape
	}{
		{"1,1; 3,1; 3,3; 1,3", engine.Shape{{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 3}, {X: 1, Y: 3}}},
		{"0,0;1,1", engine.Shape{{X: 0, Y: 0}, {X: 1, Y: 1}}},
		{"  -1.5 , 2 ;\n 3 , -4.25  ", engine.Shape{{X: -1.5, Y: 2}, {X: 3, Y: -4.25}}},
		{"1,1; 2,2;", engine.Shape{{X: 1, Y: 1}, {X: 2, Y: 2}}},
		{"; 1,1;; ;2,2", engine.Shape{{X: 1, Y: 1}, {X: 2, Y: 2}}},
		{"1e2,.5; +3,-2E-1", engine.Shape{{X: 100, Y: 0.5}, {X: 3, Y: -0.2}}},
		{"1,1; 1,1", engine.Shape{{X: 1, Y: 1}, {X: 1, Y: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"", ErrTooFewPoints},
		{" ; ;", ErrTooFewPoints},
		{"1,1", ErrTooFewPoints},
		{"1,1;", ErrTooFewPoints},
		{"1,1 2,2", ErrMalformed},
		{"1;2", ErrMalformed},
		{"1,2,3; 4,5", ErrMalformed},
		{"a,b; c,d", ErrMalformed},
		{"1,1; 2,", ErrMalformed},
		{"1,1; 2,2e999", ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := Parse(tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) err = %v, want %v", tt.in, err, tt.want)
			}
		})
	}
}

func TestParseOrFallback(t *testing.T) {
	got, err := ParseOrFallback("not points")
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("err = %v, want ErrMalformed", err)
	}
	if diff := cmp.Diff(document.FallbackShape(), got); diff != "" {
		t.Errorf("fallback mismatch (-want +got):\n%s", diff)
	}

	got, err = ParseOrFallback(document.DefaultPointsText)
	if err != nil {
		t.Fatalf("default points: %v", err)
	}
	if len(got) != 4 {
		t.Errorf("default points len = %d, want 4", len(got))
	}
}

func TestFormatRoundTrip(t *testing.T) {
	s := engine.Shape{{X: 1, Y: 1}, {X: -2.5, Y: 0.125}, {X: 1e-7, Y: 300}}
	text := Format(s)
	if text != "1,1; -2.5,0.125; 1e-07,300" {
		t.Errorf("Format = %q", text)
	}
	back, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse(Format(s)): %v", err)
	}
	if diff := cmp.Diff(s, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
