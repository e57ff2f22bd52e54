package document

import (
	"encoding/json"
	"errors"
	"math"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/inamate/transformlab/internal/engine"
)

func TestSpecTransformation(t *testing.T) {
	tests := []struct {
		json string
		want engine.Transformation
	}{
		{`{"kind":"translate","dx":2,"dy":-1}`, engine.Translate{DX: 2, DY: -1}},
		{`{"kind":"translate"}`, engine.Translate{DX: 2, DY: 1}},
		{`{"kind":"translate","dx":0}`, engine.Translate{DX: 0, DY: 1}},
		{`{"kind":"Rotate","angleDegrees":-270,"centerX":1,"centerY":2}`, engine.Rotate{AngleDegrees: -270, CenterX: 1, CenterY: 2}},
		{`{"kind":"rotate"}`, engine.Rotate{AngleDegrees: 90}},
		{`{"kind":"reflect","axis":"y=x"}`, engine.Reflect{Axis: engine.AxisLineYEqualsX}},
		{`{"kind":"reflect"}`, engine.Reflect{Axis: engine.AxisX}},
		{`{"kind":"dilate","scaleFactor":0,"centerX":-1}`, engine.Dilate{ScaleFactor: 0, CenterX: -1}},
		{`{"kind":"dilate"}`, engine.Dilate{ScaleFactor: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.json, func(t *testing.T) {
			var s Spec
			if err := json.Unmarshal([]byte(tt.json), &s); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			got, err := s.Transformation()
			if err != nil {
				t.Fatalf("Transformation: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSpecTransformationErrors(t *testing.T) {
	inf := math.Inf(1)

	tests := []struct {
		name string
		spec Spec
		want error
	}{
		{"missing kind", Spec{}, ErrMissingKind},
		{"unknown kind", Spec{Kind: "shear"}, engine.ErrUnknownKind},
		{"unknown axis", Spec{Kind: "reflect", Axis: "z"}, engine.ErrUnknownAxis},
		{"infinite", Spec{Kind: "dilate", ScaleFactor: &inf}, ErrNotFinite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.spec.Transformation(); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFromTransformationRoundTrip(t *testing.T) {
	all := []engine.Transformation{
		engine.Translate{DX: -3, DY: 0},
		engine.Rotate{AngleDegrees: 45, CenterX: 1, CenterY: 1},
		engine.Reflect{Axis: engine.AxisY},
		engine.Reflect{Axis: engine.AxisLineYEqualsX},
		engine.Dilate{ScaleFactor: -0.5, CenterY: 4},
	}
	for _, tr := range all {
		back, err := FromTransformation(tr).Transformation()
		if err != nil {
			t.Fatalf("%v: %v", tr, err)
		}
		if diff := cmp.Diff(tr, back); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestSpecFromQuery(t *testing.T) {
	q := url.Values{
		"kind":         {"rotate"},
		"angleDegrees": {"30"},
		"centerY":      {"-2.5"},
	}
	s, err := SpecFromQuery(q)
	if err != nil {
		t.Fatalf("SpecFromQuery: %v", err)
	}
	got, err := s.Transformation()
	if err != nil {
		t.Fatalf("Transformation: %v", err)
	}
	if diff := cmp.Diff(engine.Rotate{AngleDegrees: 30, CenterY: -2.5}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	if _, err := SpecFromQuery(url.Values{"dx": {"two"}}); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("err = %v, want ErrInvalidParam", err)
	}

	s, err = SpecFromQuery(url.Values{"kind": {"translate"}, "dx": {"NaN"}})
	if err != nil {
		t.Fatalf("SpecFromQuery: %v", err)
	}
	if _, err := s.Transformation(); !errors.Is(err, ErrNotFinite) {
		t.Errorf("err = %v, want ErrNotFinite", err)
	}
}

func TestDefaults(t *testing.T) {
	specs := Defaults()
	if len(specs) != 4 {
		t.Fatalf("len(Defaults()) = %d, want 4", len(specs))
	}
	if _, ok := DefaultSpec("shear"); ok {
		t.Error("DefaultSpec(shear) should not be ok")
	}
	s, ok := DefaultSpec("dilate")
	if !ok || s.ScaleFactor == nil || *s.ScaleFactor != DefaultScaleFactor {
		t.Errorf("DefaultSpec(dilate) = %+v, %v", s, ok)
	}
}

func TestSpecTransformationNamesFirstNonFiniteField(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(-1)
	spec := Spec{Kind: "rotate", AngleDegrees: &nan, CenterX: &inf, CenterY: &nan}

	for range 20 {
		_, err := spec.Transformation()
		if !errors.Is(err, ErrNotFinite) || !strings.HasPrefix(err.Error(), "angleDegrees:") {
			t.Fatalf("err = %v, want angleDegrees: %v", err, ErrNotFinite)
		}
	}
}
