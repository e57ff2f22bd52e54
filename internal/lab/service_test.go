package lab

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/inamate/transformlab/internal/document"
	"github.com/inamate/transformlab/internal/engine"
	"github.com/inamate/transformlab/internal/pointlist"
)

func ptr(f float64) *float64 { return &f }

func newTestService() *Service {
	opts := DefaultOptions()
	opts.MaxPoints = 10
	opts.MaxBatchJobs = 3
	return NewService(opts)
}

func TestServiceTransform(t *testing.T) {
	svc := newTestService()

	res, err := svc.Transform(document.TransformRequest{
		Points:         document.DefaultPointsText,
		Transformation: document.Spec{Kind: "reflect", Axis: "y=x"},
	})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}

	want := engine.Shape{{X: 1, Y: 1}, {X: 1, Y: 3}, {X: 3, Y: 3}, {X: 3, Y: 1}}
	if diff := cmp.Diff(want, res.Transformed); diff != "" {
		t.Errorf("transformed mismatch (-want +got):\n%s", diff)
	}
	if res.Title != "Transformation: Reflect" {
		t.Errorf("Title = %q", res.Title)
	}
	if res.Description != "Reflect across the line y=x" {
		t.Errorf("Description = %q", res.Description)
	}
	if res.AxisLimit != 4 {
		t.Errorf("AxisLimit = %v, want 4", res.AxisLimit)
	}
	if len(res.Table) != 4 || res.Table[1].Transformed != "P'2(1.00, 3.00)" {
		t.Errorf("Table = %+v", res.Table)
	}
	if diff := cmp.Diff([]float64{0, 1, 1, 0, 0, 0}, res.Matrix); diff != "" {
		t.Errorf("Matrix mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(engine.Rect{X: 1, Y: 1, Width: 2, Height: 2}, res.Bounds); diff != "" {
		t.Errorf("Bounds mismatch (-want +got):\n%s", diff)
	}
}

func TestServiceRejectsOverflowingResult(t *testing.T) {
	svc := newTestService()
	huge := document.TransformRequest{
		Points:         "1e300,1e300; 1,1",
		Transformation: document.Spec{Kind: "dilate", ScaleFactor: ptr(1e300)},
	}

	if _, err := svc.Transform(huge); !errors.Is(err, ErrInvalidInput) || !errors.Is(err, document.ErrNotFinite) {
		t.Errorf("Transform err = %v, want ErrInvalidInput wrapping ErrNotFinite", err)
	}
	if _, err := svc.TransformLenient(huge); !errors.Is(err, document.ErrNotFinite) {
		t.Errorf("TransformLenient err = %v, want ErrNotFinite", err)
	}
	if _, err := svc.Batch(context.Background(), []document.TransformRequest{huge}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Batch err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Plot(&bytes.Buffer{}, huge, 0); !errors.Is(err, document.ErrNotFinite) {
		t.Errorf("Plot err = %v, want ErrNotFinite", err)
	}
}

func TestServiceTransformExplicitShape(t *testing.T) {
	svc := newTestService()

	res, err := svc.Transform(document.TransformRequest{
		Shape:          engine.Shape{{X: 1, Y: 0}, {X: 0, Y: 1}},
		Transformation: document.Spec{Kind: "rotate", AngleDegrees: ptr(90)},
	})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	want := engine.Shape{{X: 0, Y: 1}, {X: -1, Y: 0}}
	if diff := cmp.Diff(want, res.Transformed, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestServiceTransformErrors(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name string
		req  document.TransformRequest
		want error
	}{
		{"malformed points", document.TransformRequest{Points: "1;2", Transformation: document.Spec{Kind: "translate"}}, pointlist.ErrMalformed},
		{"one point", document.TransformRequest{Shape: engine.Shape{{X: 1, Y: 1}}, Transformation: document.Spec{Kind: "translate"}}, pointlist.ErrTooFewPoints},
		{"too many points", document.TransformRequest{Shape: make(engine.Shape, 11), Transformation: document.Spec{Kind: "translate"}}, ErrTooManyPoints},
		{"bad kind", document.TransformRequest{Points: "0,0; 1,1", Transformation: document.Spec{Kind: "shear"}}, engine.ErrUnknownKind},
		{"bad axis", document.TransformRequest{Points: "0,0; 1,1", Transformation: document.Spec{Kind: "reflect", Axis: "z"}}, engine.ErrUnknownAxis},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Transform(tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestServiceTransformLenient(t *testing.T) {
	svc := newTestService()

	res, err := svc.TransformLenient(document.TransformRequest{
		Points:         "oops",
		Transformation: document.Spec{Kind: "translate", DX: ptr(1), DY: ptr(1)},
	})
	if err != nil {
		t.Fatalf("TransformLenient: %v", err)
	}
	if res.Warning == "" {
		t.Error("expected a warning for malformed points")
	}
	if diff := cmp.Diff(document.FallbackShape(), res.Original); diff != "" {
		t.Errorf("original mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(engine.Shape{{X: 1, Y: 1}, {X: 2, Y: 2}}, res.Transformed); diff != "" {
		t.Errorf("transformed mismatch (-want +got):\n%s", diff)
	}

	if _, err := svc.TransformLenient(document.TransformRequest{Points: "oops"}); !errors.Is(err, document.ErrMissingKind) {
		t.Errorf("err = %v, want ErrMissingKind", err)
	}
}

func TestServiceBatch(t *testing.T) {
	svc := newTestService()

	reqs := []document.TransformRequest{
		{Points: "1,1; 2,2", Transformation: document.Spec{Kind: "translate", DX: ptr(2), DY: ptr(-1)}},
		{Points: "3,4; 0,0", Transformation: document.Spec{Kind: "reflect", Axis: "x"}},
		{Points: "2,2; 1,1", Transformation: document.Spec{Kind: "dilate", ScaleFactor: ptr(2)}},
	}
	results, err := svc.Batch(context.Background(), reqs)
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}

	want := []engine.Shape{
		{{X: 3, Y: 0}, {X: 4, Y: 1}},
		{{X: 3, Y: -4}, {X: 0, Y: 0}},
		{{X: 4, Y: 4}, {X: 2, Y: 2}},
	}
	for i, res := range results {
		if diff := cmp.Diff(want[i], res.Transformed); diff != "" {
			t.Errorf("job %d mismatch (-want +got):\n%s", i, diff)
		}
	}

	if _, err := svc.Batch(context.Background(), append(reqs, reqs[0])); !errors.Is(err, ErrTooManyJobs) {
		t.Errorf("err = %v, want ErrTooManyJobs", err)
	}
	if _, err := svc.Batch(context.Background(), nil); !errors.Is(err, ErrNoJobs) {
		t.Errorf("err = %v, want ErrNoJobs", err)
	}
}

func TestServicePlot(t *testing.T) {
	svc := newTestService()

	var buf bytes.Buffer
	res, err := svc.Plot(&buf, document.TransformRequest{
		Points:         document.DefaultPointsText,
		Transformation: document.Spec{Kind: "rotate"},
	}, 300)
	if err != nil {
		t.Fatalf("Plot: %v", err)
	}
	if res.Warning != "" {
		t.Errorf("unexpected warning %q", res.Warning)
	}
	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 300 || cfg.Height != 300 {
		t.Errorf("size = %dx%d, want 300x300", cfg.Width, cfg.Height)
	}

	if _, err := svc.Plot(&buf, document.TransformRequest{Points: "0,0; 1,1", Transformation: document.Spec{Kind: "rotate"}}, 5); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}
