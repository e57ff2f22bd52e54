// Package lab ties the point-list parser, the transformation engine and the
// presentation layer together behind the HTTP, websocket, CLI and WASM
// surfaces.
package lab

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/inamate/transformlab/internal/document"
	"github.com/inamate/transformlab/internal/engine"
	"github.com/inamate/transformlab/internal/pointlist"
	"github.com/inamate/transformlab/internal/present"
)

var (
	// ErrInvalidInput wraps every error caused by the request itself.
	ErrInvalidInput  = errors.New("invalid input")
	ErrTooManyPoints = errors.New("too many points")
	ErrTooManyJobs   = errors.New("too many jobs")
	ErrNoJobs        = errors.New("no jobs")
)

// Options limits and formats what the service produces. A zero MaxPoints or
// MaxBatchJobs means no limit.
type Options struct {
	MaxPoints     int
	MaxBatchJobs  int
	TableDecimals int
	PlotSize      int
}

func DefaultOptions() Options {
	return Options{
		MaxPoints:     1000,
		MaxBatchJobs:  256,
		TableDecimals: present.DefaultTableDecimals,
		PlotSize:      present.DefaultPlotSize,
	}
}

type Service struct {
	opts Options
}

func NewService(opts Options) *Service {
	if opts.TableDecimals < 0 {
		opts.TableDecimals = present.DefaultTableDecimals
	}
	if opts.PlotSize == 0 {
		opts.PlotSize = present.DefaultPlotSize
	}
	return &Service{opts: opts}
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

// Shape resolves the shape of a request: the point text when present,
// otherwise the explicit point array.
func (s *Service) Shape(req document.TransformRequest) (engine.Shape, error) {
	shape, err := s.shape(req)
	if err != nil {
		return nil, invalid(err)
	}
	return shape, nil
}

func (s *Service) shape(req document.TransformRequest) (engine.Shape, error) {
	shape := req.Shape
	if req.Points != "" {
		parsed, err := pointlist.Parse(req.Points)
		if err != nil {
			return nil, err
		}
		shape = parsed
	} else if len(shape) < pointlist.MinPoints {
		return nil, pointlist.ErrTooFewPoints
	}

	if s.opts.MaxPoints > 0 && len(shape) > s.opts.MaxPoints {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyPoints, len(shape), s.opts.MaxPoints)
	}
	return shape, nil
}

// Transform runs a single request. Any problem with the shape or the
// transformation is returned as an ErrInvalidInput error.
func (s *Service) Transform(req document.TransformRequest) (*document.TransformResult, error) {
	shape, err := s.Shape(req)
	if err != nil {
		return nil, err
	}
	t, err := req.Transformation.Transformation()
	if err != nil {
		return nil, invalid(err)
	}
	return s.result(shape, t, engine.Transform(shape, t))
}

// TransformLenient behaves like the interactive page: an unusable shape is
// replaced by the fallback shape and reported in Warning instead of failing.
// An invalid transformation is still an error.
func (s *Service) TransformLenient(req document.TransformRequest) (*document.TransformResult, error) {
	t, err := req.Transformation.Transformation()
	if err != nil {
		return nil, invalid(err)
	}

	var warning string
	shape, err := s.shape(req)
	if err != nil {
		shape = document.FallbackShape()
		warning = err.Error()
	}

	res, err := s.result(shape, t, engine.Transform(shape, t))
	if err != nil {
		return nil, err
	}
	res.Warning = warning
	return res, nil
}

// Batch runs independent requests concurrently. Results are in request order.
func (s *Service) Batch(ctx context.Context, reqs []document.TransformRequest) ([]*document.TransformResult, error) {
	if len(reqs) == 0 {
		return nil, invalid(ErrNoJobs)
	}
	if s.opts.MaxBatchJobs > 0 && len(reqs) > s.opts.MaxBatchJobs {
		return nil, invalid(fmt.Errorf("%w: %d > %d", ErrTooManyJobs, len(reqs), s.opts.MaxBatchJobs))
	}

	jobs := make([]engine.Job, len(reqs))
	for i, req := range reqs {
		shape, err := s.Shape(req)
		if err != nil {
			return nil, fmt.Errorf("job %d: %w", i, err)
		}
		t, err := req.Transformation.Transformation()
		if err != nil {
			return nil, fmt.Errorf("job %d: %w", i, invalid(err))
		}
		jobs[i] = engine.Job{Shape: shape, Transformation: t}
	}

	shapes, err := engine.RunBatch(ctx, jobs)
	if err != nil {
		return nil, fmt.Errorf("run batch: %w", err)
	}

	results := make([]*document.TransformResult, len(jobs))
	for i, job := range jobs {
		res, err := s.result(job.Shape, job.Transformation, shapes[i])
		if err != nil {
			return nil, fmt.Errorf("job %d: %w", i, err)
		}
		results[i] = res
	}
	return results, nil
}

// Plot renders the lenient result of req as a PNG. size 0 uses the
// configured plot size.
func (s *Service) Plot(w io.Writer, req document.TransformRequest, size int) (*document.TransformResult, error) {
	res, err := s.TransformLenient(req)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		size = s.opts.PlotSize
	}
	opts := present.PlotOptions{Size: size, Title: res.Title}
	if err := present.RenderPNG(w, res.Original, res.Transformed, opts); err != nil {
		return nil, invalid(err)
	}
	return res, nil
}

// Scene compiles the lenient result of req into canvas draw commands.
func (s *Service) Scene(req document.TransformRequest, size int) (*document.TransformResult, []present.DrawCommand, error) {
	res, err := s.TransformLenient(req)
	if err != nil {
		return nil, nil, err
	}
	if size == 0 {
		size = s.opts.PlotSize
	}
	cmds, err := present.Scene(res.Original, res.Transformed, size)
	if err != nil {
		return nil, nil, invalid(err)
	}
	return res, cmds, nil
}

// result fails when finite inputs overflowed, e.g. a huge shape dilated by
// a huge factor.
func (s *Service) result(original engine.Shape, t engine.Transformation, transformed engine.Shape) (*document.TransformResult, error) {
	for i, p := range transformed {
		if !finite(p.X) || !finite(p.Y) {
			return nil, invalid(fmt.Errorf("transformed point %d: %w", i+1, document.ErrNotFinite))
		}
	}
	limit := present.AxisLimit(original, transformed)
	if !finite(limit) {
		return nil, invalid(fmt.Errorf("axis limit: %w", document.ErrNotFinite))
	}

	return &document.TransformResult{
		Title:          present.Title(t.Kind()),
		Description:    present.Describe(t),
		Transformation: document.FromTransformation(t),
		Matrix:         t.Matrix().ToSlice(),
		Original:       original,
		Transformed:    transformed,
		Table:          present.Table(original, transformed, s.opts.TableDecimals),
		Bounds:         engine.Bounds(original, transformed),
		AxisLimit:      limit,
	}, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
