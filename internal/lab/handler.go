package lab

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/inamate/transformlab/internal/document"
	"github.com/inamate/transformlab/internal/engine"
	"github.com/inamate/transformlab/internal/pointlist"
	"github.com/inamate/transformlab/internal/present"
)

const maxBodySize = 1 << 20 // 1MB

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type parseRequest struct {
	Points string `json:"points"`
}

type parseResponse struct {
	Shape engine.Shape `json:"shape"`
	Text  string       `json:"text"`
}

type batchRequest struct {
	Jobs []document.TransformRequest `json:"jobs"`
}

type batchResponse struct {
	Results []*document.TransformResult `json:"results"`
}

type sceneRequest struct {
	document.TransformRequest
	Size int `json:"size"`
}

type sceneResponse struct {
	Result   *document.TransformResult `json:"result"`
	Commands []present.DrawCommand     `json:"commands"`
}

type defaultsResponse struct {
	Points          string          `json:"points"`
	Transformations []document.Spec `json:"transformations"`
}

// Defaults handles GET /api/defaults: the starting shape and control values.
func (h *Handler) Defaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, defaultsResponse{
		Points:          document.DefaultPointsText,
		Transformations: document.Defaults(),
	})
}

// Parse handles POST /api/parse.
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	shape, err := h.service.Shape(document.TransformRequest{Points: req.Points})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, parseResponse{Shape: shape, Text: pointlist.Format(shape)})
}

// Transform handles POST /api/transform.
func (h *Handler) Transform(w http.ResponseWriter, r *http.Request) {
	var req document.TransformRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.service.Transform(req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// Batch handles POST /api/transform/batch.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	results, err := h.service.Batch(r.Context(), req.Jobs)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, batchResponse{Results: results})
}

// Scene handles POST /api/scene: the draw commands the browser canvas
// replays, alongside the lenient result.
func (h *Handler) Scene(w http.ResponseWriter, r *http.Request) {
	var req sceneRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, cmds, err := h.service.Scene(req.TransformRequest, req.Size)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sceneResponse{Result: res, Commands: cmds})
}

// Plot handles GET /api/plot.png. The shape comes from the "points" query
// parameter and the transformation from the Spec fields; a bad point list
// falls back to the safe shape, reported in the X-Lab-Warning header.
func (h *Handler) Plot(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	spec, err := document.SpecFromQuery(q)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	size := 0
	if raw := q.Get("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid size"})
			return
		}
	}

	points := q.Get("points")
	if points == "" {
		points = document.DefaultPointsText
	}

	var buf bytes.Buffer
	res, err := h.service.Plot(&buf, document.TransformRequest{Points: points, Transformation: spec}, size)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if res.Warning != "" {
		w.Header().Set("X-Lab-Warning", res.Warning)
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		slog.Error("service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("marshal response", "error", err)
		status = http.StatusInternalServerError
		body = []byte(`{"error":"internal error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}
