package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/inamate/transformlab/internal/document"
	"github.com/inamate/transformlab/internal/lab"
	"github.com/inamate/transformlab/internal/typeid"
)

const maxRequestSize = 1 << 20 // 1MB

type Handler struct {
	service *lab.Service
}

func NewHandler(service *lab.Service) *Handler {
	return &Handler{service: service}
}

type tableRequest struct {
	document.TransformRequest
	Format string `json:"format"`
	Name   string `json:"name"`
}

// ExportTable handles POST /export/table and returns the original and
// transformed points as a CSV, JSON or PNG attachment.
func (h *Handler) ExportTable(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)

	var req tableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	format := req.Format
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "json" && format != "png" {
		http.Error(w, "invalid format: must be csv, json, or png", http.StatusBadRequest)
		return
	}

	name := req.Name
	if name == "" {
		name = "transformation"
	}
	// Sanitize filename
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)

	exportID := typeid.NewExportID()
	slog.Info("export started", "id", exportID, "format", format)

	var (
		buf         bytes.Buffer
		contentType string
		res         *document.TransformResult
		err         error
	)

	switch format {
	case "csv":
		contentType = "text/csv"
		res, err = h.service.Transform(req.TransformRequest)
		if err == nil {
			err = writeCSV(&buf, res)
		}

	case "json":
		contentType = "application/json"
		res, err = h.service.Transform(req.TransformRequest)
		if err == nil {
			err = json.NewEncoder(&buf).Encode(res)
		}

	case "png":
		contentType = "image/png"
		res, err = h.service.Plot(&buf, req.TransformRequest, 0)
		if err == nil && res.Warning != "" {
			err = fmt.Errorf("%w: %s", lab.ErrInvalidInput, res.Warning)
		}
	}

	if err != nil {
		slog.Warn("export failed", "id", exportID, "error", err)
		http.Error(w, fmt.Sprintf("export failed: %v", err), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, name, format))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Export-ID", exportID)
	w.Write(buf.Bytes())

	slog.Info("export complete", "id", exportID, "format", format, "size", buf.Len())
}

// writeCSV writes one row per vertex: index, original x/y, transformed x/y,
// followed by the formatted table labels.
func writeCSV(buf *bytes.Buffer, res *document.TransformResult) error {
	cw := csv.NewWriter(buf)
	if err := cw.Write([]string{"index", "x", "y", "x_prime", "y_prime", "original", "transformed"}); err != nil {
		return err
	}
	for i := range res.Table {
		o, t := res.Original[i], res.Transformed[i]
		record := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(o.X, 'g', -1, 64),
			strconv.FormatFloat(o.Y, 'g', -1, 64),
			strconv.FormatFloat(t.X, 'g', -1, 64),
			strconv.FormatFloat(t.Y, 'g', -1, 64),
			res.Table[i].Original,
			res.Table[i].Transformed,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
