package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/inamate/transformlab/internal/config"
	"github.com/inamate/transformlab/internal/document"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:           0,
		AllowedOrigins: "http://localhost:5173",
		LogLevel:       "error",
		MaxPoints:      100,
		MaxBatchJobs:   4,
		PlotSize:       320,
		TableDecimals:  2,
	}
}

func TestRoutes(t *testing.T) {
	srv := httptest.NewServer(newRouter(testConfig()))
	defer srv.Close()

	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{"GET", "/health", "", http.StatusOK},
		{"GET", "/api/defaults", "", http.StatusOK},
		{"POST", "/api/parse", `{"points":"1,1; 2,2"}`, http.StatusOK},
		{"POST", "/api/transform", `{"points":"1,1; 2,2","transformation":{"kind":"reflect","axis":"y"}}`, http.StatusOK},
		{"POST", "/api/transform", `{"points":"1,1","transformation":{"kind":"reflect"}}`, http.StatusBadRequest},
		{"POST", "/api/transform/batch", `{"jobs":[{"points":"0,0; 1,0","transformation":{"kind":"rotate"}}]}`, http.StatusOK},
		{"POST", "/api/scene", `{"points":"0,0; 1,0","transformation":{"kind":"reflect","axis":"y=x"}}`, http.StatusOK},
		{"GET", "/api/plot.png?kind=dilate&scaleFactor=0.5", "", http.StatusOK},
		{"POST", "/export/table", `{"points":"0,0; 1,0","transformation":{"kind":"translate"}}`, http.StatusOK},
		{"GET", "/api/transform", "", http.StatusMethodNotAllowed},
		{"GET", "/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		req, err := http.NewRequest(tt.method, srv.URL+tt.path, strings.NewReader(tt.body))
		if err != nil {
			t.Fatal(err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("%s %s: %v", tt.method, tt.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.status {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.path, resp.StatusCode, tt.status)
		}
	}
}

func TestTransformRouteCarriesRequestID(t *testing.T) {
	srv := httptest.NewServer(newRouter(testConfig()))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/transform", "application/json",
		strings.NewReader(`{"points":"1,0; 0,1","transformation":{"kind":"rotate","angleDegrees":180}}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if !strings.HasPrefix(resp.Header.Get("X-Request-ID"), "req_") {
		t.Errorf("X-Request-ID = %q, want req_ prefix", resp.Header.Get("X-Request-ID"))
	}

	var res document.TransformResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Title != "Transformation: Rotate" {
		t.Errorf("Title = %q", res.Title)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := httptest.NewServer(newRouter(testConfig()))
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/transform", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}
