package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/inamate/transformlab/internal/config"
	"github.com/inamate/transformlab/internal/export"
	"github.com/inamate/transformlab/internal/lab"
	mw "github.com/inamate/transformlab/internal/middleware"
	"github.com/inamate/transformlab/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      newRouter(cfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "maxPoints", cfg.MaxPoints, "maxBatchJobs", cfg.MaxBatchJobs)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func newRouter(cfg *config.Config) *mux.Router {
	service := lab.NewService(lab.Options{
		MaxPoints:     cfg.MaxPoints,
		MaxBatchJobs:  cfg.MaxBatchJobs,
		TableDecimals: cfg.TableDecimals,
		PlotSize:      cfg.PlotSize,
	})
	labHandler := lab.NewHandler(service)
	exportHandler := export.NewHandler(service)
	sessionHandler := session.NewHandler(service, cfg.OriginPatterns())

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/defaults", labHandler.Defaults).Methods("GET")
	api.HandleFunc("/parse", labHandler.Parse).Methods("POST", "OPTIONS")
	api.HandleFunc("/transform", labHandler.Transform).Methods("POST", "OPTIONS")
	api.HandleFunc("/transform/batch", labHandler.Batch).Methods("POST", "OPTIONS")
	api.HandleFunc("/scene", labHandler.Scene).Methods("POST", "OPTIONS")
	api.HandleFunc("/plot.png", labHandler.Plot).Methods("GET")

	r.HandleFunc("/export/table", exportHandler.ExportTable).Methods("POST", "OPTIONS")

	// WebSocket endpoint
	r.Handle("/ws/lab", sessionHandler)

	return r
}
