package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"casos-nna/internal/catalog"
	"casos-nna/internal/httpapi"
	"casos-nna/internal/nna"
	"casos-nna/internal/plan"
	"casos-nna/internal/ponderacion"
	"casos-nna/internal/respuesta"
	"casos-nna/internal/sqlite"
	"casos-nna/internal/territorio"
)

func main() {
	// .env is optional; explicit env vars and flags win.
	_ = godotenv.Load()

	addr := flag.String("addr", envOrDefault("ADDR", ":8080"), "HTTP listen address")
	dbPath := flag.String("db", envOrDefault("DB_PATH", "casos.db"), "sqlite database path")
	catalogPath := flag.String("catalog", envOrDefault("CATALOG_PATH", ""), "catalog seed JSON path (optional)")
	flag.Parse()

	store, err := sqlite.NewStore(*dbPath)
	if err != nil {
		slog.Error("store open failed", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	catalogo := catalog.NewService(store)
	if *catalogPath != "" {
		if err := catalogo.LoadAndSeed(context.Background(), *catalogPath); err != nil {
			slog.Error("catalog seed failed", "error", err)
			os.Exit(1)
		}
		slog.Info("catalog seeded", "path", *catalogPath)
	}

	planes := plan.NewService(store, catalogo)
	respuestas := respuesta.NewService(store)
	ponderaciones := ponderacion.NewService(store, store)
	territorios := territorio.NewService(store)
	sujetos := nna.NewService(store)

	server := &http.Server{
		Addr:              *addr,
		Handler:           httpapi.NewRouter(catalogo, planes, respuestas, ponderaciones, territorios, sujetos),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	slog.Info("casos-service listening", "addr", *addr, "db", *dbPath)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("server closed")
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
