package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nkoval/hiveportal/internal/config"
	"github.com/nkoval/hiveportal/internal/database"
	"github.com/nkoval/hiveportal/internal/server"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// One-time bootstrap: a fresh database is populated from the seed CSVs
	// before the server takes any request.
	seeds := []struct {
		table database.Table
		file  string
	}{
		{database.Incidents, "cyber_incidents.csv"},
		{database.Datasets, "datasets_metadata.csv"},
		{database.Tickets, "it_tickets.csv"},
	}
	for _, seed := range seeds {
		rows, err := db.LoadOrSeed(seed.table, filepath.Join(cfg.Data.Dir, seed.file))
		if err != nil {
			slog.Error("failed to seed table", "table", seed.table.Name, "error", err)
			os.Exit(1)
		}
		slog.Info("table ready", "table", seed.table.Name, "rows", len(rows))
	}

	srv := server.New(cfg, db)
	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
