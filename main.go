package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LyesArab/ProcessMining/internal/api"
	"github.com/LyesArab/ProcessMining/internal/config"
	"github.com/LyesArab/ProcessMining/internal/db"
	"github.com/LyesArab/ProcessMining/internal/ingest"
	"github.com/LyesArab/ProcessMining/internal/pipeline"
	"github.com/LyesArab/ProcessMining/internal/report"
	"github.com/LyesArab/ProcessMining/internal/units"
)

var (
	input      = flag.String("input", "", "Path to the sensor readings CSV")
	configPath = flag.String("config", "", "Path to a pipeline config JSON (defaults apply when empty)")
	dbFile     = flag.String("db", "eventlog.db", "Path to the sqlite database (empty to skip persistence)")
	strategy   = flag.String("strategy", "", "Override the case strategy (daily or session)")
	sample     = flag.Int("sample", 0, "Read at most this many rows (0 reads everything)")
	plotsDir   = flag.String("plots", "", "Directory for PNG plots (empty to skip)")
	jsonOut    = flag.Bool("json", false, "Print the full analysis result as JSON to stdout")
	serve      = flag.Bool("serve", false, "Serve results over HTTP after the run")
	listen     = flag.String("listen", ":8080", "Listen address for -serve")
)

func main() {
	flag.Parse()

	if *input == "" {
		log.Fatal("-input is required")
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}
	if *strategy != "" {
		cfg.CaseStrategy = strategy
	}

	loc, err := units.LoadTimezone(cfg.GetTimezone())
	if err != nil {
		log.Fatalf("failed to load timezone: %v", err)
	}

	readings, err := ingest.ReadFile(*input, ingest.Options{MaxRows: *sample, Location: loc})
	if err != nil {
		log.Fatalf("failed to read %s: %v", *input, err)
	}
	log.Printf("read %d readings from %s (%d malformed rows skipped)",
		len(readings.Readings), *input, readings.Malformed)

	p, err := pipeline.New(cfg)
	if err != nil {
		log.Fatalf("failed to build pipeline: %v", err)
	}
	res, err := p.Run(readings.Readings)
	if err != nil {
		log.Fatalf("pipeline run failed: %v", err)
	}

	var database *db.DB
	if *dbFile != "" {
		database, err = db.NewDB(*dbFile)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer database.Close()

		if err := database.SaveRun(res); err != nil {
			log.Fatalf("failed to persist run: %v", err)
		}
		log.Printf("persisted run %s to %s", res.RunID, *dbFile)
	}

	if *plotsDir != "" {
		if _, err := report.WriteAll(res, *plotsDir); err != nil {
			log.Fatalf("failed to write plots: %v", err)
		}
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			log.Fatalf("failed to encode result: %v", err)
		}
	}

	if !*serve {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := api.NewServer(database)
	srv.SetResult(res)

	server := &http.Server{
		Addr:    *listen,
		Handler: api.LoggingMiddleware(srv.ServeMux()),
	}

	go func() {
		log.Printf("serving results on %s", *listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	log.Printf("graceful shutdown complete")
}
