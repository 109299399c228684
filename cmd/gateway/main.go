package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	auth "github.com/kcetprep/kcetprep/internal/auth/middleware"
	"github.com/kcetprep/kcetprep/internal/college"
	"github.com/kcetprep/kcetprep/internal/config"
	"github.com/kcetprep/kcetprep/internal/db"
	"github.com/kcetprep/kcetprep/internal/extract"
	"github.com/kcetprep/kcetprep/internal/practice"
	"github.com/kcetprep/kcetprep/internal/predict"
	storage "github.com/kcetprep/kcetprep/internal/storage"
	"github.com/kcetprep/kcetprep/internal/uploads"
	"github.com/kcetprep/kcetprep/internal/users"
)

func main() {
	cfg := config.FromEnv()
	logger := log.Default()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	// --- Seed ---
	userStore := users.NewStore(dbh)
	if _, err := userStore.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	dataset := predict.FileSource{Path: cfg.CSVDataPath}
	colleges := college.NewSQLStore(dbh)
	switch _, statErr := os.Stat(cfg.CSVDataPath); {
	case !cfg.SeedColleges:
		log.Printf("college seeding disabled")
	case statErr != nil:
		log.Printf("CSV file not found at %s, skipping college seeding", cfg.CSVDataPath)
	default:
		seeder := &college.Seeder{Source: dataset, Store: colleges, Log: logger}
		if _, err := seeder.Seed(ctx); err != nil {
			log.Printf("college seeding failed: %v", err)
		}
	}

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	r := newRouter(deps{
		DB:          dbh,
		Auth:        auth.NewAuthService(cfg.AuthSecret, cfg.TokenTTL),
		Users:       userStore,
		Engine:      predict.NewEngine(dataset, predict.WithSink(logger)),
		Colleges:    colleges,
		Uploads:     uploads.NewService(uploads.NewSQLStore(dbh), bs),
		Practice:    practice.NewService(practice.NewSQLStore(dbh)),
		Extractor:   extract.New(extract.Config{URL: cfg.ExtractorURL, Timeout: cfg.ExtractorTimeout}),
		DatasetPath: cfg.CSVDataPath,

		CORSOrigins:        cfg.CORSOrigins(),
		RequestTimeout:     cfg.RequestTimeout,
		AllowClaimFallback: cfg.Mode == config.ModeOffline,
	})

	log.Printf("listening on %s (mode=%s, db=%s, dataset=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver, cfg.CSVDataPath)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
