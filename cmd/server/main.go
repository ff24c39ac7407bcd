package main // Entry point package

import (
	"context" // Context for schema bootstrap
	"log"     // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/bijayshruti/SSC-APP5/internal/backup"     // JSON snapshot store
	"github.com/bijayshruti/SSC-APP5/internal/config"     // Internal config loader
	"github.com/bijayshruti/SSC-APP5/internal/database"   // MySQL connection and schema
	"github.com/bijayshruti/SSC-APP5/internal/handler"    // HTTP handlers
	"github.com/bijayshruti/SSC-APP5/internal/middleware" // Rate limiting middleware
	"github.com/bijayshruti/SSC-APP5/internal/queue"      // Audit log consumer
	"github.com/bijayshruti/SSC-APP5/internal/repository" // Data access layer
	"github.com/bijayshruti/SSC-APP5/internal/router"     // Internal router setup
)

func main() {
	// A missing .env is fine; real deployments set variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("database: %v", err)
	}

	store, err := backup.NewStore(cfg.BackupDir)
	if err != nil {
		log.Fatalf("backup store: %v", err)
	}

	// Redis is optional; a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}

	operators := repository.NewOperatorRepo(db)
	tokens := repository.NewTokenRepo(db)
	exams := repository.NewExamRepo(db)
	allocs := repository.NewAllocationRepo(db)
	eyAllocs := repository.NewEYAllocationRepo(db)
	references := repository.NewReferenceRepo(db)
	deleted := repository.NewDeletedRecordRepo(db)
	rates := repository.NewRateRepo(db)
	rosters := repository.NewRosterRepo(db)

	backups := handler.NewBackupHandler(db, store, exams, allocs, eyAllocs)
	api := router.APIHandlers{
		Exams:      handler.NewExamHandler(exams, allocs, eyAllocs, references, store),
		References: handler.NewReferenceHandler(exams, references),
		Allocs:     handler.NewAllocationHandler(db, allocs, exams, references, deleted, rosters),
		EYAllocs:   handler.NewEYAllocationHandler(db, eyAllocs, exams, references, deleted, rosters, rates),
		Deleted:    handler.NewDeletedRecordHandler(deleted),
		Rates:      handler.NewRateHandler(rates),
		Rosters:    handler.NewRosterHandler(db, rosters),
		Reports:    handler.NewReportHandler(exams, allocs, eyAllocs, deleted, rates),
		Backups:    backups,
		Admin:      handler.NewAdminHandler(db, backups, store, exams, allocs, eyAllocs, references, deleted, rates),
	}

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, operators, tokens), cfg.JWTSecret)
	router.RegisterAPI(e, api, cfg.JWTSecret, config.LoadCacheConfig(), rdb)

	// The audit consumer reconnects on its own; run it for the life of
	// the process.
	go func() {
		if err := queue.StartAuditConsumer(); err != nil {
			log.Printf("audit consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
