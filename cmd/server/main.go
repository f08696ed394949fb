package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightdeals-service/internal/domain/entity"
	derr "flightdeals-service/internal/domain/errors"
	"flightdeals-service/internal/infrastructure/config"
	"flightdeals-service/internal/infrastructure/oauth"
	"flightdeals-service/internal/infrastructure/persistence"
	"flightdeals-service/internal/infrastructure/scheduler"
	"flightdeals-service/internal/infrastructure/timetable"
	gmailSender "flightdeals-service/internal/interface/gmail"
	interfaceRepo "flightdeals-service/internal/interface/repository"
	"flightdeals-service/internal/usecase"
	"flightdeals-service/pkg/logger"
	"flightdeals-service/pkg/metrics"
	"flightdeals-service/pkg/utils"
	"flightdeals-service/templates"

	domainRepo "flightdeals-service/internal/domain/repository"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Flight Deals Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Set up repositories
	airportRepo := interfaceRepo.NewGormAirportRepository(gormDB)
	runRepo := interfaceRepo.NewGormRunRepository(gormDB)
	observationRepo := interfaceRepo.NewMongoObservationRepository(db)
	reportRepo := interfaceRepo.NewMongoReportRepository(db)
	reportCache := interfaceRepo.NewRedisReportCache(redisClient)

	// Load home airport master data and their timetables
	airports, err := airportRepo.GetActive(ctx)
	if err != nil {
		log.Fatal("Failed to load home airports", "error", err)
	}
	if len(airports) == 0 {
		log.Fatal("No active home airports configured")
	}

	timetableSource := timetable.NewFileSource(cfg.TimetablesDir, log)
	documents := make(map[string]entity.RawTimetableDocument, len(airports))
	for _, airport := range airports {
		var document entity.RawTimetableDocument
		if airport.TimetableFile != "" {
			document, err = timetableSource.ReadDocumentAt(airport.TimetableFile)
		} else {
			document, err = timetableSource.ReadDocument(airport.Code)
		}
		if err != nil {
			log.Fatal("Failed to load timetable", "airport", airport.Code, "error", err)
		}
		documents[airport.Code] = document
	}

	timetableRepo, err := interfaceRepo.NewMemoryTimetableRepository(documents, log)
	if err != nil {
		log.Fatal("Failed to parse timetables", "error", err)
	}

	// Pick the matching policy for the configured mode
	policy, err := buildPolicy(cfg)
	if err != nil {
		log.Fatal("Failed to build matching policy", "error", err)
	}

	tripProcessor := usecase.NewTripProcessor(
		timetableRepo, policy, cfg.PriceLimit, cfg.MinTripHours, cfg.MaxStartHour, log)
	reportBuilder := usecase.NewReportBuilder()

	renderer, err := templates.NewHTMLRenderer()
	if err != nil {
		log.Fatal("Failed to parse report templates", "error", err)
	}

	// Set up Gmail delivery when configured
	var reportMailer domainRepo.ReportMailer
	if cfg.EmailConfigured() {
		gmailOAuth := oauth.NewGmailOAuth(
			cfg.GmailClientID,
			cfg.GmailClientSecret,
			cfg.GmailRefreshToken,
			log,
		)
		tokenSource := gmailOAuth.GetTokenSource(ctx)

		reportMailer, err = gmailSender.NewReportMailer(ctx, tokenSource, cfg.ReportSender, cfg.ReportRecipient, log)
		if err != nil {
			log.Fatal("Failed to create report mailer", "error", err)
		}
	} else {
		log.Warn("Email delivery not configured; reports will only be stored")
	}

	appMetrics := metrics.NewMetrics("flightdeals")

	orchestrator := usecase.NewReportOrchestrator(
		tripProcessor,
		reportBuilder,
		renderer,
		observationRepo,
		reportRepo,
		reportCache,
		runRepo,
		reportMailer,
		appMetrics,
		log,
		cfg.ReportCacheTTL,
	)

	// Run once on startup so a fresh deploy serves a report immediately
	if cfg.RunOnStart {
		go func() {
			runCtx, runCancel := context.WithTimeout(ctx, 10*time.Minute)
			defer runCancel()
			if err := orchestrator.RunOnce(runCtx); err != nil {
				log.Error("Startup pipeline run failed", "error", err)
			}
		}()
	}

	// Daily scheduled run
	dailyScheduler := scheduler.New(cfg.ProcessScheduleAt, orchestrator, log)
	if err := dailyScheduler.Start(); err != nil {
		log.Fatal("Failed to start scheduler", "error", err)
	}

	// Set up HTTP server for metrics and report serving
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
	mux.HandleFunc("/report/latest", func(w http.ResponseWriter, r *http.Request) {
		report, err := reportCache.GetLatest(r.Context())
		if err != nil {
			report, err = reportRepo.Latest(r.Context())
		}
		if err != nil {
			if errors.Is(err, derr.ErrReportNotFound) {
				http.Error(w, "no report generated yet", http.StatusNotFound)
				return
			}
			log.Error("Failed to load latest report", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(report.HTML))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	dailyScheduler.Stop()
	cancel() // Cancel the context to stop all goroutines

	if err := redisClient.Close(); err != nil {
		log.Error("Redis close error", "error", err)
	}

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Flight Deals Service stopped")
}

// buildPolicy constructs the matching policy for the configured process mode.
func buildPolicy(cfg *config.Config) (usecase.MatchPolicy, error) {
	if cfg.ProcessMode == entity.ModeWeekend {
		return usecase.NewWeekendPolicy(cfg.StartWeekdays, cfg.EndWeekdays), nil
	}

	var windowStart, windowEnd *time.Time
	if cfg.WindowStartDate != "" {
		parsed, err := utils.ParseDate(cfg.WindowStartDate)
		if err != nil {
			return nil, err
		}
		windowStart = &parsed
	}
	if cfg.WindowEndDate != "" {
		parsed, err := utils.ParseDate(cfg.WindowEndDate)
		if err != nil {
			return nil, err
		}
		windowEnd = &parsed
	}
	return usecase.NewDurationPolicy(cfg.MinTripDays, cfg.MaxTripDays, windowStart, windowEnd), nil
}
