package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"dealfinder/internal/config"
	"dealfinder/internal/extractor"
	"dealfinder/internal/handler"
	"dealfinder/internal/repository"
	"dealfinder/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.Printf("Deal Finder Parse Service")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gin.SetMode(cfg.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database is optional: without it the service still parses, it just
	// skips parse and feedback logging.
	var repo *repository.PostgresRepository
	if cfg.PostgreSQL.Enabled {
		repo, err = repository.NewPostgresRepository(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			log.Printf("⚠️  Database unavailable, continuing without logging: %v", err)
			repo = nil
		} else {
			defer repo.Close()
			if err := repo.EnsureSchema(ctx); err != nil {
				log.Fatalf("Failed to ensure database schema: %v", err)
			}
			log.Println("✅ Connected to PostgreSQL database")
		}
	} else {
		log.Println("⚠️  PostgreSQL disabled - parse and feedback logging is off")
	}

	// Remote extractor is optional too: with no base URL every parse runs
	// the deterministic local parser.
	var remote extractor.Client
	if cfg.Extractor.BaseURL != "" {
		remote = extractor.NewRemote(cfg.Extractor.BaseURL, cfg.Extractor.Timeout)
		log.Printf("✅ Remote parser configured: %s", cfg.Extractor.BaseURL)
		if cfg.Extractor.FallbackLocal {
			log.Println("   - Local fallback enabled on remote failure")
		}
	} else {
		log.Println("⚠️  No PARSER_BASE_URL set - using the local parser only")
	}

	var parseLogger service.ParseLogger
	if repo != nil {
		parseLogger = repo
	}
	pipeline := service.NewPipeline(remote, extractor.NewLocal(), parseLogger, cfg.Extractor.FallbackLocal)

	log.Println("✅ Services initialized")

	parseHandler := handler.NewParseHandler(pipeline)
	prospectHandler := handler.NewProspectHandler(cfg.Prospects.DefaultCount, cfg.Prospects.MaxCount)
	var feedbackLogger handler.FeedbackLogger
	if repo != nil {
		feedbackLogger = repo
	}
	feedbackHandler := handler.NewFeedbackHandler(feedbackLogger)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.AllowedOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "deal-finder-parse",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/parse", parseHandler.Parse)
		apiV1.POST("/parse/stream", parseHandler.ParseStream)
		apiV1.POST("/prospects", prospectHandler.Generate)
		apiV1.POST("/feedback", feedbackHandler.Submit)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	log.Printf("🚀 Starting server on %s", addr)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Println("🛑 Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("✅ Server stopped")
}
