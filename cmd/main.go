package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
	"github.com/joho/godotenv"

	"luckywheel/internal/config"
	"luckywheel/internal/handlers"
	"luckywheel/internal/services"
)

const shutdownTimeout = 5 * time.Second

func main() {
	configFile := flag.String("config", "", "path to config file (default: search for config.yaml)")
	flag.Parse()

	// 1. Load .env if present, then config (file, env, defaults)
	_ = godotenv.Load()

	cfgManager := config.NewManager(*configFile)
	cfg, err := cfgManager.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Initialize logging
	var logFile io.Writer = io.Discard
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o660)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		logFile = f
	}
	defer logger.Init("luckywheel", cfg.Log.Verbose, false, logFile).Close()

	// 3. Initialize the Lottery Service
	lotteryService, err := services.NewLotteryService(cfg.Wheel.Settings())
	if err != nil {
		logger.Fatalf("Failed to create lottery service: %v", err)
	}
	defer lotteryService.Close()

	lotteryService.OnWinner(func(participantName, participantID, prizeName, prizeID, gameType string) {
		logger.Infof("Winner: %s (%s) won %s (%s) in %s", participantName, participantID, prizeName, prizeID, gameType)
	})
	if err := lotteryService.Seed(cfg.Seed.Participants, cfg.Seed.Prizes); err != nil {
		logger.Fatalf("Failed to seed lottery: %v", err)
	}

	// 4. Apply wheel settings when the config file changes
	if cfgManager.File() != "" {
		cfgManager.Watch(func(c *config.Config) {
			if err := lotteryService.UpdateSettings(c.Wheel.Settings()); err != nil {
				logger.Warningf("Failed to apply wheel settings: %v", err)
			}
		})
	}

	// 5. Set up the Gin router
	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	handlers.NewHTTPHandler(lotteryService, cfg.Wheel.DefaultSize).RegisterRoutes(r)

	// 6. Run the server until interrupted
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("Server starting on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("Failed to run server: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Infof("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown: %v", err)
	}
}
