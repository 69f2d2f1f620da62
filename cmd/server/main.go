package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/bxrne/artidyn/internal/config"
	"github.com/bxrne/artidyn/internal/logger"
	"github.com/bxrne/artidyn/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the application config file")
	recordsDir := flag.String("records-dir", ".artidyn/records", "directory simulation records are persisted under")
	addr := flag.String("addr", ":8080", "HTTP listen address")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.GetLogger(cfg.Logging.Level)

	records, err := storage.NewRecordManager(*recordsDir)
	if err != nil {
		log.Fatal("failed to open records directory", "error", err)
	}

	handler := NewDataHandler(cfg, log, records)

	r := gin.New()
	r.Use(gin.Recovery(), logger.LoggingMiddleware(log))

	r.GET("/", handler.Index)
	r.POST("/models", handler.PostModel)
	r.POST("/simulations", handler.PostSimulation)
	r.GET("/simulations/:id/history", handler.GetSimulationHistory)
	r.GET("/simulations/:id/report", handler.GetSimulationReport)

	log.Info("starting server", "addr", *addr)
	if err := r.Run(*addr); err != nil {
		log.Fatal("server exited", "error", err)
	}
}
