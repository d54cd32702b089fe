// PolicyStore HTTP Server
// Ingests text-bearing documents, extracts structure, answers keyword search
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nainya/policystore/internal/config"
	"github.com/nainya/policystore/internal/logger"
	"github.com/nainya/policystore/internal/metrics"
	"github.com/nainya/policystore/internal/server"
	"github.com/nainya/policystore/pkg/policy"
)

func main() {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()
	cfg := config.Load()

	apiPort := flag.Int("port", cfg.APIPort, "API server port")
	metricsPort := flag.Int("metrics-port", cfg.MetricsPort, "Observability server port")
	flag.Parse()

	logger.InitGlobalLogger(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})
	log := logger.GetGlobalLogger()
	log.LogServerStart(*apiPort, *metricsPort)

	m := metrics.NewMetrics()
	store := policy.NewMemoryStore()

	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", *apiPort),
		Handler:      server.NewServer(store, log, m, cfg).Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	obsServer := server.NewObservabilityServer(*metricsPort, log)
	go func() {
		if err := obsServer.Start(); err != nil {
			log.Error("Observability server stopped").Err(err).Send()
		}
	}()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.LogServerShutdown()

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := apiServer.Shutdown(ctx); err != nil {
			log.Error("API server shutdown failed").Err(err).Send()
		}
		if err := obsServer.Shutdown(ctx); err != nil {
			log.Error("Observability server shutdown failed").Err(err).Send()
		}
	}()

	log.LogServerReady(*apiPort)
	if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("API server failed").Err(err).Send()
	}
}
