// Package main is the entry point for the Business Unit Reporting API server.
// It initializes all dependencies and starts the HTTP server.
package main

import (
	"context"
	"log"
	"os"

	"bureporting/src/app/server"
	"bureporting/src/infra/config"
	"bureporting/src/infra/db"
	"bureporting/src/infra/logger"
	"bureporting/src/infra/mail"
	"bureporting/src/infra/repo"
)

func main() {
	if err := run(); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from .env and environment variables
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log)
	log.Info("starting application",
		"port", cfg.Server.Port,
		"log_level", cfg.Log.Level,
		"api_prefix", cfg.API.Prefix,
	)

	// Fill the connection pool; the pool is closed after the server stops
	pg, err := db.New(context.Background(), cfg.Database, log)
	if err != nil {
		return err
	}
	defer pg.Close()

	store := repo.NewProcedureRepository(pg, log)
	mailer := mail.NewSMTPMailer(cfg.Mail, log)

	srv := server.New(cfg, log, store, mailer, func() any { return pg.Stats() })

	// Run blocks until shutdown signal is received
	return srv.Run()
}
