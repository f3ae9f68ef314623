// Command migrate creates or updates the database schema and can seed an
// initial company profile.
//
//	migrate up                      apply schema changes
//	migrate seed <code> <name>      create a company if it does not exist
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	companyapp "github.com/amitkkna/quote-sub001/internal/application/company"
	"github.com/amitkkna/quote-sub001/internal/domain/shared"
	"github.com/amitkkna/quote-sub001/internal/infrastructure/config"
	"github.com/amitkkna/quote-sub001/internal/infrastructure/logger"
	"github.com/amitkkna/quote-sub001/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabaseWithZap(&cfg.Database, log, logLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	switch command {
	case "up":
		if err := db.Migrate(); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		log.Info("Schema is up to date")

	case "seed":
		if len(args) < 3 {
			log.Fatal("Company code and name required. Usage: migrate seed <code> <name>")
		}
		if err := db.Migrate(); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		seedCompany(db, log, args[1], args[2])

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

func seedCompany(db *persistence.Database, log *zap.Logger, code, name string) {
	companies := companyapp.NewService(persistence.NewGormCompanyRepository(db.DB), log)

	co, err := companies.Create(context.Background(), companyapp.CreateCompanyRequest{
		Code: code,
		Name: name,
	})
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == "DUPLICATE_COMPANY" {
			log.Info("Company already exists", zap.String("code", code))
			return
		}
		log.Fatal("Failed to seed company", zap.Error(err))
	}
	log.Info("Company created", zap.String("code", co.Code), zap.String("name", co.Name))
}

func printUsage() {
	fmt.Println(`Schema Migration Tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                  Create or update the database schema
  seed <code> <name>  Ensure a company profile exists (runs 'up' first)

Flags:
  -log-level string   Log level: debug, info, warn, error (default: info)

Configuration is read from config.toml and QS_* environment variables.`)
}
