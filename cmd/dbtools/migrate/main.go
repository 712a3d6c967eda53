// cmd/dbtools/migrate/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultMigrationsPath = "internal/db/migrations"

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var (
		dbPath         = flag.String("db", os.Getenv("HANDBALL_DATABASE_FILE"), "Path to SQLite database")
		migrationsPath = flag.String("migrations", defaultMigrationsPath, "Path to migrations directory")
		command        = flag.String("command", "", "Command to run (up, down, version, steps, force)")
		arg            = flag.String("n", "", "Step count for steps, version for force")
	)
	flag.Parse()

	if *dbPath == "" || *command == "" {
		flag.Usage()
		os.Exit(1)
	}

	absDB, err := filepath.Abs(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid database path")
	}
	absMigrations, err := filepath.Abs(*migrationsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid migrations path")
	}
	if _, err := os.Stat(absMigrations); err != nil {
		log.Fatal().Err(err).Str("path", absMigrations).Msg("Migrations directory not found")
	}
	if err := os.MkdirAll(filepath.Dir(absDB), 0755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create database directory")
	}

	m, err := migrate.New(
		"file://"+filepath.ToSlash(absMigrations),
		"sqlite3://"+filepath.ToSlash(absDB)+"?_fk=1",
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Migration init failed")
	}
	defer m.Close()

	if err := run(m, *command, *arg); err != nil {
		log.Fatal().Err(err).Str("command", *command).Msg("Migration failed")
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		log.Info().Msg("No migrations applied")
	case err != nil:
		log.Fatal().Err(err).Msg("Get version failed")
	default:
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Migration state")
	}
}

func run(m *migrate.Migrate, command, arg string) error {
	switch command {
	case "up":
		return ignoreNoChange(m.Up())
	case "down":
		return ignoreNoChange(m.Down())
	case "version":
		return nil
	case "steps":
		n, err := strconv.Atoi(arg)
		if err != nil || n == 0 {
			return fmt.Errorf("steps needs a non-zero -n, got %q", arg)
		}
		return ignoreNoChange(m.Steps(n))
	case "force":
		v, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("force needs a version in -n, got %q", arg)
		}
		return m.Force(v)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
