// Command migrate applies the SQL migrations in ./migrations to the
// configured postgres database.
//
//	migrate up           apply every pending migration
//	migrate down [N]     roll back N migrations (default 1)
//	migrate version      print the current version
//	migrate force V      mark version V clean after a failed migration
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"alphafusion/internal/config"
	"alphafusion/internal/database"
	"alphafusion/internal/logger"
)

const usage = "usage: migrate <up|down [N]|version|force V>"

type command func(m *migrate.Migrate, args []string, log *zap.SugaredLogger) error

var commands = map[string]command{
	"up":      up,
	"down":    down,
	"version": version,
	"force":   force,
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(os.Args[1:]); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q; %s", args[0], usage)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	dbConfig, err := database.NewConfig(cfg)
	if err != nil {
		return err
	}
	if dbConfig.Driver != database.DriverPostgres {
		return fmt.Errorf("SQL migrations target postgres; DB_DRIVER=%s is migrated automatically on startup", dbConfig.Driver)
	}

	m, err := migrate.New("file://migrations", dbConfig.MigrateURL())
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}
	log := logger.Named("migrate")
	defer func() {
		srcErr, dbErr := m.Close()
		if err := errors.Join(srcErr, dbErr); err != nil {
			log.Warnf("close error: %v", err)
		}
	}()

	return cmd(m, args[1:], log)
}

func up(m *migrate.Migrate, _ []string, log *zap.SugaredLogger) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	log.Info("Migrations applied")
	return nil
}

func down(m *migrate.Migrate, args []string, log *zap.SugaredLogger) error {
	steps := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid step count %q", args[0])
		}
		steps = n
	}
	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration down failed: %w", err)
	}
	log.Infof("Rolled back %d migration(s)", steps)
	return nil
}

func version(m *migrate.Migrate, _ []string, log *zap.SugaredLogger) error {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info("No migrations applied")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read version: %w", err)
	}
	log.Infow("Schema version", "version", v, "dirty", dirty)
	return nil
}

func force(m *migrate.Migrate, args []string, log *zap.SugaredLogger) error {
	if len(args) == 0 {
		return errors.New(usage)
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid version %q", args[0])
	}
	if err := m.Force(v); err != nil {
		return fmt.Errorf("force failed: %w", err)
	}
	log.Infof("Forced version %d", v)
	return nil
}
