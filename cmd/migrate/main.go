// Package main manages the postgres schema.
//
// Usage:
//
//	migrate [-config path] [-down | -force version | -version]
//
// Without flags every pending migration is applied. SQLite databases are
// migrated when they are opened and are rejected here.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/smartkitchen/kitchen/internal/infrastructure/config"
	"github.com/smartkitchen/kitchen/internal/infrastructure/persistence/migrations"
	"github.com/smartkitchen/kitchen/pkg/logger"
	"go.uber.org/zap"
)

type action int

const (
	actionUp action = iota
	actionDown
	actionForce
	actionVersion
)

type request struct {
	action  action
	version int
}

func main() {
	configPath := flag.String("config", "", "path to a config file")
	down := flag.Bool("down", false, "roll back the latest migration")
	force := flag.Int("force", -1, "mark the schema as being at this version and clear the dirty flag")
	version := flag.Bool("version", false, "print the current version")
	flag.Parse()

	req, err := parseRequest(*down, *force, *version)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(run(*configPath, req, os.Stdout))
}

func parseRequest(down bool, force int, version bool) (request, error) {
	selected := 0
	req := request{action: actionUp}
	if down {
		selected++
		req.action = actionDown
	}
	if force >= 0 {
		selected++
		req = request{action: actionForce, version: force}
	}
	if version {
		selected++
		req.action = actionVersion
	}
	if selected > 1 {
		return request{}, errors.New("-down, -force and -version are mutually exclusive")
	}
	return req, nil
}

func run(configPath string, req request, out io.Writer) int {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}
	if cfg.Database.Driver != config.DriverPostgres {
		fmt.Fprintf(os.Stderr, "database.driver is %q; only postgres uses versioned migrations\n", cfg.Database.Driver)
		return 1
	}

	log, err := logger.New(logger.Config{Level: cfg.App.LogLevel, Format: cfg.App.LogFormat})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	m, err := migrations.NewFromDSN(cfg.GetDSN(), log)
	if err != nil {
		log.Error("Failed to create migrator", zap.Error(err))
		return 1
	}
	defer m.Close()

	if err := apply(m, req, out); err != nil {
		log.Error("Migration failed", zap.Error(err))
		return 1
	}
	return 0
}

type migrator interface {
	Up() error
	Down() error
	Force(version int) error
	Version() (uint, bool, error)
}

var _ migrator = (*migrations.Migrator)(nil)

func apply(m migrator, req request, out io.Writer) error {
	var err error
	switch req.action {
	case actionDown:
		err = m.Down()
	case actionForce:
		err = m.Force(req.version)
	case actionUp:
		err = m.Up()
	}
	if err != nil {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "version %d dirty=%t\n", version, dirty)
	return nil
}
