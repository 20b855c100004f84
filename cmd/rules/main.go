// Package main extracts cooking rules from texts and stores them.
//
// Usage:
//
//	rules [-config path] [-file texts.txt] [text ...]
//
// With -file every non-empty line is one text. Contradicting rules are
// printed and make the command exit with status 2.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/smartkitchen/kitchen/internal/application/knowledge"
	"github.com/smartkitchen/kitchen/internal/infrastructure/config"
	gormrepo "github.com/smartkitchen/kitchen/internal/infrastructure/persistence/gorm"
	"github.com/smartkitchen/kitchen/internal/infrastructure/persistence/postgres"
	"github.com/smartkitchen/kitchen/internal/infrastructure/persistence/sqlite"
	"github.com/smartkitchen/kitchen/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	configPath := flag.String("config", "", "path to a config file")
	file := flag.String("file", "", "file with one text per line")
	flag.Parse()

	os.Exit(run(*configPath, *file, flag.Args()))
}

func run(configPath, file string, args []string) int {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.App.LogLevel,
		Format: cfg.App.LogFormat,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	texts := args
	if file != "" {
		fromFile, err := readTexts(file)
		if err != nil {
			log.Error("Failed to read texts", zap.String("file", file), zap.Error(err))
			return 1
		}
		texts = append(texts, fromFile...)
	}
	if len(texts) == 0 {
		fmt.Fprintln(os.Stderr, "no texts given")
		return 1
	}

	ctx := context.Background()
	db, closeDB, err := openDatabase(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to open database", zap.Error(err))
		return 1
	}
	defer closeDB()

	svc := knowledge.NewService(gormrepo.NewKnowledgeRuleRepository(db), log)
	result, err := svc.Ingest(ctx, texts)
	if err != nil {
		log.Error("Failed to ingest texts", zap.Error(err))
		return 1
	}

	for _, rule := range result.Rules {
		fmt.Printf("%.2f  %s\n", rule.Confidence, rule.Rule)
	}
	for _, c := range result.Contradictions {
		fmt.Printf("CONTRADICTION [%s]\n  + %s\n  - %s\n", c.Topic, c.Positive, c.Negative)
	}

	if len(result.Contradictions) > 0 {
		return 2
	}
	return 0
}

func readTexts(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var texts []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			texts = append(texts, line)
		}
	}
	return texts, scanner.Err()
}

func openDatabase(ctx context.Context, cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	if cfg.Database.Driver == config.DriverPostgres {
		cm, err := postgres.NewConnectionManager(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return cm.GetDB(), func() { _ = cm.Close() }, nil
	}

	db, err := sqlite.SetupDatabase(cfg.Database.Path,
		gormrepo.NewLogger(log, cfg.Database.LogLevel, cfg.Database.SlowQueryThreshold))
	if err != nil {
		return nil, nil, err
	}
	return db, func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}, nil
}
