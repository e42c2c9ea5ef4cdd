package main

import (
	"database/sql"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/lib/pq"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/coldpilot/coldpilot-backend/internal/config"
)

// Applies migrations/*.sql in lexical order, then any seed/*.sql files.
func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	pool, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logrus.Fatal(err)
	}
	defer pool.Close()

	for _, dir := range []string{"migrations", "seed"} {
		files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
		if err != nil {
			logrus.Fatal(err)
		}
		sort.Strings(files)

		for _, file := range files {
			content, err := os.ReadFile(file)
			if err != nil {
				logrus.Fatalf("failed to read %s: %v", file, err)
			}

			if _, err := pool.Exec(string(content)); err != nil {
				logrus.Fatalf("failed to execute %s: %v", file, err)
			}
			logrus.Infof("applied: %s", file)
		}
	}

	logrus.Info("database seeding completed successfully")
}
