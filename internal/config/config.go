package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DBDSN          string
	LogFile        string
	AdvisorURL     string
	AdvisorKey     string
	AdvisorTimeout time.Duration
}

func Load() Config {
	// Local .env is optional; real deployments set the environment.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "modublock.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./modublock.log"
	}
	advisorURL := os.Getenv("ADVISOR_URL")
	advisorKey := os.Getenv("ADVISOR_KEY")
	timeoutMs := 8000
	if v := os.Getenv("ADVISOR_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeoutMs = n
		}
	}

	cfg := Config{
		Port:           port,
		DBDSN:          dsn,
		LogFile:        logFile,
		AdvisorURL:     advisorURL,
		AdvisorKey:     advisorKey,
		AdvisorTimeout: time.Duration(timeoutMs) * time.Millisecond,
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s ADVISOR_URL=%s", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.AdvisorURL)
	return cfg
}
