package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	_ "github.com/joho/godotenv/autoload"
)

const version = "0.1.0"

func getEnvOrDefault(key, default_ string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}

	return default_
}

func getBoolEnv(key string) bool {
	if val := strings.ToLower(os.Getenv(key)); val == "yes" || val == "on" || val == "true" {
		return true
	}

	return false
}

var (
	logLevel    = strings.ToLower(getEnvOrDefault("LOG_LEVEL", "debug"))
	logFormat   = getEnvOrDefault("LOG_FORMAT", "text")
	bindAddr    = getEnvOrDefault("BIND_ADDR", ":8080")
	datasetPath = getEnvOrDefault("DATASET_PATH", "gr_booklist_df.csv")
	debugMode   = getBoolEnv("DEBUG_MODE")
)

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
