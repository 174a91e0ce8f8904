/*
Package config loads runtime settings from the environment.

PURPOSE:
  One place for everything tunable at deploy time: the HTTP listen port,
  the SQLite database path, the calendar year and the ingest merge
  threshold. Values come from environment variables with an optional
  .env file for local development.

  The working-hours schedule itself (window boundaries, grace durations)
  is fixed policy and lives in attendance.DefaultWorkdayConfig, not here.
*/
package config

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type ServerConfig struct {
	Port         string
	DatabasePath string
	Year         int
	Flexible     bool

	// MergeThreshold collapses badge-reader double punches during ingest.
	MergeThreshold time.Duration
}

var instance *ServerConfig
var once sync.Once

func GetServerConfig() *ServerConfig {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			logrus.Debugf("no .env file loaded: %s", err.Error())
		}

		instance = &ServerConfig{
			Port:           getEnv("ATTENDANCE_PORT", "8080"),
			DatabasePath:   getEnv("ATTENDANCE_DB", "./data/attendance.db"),
			Year:           int(getEnvAsInt("ATTENDANCE_YEAR", 2025)),
			Flexible:       getEnvAsBool("ATTENDANCE_FLEXIBLE", true),
			MergeThreshold: time.Duration(getEnvAsInt("ATTENDANCE_MERGE_MINUTES", 3)) * time.Minute,
		}

		if instance.Year < 1 || instance.Year > 9999 {
			logrus.Fatalf("invalid ATTENDANCE_YEAR: %d", instance.Year)
		}
		if instance.MergeThreshold < 0 {
			logrus.Fatal("ATTENDANCE_MERGE_MINUTES must not be negative")
		}
	})

	return instance
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return int64(val)
	}

	return defaultVal
}
