package app

import (
	"os"
	"strconv"
	"time"

	"github.com/AleBonatti/timetjek.test/internal/auth"
	"github.com/AleBonatti/timetjek.test/internal/middleware"
	"github.com/AleBonatti/timetjek.test/internal/shared/connection"
	"github.com/AleBonatti/timetjek.test/internal/timeentry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	if err := migrate(gormDB); err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	router.Use(middleware.RequestID())

	return registerModules(router, sqlDB, gormDB, redisClient, entryConfigFromEnv())
}

// migrate brings the schema up to date. The partial unique index and the
// outbox table cannot be expressed with gorm struct tags, so they are
// created with raw statements. Full schema lives in migrations/0001_init.sql.
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&auth.User{}, &timeentry.TimeEntry{}); err != nil {
		return err
	}

	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_time_entries_one_open
			ON time_entries (user_id) WHERE clock_out IS NULL`,
		`CREATE TABLE IF NOT EXISTS outbox_events (
			id UUID PRIMARY KEY,
			request_id TEXT NOT NULL DEFAULT '',
			aggregate_type TEXT NOT NULL,
			aggregate_id UUID NOT NULL,
			event_type TEXT NOT NULL,
			topic TEXT NOT NULL,
			payload JSONB NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			retry_count INT NOT NULL DEFAULT 0,
			error_message TEXT,
			next_retry_at TIMESTAMPTZ,
			processed_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created
			ON outbox_events (status, created_at)`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// entryConfigFromEnv assembles the time-entry policy from the environment:
// the zone calendar days are computed in and the permitted clock window.
func entryConfigFromEnv() timeentry.Config {
	cfg := timeentry.Config{Window: timeentry.DefaultClockWindow()}

	if tz := os.Getenv("TIMEZONE"); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			cfg.Location = loc
		} else {
			zap.L().Warn("invalid TIMEZONE, falling back to UTC", zap.String("timezone", tz))
		}
	}
	if v, err := strconv.Atoi(os.Getenv("WORK_EARLIEST_HOUR")); err == nil {
		cfg.Window.EarliestHour = v
	}
	if v, err := strconv.Atoi(os.Getenv("WORK_LATEST_HOUR")); err == nil {
		cfg.Window.LatestHour = v
	}

	return cfg
}
