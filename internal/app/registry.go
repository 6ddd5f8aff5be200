package app

import (
	"database/sql"

	"github.com/AleBonatti/timetjek.test/internal/auth"
	"github.com/AleBonatti/timetjek.test/internal/messaging/kafka"
	"github.com/AleBonatti/timetjek.test/internal/timeentry"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	entryCfg timeentry.Config,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	timeEntryRepo := timeentry.NewRepository(gormDB, entryCfg.Location)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	authService := auth.NewService(authRepo)
	timeEntryService := timeentry.NewServiceWithOutbox(db, timeEntryRepo, outboxRepo, rdb, entryCfg)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	timeEntryHandler := timeentry.NewHandlerWithRedis(timeEntryService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		timeentry.RegisterRoutes(api, timeEntryHandler, rdb)
	}

	return nil
}
