// Package wire provides dependency injection for the barline application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"

	"github.com/example/barline/internal/adapters/sqlite"
	"github.com/example/barline/internal/app"
	"github.com/example/barline/internal/config"
	"github.com/example/barline/internal/db"
	"github.com/example/barline/internal/ports/primary"
)

var (
	cfg            *config.Config
	songService    primary.SongService
	layoutService  primary.LayoutService
	measureService primary.MeasureService
	sessionService primary.SessionService
	bulkService    primary.BulkService
	once           sync.Once
)

// Config returns the singleton loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// SongService returns the singleton SongService instance.
func SongService() primary.SongService {
	once.Do(initServices)
	return songService
}

// LayoutService returns the singleton LayoutService instance.
func LayoutService() primary.LayoutService {
	once.Do(initServices)
	return layoutService
}

// MeasureService returns the singleton MeasureService instance.
func MeasureService() primary.MeasureService {
	once.Do(initServices)
	return measureService
}

// SessionService returns the singleton SessionService instance.
func SessionService() primary.SessionService {
	once.Do(initServices)
	return sessionService
}

// BulkService returns the singleton BulkService instance.
func BulkService() primary.BulkService {
	once.Do(initServices)
	return bulkService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	loaded, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	cfg = loaded

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Create repository adapters (secondary ports)
	songRepo := sqlite.NewSongRepository(database)
	layoutRepo := sqlite.NewLayoutRepository(database)
	measureRepo := sqlite.NewMeasureRepository(database)
	sessionRepo := sqlite.NewSessionRepository(database)

	// Create services (primary ports implementation)
	songService = app.NewSongService(songRepo)
	layoutService = app.NewLayoutService(songRepo, layoutRepo)
	measureService = app.NewMeasureService(songRepo, measureRepo, cfg.DefaultPracticer)
	sessionService = app.NewSessionService(songRepo, sessionRepo)
	bulkService = app.NewBulkService(measureService)
}
