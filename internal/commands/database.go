package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/reel/internal/core/config"
	"github.com/colonyops/reel/internal/data/db"
	"github.com/colonyops/reel/internal/data/stores"
)

// openDatabase opens the backend database described by cfg. A corrupted
// sqlite file is moved aside and a fresh database is created in its place.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	opts := db.OpenOptions{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		BusyTimeout:  cfg.Database.BusyTimeout,
	}

	driver, dsn := cfg.Database.Driver, cfg.DatabaseDSN()
	if driver == config.DriverSQLite && cfg.Database.DSN == "" {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	database, err := db.Open(driver, dsn, opts)
	if err == nil {
		return database, nil
	}

	if driver != config.DriverSQLite || !stores.IsCorruptionError(err) {
		return nil, fmt.Errorf("open database: %w", err)
	}

	backup, recoverErr := stores.RecoverFromCorruption(dsn)
	if recoverErr != nil {
		return nil, fmt.Errorf("open database: %w (recovery failed: %v)", err, recoverErr)
	}
	log.Warn().Err(err).Str("backup", backup).Msg("database was corrupted; moved aside and recreated")

	database, err = db.Open(driver, dsn, opts)
	if err != nil {
		return nil, fmt.Errorf("open database after recovery: %w", err)
	}
	return database, nil
}
