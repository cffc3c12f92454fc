package store

import (
	"database/sql"

	"github.com/avbelov/gamedeck/internal/logger"
	"github.com/avbelov/gamedeck/migrations"
)

type DB struct {
	*sql.DB
	driver string
	logger *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}
