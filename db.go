// db.go
//
// Database bootstrap for the Yams server.
// Opens the SQLite file (WAL, busy timeout, foreign keys) and applies the
// embedded migrations before any store touches it.

package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/yams/assets"
	"github.com/robalobadob/yams/internal/sqlitedb"
)

// openDatabase opens path and brings its schema up to date.
func openDatabase(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sqlitedb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	migrations, err := assets.Migrations()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := sqlitedb.Migrate(ctx, db, migrations); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	log.Debug().Str("path", path).Msg("database ready")
	return db, nil
}
