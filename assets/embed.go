// Package assets embeds files shipped inside the binary.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed migrations/*.sql
var FS embed.FS

// MigrationsRoot is the directory inside FS holding the SQL migrations.
const MigrationsRoot = "migrations"

// Migrations returns the migration files rooted at their directory.
func Migrations() (fs.FS, error) {
	return fs.Sub(FS, MigrationsRoot)
}
