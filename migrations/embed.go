// Package migrations embeds the recording-store schema into the binary,
// so loxwatch can migrate its database without shipping SQL files
// alongside the executable.
package migrations

import (
	"embed"

	"github.com/nerrad567/loxwatch/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	// Register embedded migrations with the database package.
	database.MigrationsFS = migrationsFS
}
