// Package migrations embeds the schema the repositories read and write.
// The files follow golang-migrate naming, so the migrate CLI can apply them too.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"slices"

	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed *.sql
var FS embed.FS

// Executor runs a statement without returning rows.
type Executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Up applies every up migration in version order and returns how many ran.
// The statements are idempotent, so running Up against a migrated schema is safe.
func Up(ctx context.Context, db Executor) (int, error) {
	files, err := fs.Glob(FS, "*.up.sql")
	if err != nil {
		return 0, fmt.Errorf("listing migrations: %w", err)
	}

	slices.Sort(files)

	for index, file := range files {
		content, err := FS.ReadFile(file)
		if err != nil {
			return index, fmt.Errorf("reading migration %s: %w", file, err)
		}

		if _, err := db.Exec(ctx, string(content)); err != nil {
			return index, fmt.Errorf("applying migration %s: %w", file, err)
		}
	}

	return len(files), nil
}
