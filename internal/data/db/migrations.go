package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strconv"

	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrationFile matches "0001_products.up.sql".
var migrationFile = regexp.MustCompile(`^(\d{4})_([a-z0-9_]+)\.(up|down)\.sql$`)

// Migration is one schema version with the SQL to enter and leave it.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// parseFilename splits a migration file name into version, name and
// direction.
func parseFilename(filename string) (version int, name, direction string, err error) {
	m := migrationFile.FindStringSubmatch(filename)
	if m == nil {
		return 0, "", "", fmt.Errorf("%q does not match NNNN_name.(up|down).sql", filename)
	}

	version, _ = strconv.Atoi(m[1])
	if version == 0 {
		return 0, "", "", fmt.Errorf("%q: versions start at 0001", filename)
	}
	return version, m[2], m[3], nil
}

// loadMigrations reads every migration in dir of fsys. Each version needs
// exactly one up and one down file; the result is ordered by version.
func loadMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	byVersion := make(map[int]*Migration)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		version, name, direction, err := parseFilename(entry.Name())
		if err != nil {
			return nil, err
		}

		body, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}

		m, ok := byVersion[version]
		if !ok {
			m = &Migration{Version: version, Name: name}
			byVersion[version] = m
		}
		if m.Name != name {
			return nil, fmt.Errorf("version %04d is named both %q and %q", version, m.Name, name)
		}

		slot := &m.Up
		if direction == "down" {
			slot = &m.Down
		}
		if *slot != "" {
			return nil, fmt.Errorf("version %04d has more than one %s file", version, direction)
		}
		*slot = string(body)
	}

	out := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		if m.Up == "" || m.Down == "" {
			return nil, fmt.Errorf("version %04d (%s) needs both an up and a down file", m.Version, m.Name)
		}
		out = append(out, *m)
	}
	slices.SortFunc(out, func(a, b Migration) int { return a.Version - b.Version })

	return out, nil
}

func embeddedMigrations() ([]Migration, error) {
	return loadMigrations(migrationsFS, "migrations")
}

// SchemaVersion returns the version of the last applied migration, kept in
// SQLite's user_version header field.
func SchemaVersion(ctx context.Context, conn *sql.DB) (int, error) {
	var v int
	if err := conn.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

// migrateUp applies every embedded migration newer than the schema version.
func migrateUp(ctx context.Context, conn *sql.DB) error {
	migrations, err := embeddedMigrations()
	if err != nil {
		return err
	}

	current, err := SchemaVersion(ctx, conn)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		log.Info().Int("version", m.Version).Str("name", m.Name).Msg("applying migration")
		if err := step(ctx, conn, m.Up, m.Version); err != nil {
			return fmt.Errorf("migration %04d (%s): %w", m.Version, m.Name, err)
		}
	}

	return nil
}

// MigrateDown reverts the n most recent applied migrations.
func MigrateDown(ctx context.Context, conn *sql.DB, n int) error {
	if n <= 0 {
		return fmt.Errorf("n must be positive, got %d", n)
	}

	migrations, err := embeddedMigrations()
	if err != nil {
		return err
	}

	current, err := SchemaVersion(ctx, conn)
	if err != nil {
		return err
	}

	applied := slices.DeleteFunc(slices.Clone(migrations), func(m Migration) bool { return m.Version > current })
	if n > len(applied) {
		return fmt.Errorf("requested %d down migrations but only %d are applied", n, len(applied))
	}

	for i := len(applied) - 1; i >= len(applied)-n; i-- {
		m := applied[i]
		prev := 0
		if i > 0 {
			prev = applied[i-1].Version
		}

		log.Info().Int("version", m.Version).Str("name", m.Name).Msg("reverting migration")
		if err := step(ctx, conn, m.Down, prev); err != nil {
			return fmt.Errorf("revert migration %04d (%s): %w", m.Version, m.Name, err)
		}
	}

	return nil
}

// step runs one migration body and moves user_version to version in the same
// transaction.
func step(ctx context.Context, conn *sql.DB, body string, version int) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, body); err != nil {
		return err
	}

	// PRAGMA arguments cannot be bound parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
		return fmt.Errorf("set schema version: %w", err)
	}

	return tx.Commit()
}
