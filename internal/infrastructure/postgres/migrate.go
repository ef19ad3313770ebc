package postgres

import (
	"context"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrationLockKey clave del pg_advisory_lock que serializa instancias migrando a la vez.
const migrationLockKey int64 = 746295114

var migrationFileRe = regexp.MustCompile(`^V(\d+)__([A-Za-z0-9_.-]+)\.sql$`)

// Migration archivo SQL versionado.
type Migration struct {
	Version  int64
	Name     string
	Filename string
	SQL      string
	Checksum string
}

// MigrationStatus estado de una migración frente a schema_migrations.
type MigrationStatus struct {
	Migration
	Applied   bool
	AppliedAt *time.Time
}

// Migrator aplica las migraciones embebidas en orden de versión, una transacción por archivo.
type Migrator struct {
	pool  *pgxpool.Pool
	files fs.FS
}

// NewMigrator construye el migrador con las migraciones embebidas.
func NewMigrator(pool *pgxpool.Pool) *Migrator {
	sub, _ := fs.Sub(migrationsFS, "migrations")
	return &Migrator{pool: pool, files: sub}
}

// Up aplica las migraciones pendientes. Falla si una ya aplicada cambió de contenido.
// Devuelve las versiones aplicadas en esta ejecución.
func (m *Migrator) Up(ctx context.Context) ([]int64, error) {
	migs, err := LoadMigrations(m.files)
	if err != nil {
		return nil, err
	}
	if len(migs) == 0 {
		return nil, nil
	}

	// pg_advisory_lock es de sesión: se toma sobre una conexión dedicada.
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire conn: %w", err)
	}
	defer conn.Release()

	if err := ensureSchemaMigrations(ctx, conn); err != nil {
		return nil, err
	}
	if _, err := conn.Exec(ctx, `SELECT pg_advisory_lock($1)`, migrationLockKey); err != nil {
		return nil, fmt.Errorf("advisory lock: %w", err)
	}
	defer func() {
		_, _ = conn.Exec(context.WithoutCancel(ctx), `SELECT pg_advisory_unlock($1)`, migrationLockKey)
	}()

	applied, err := appliedMigrations(ctx, conn)
	if err != nil {
		return nil, err
	}

	var done []int64
	for _, mig := range migs {
		if a, ok := applied[mig.Version]; ok {
			if a.checksum != mig.Checksum {
				return done, fmt.Errorf("migration checksum mismatch: version=%d name=%s", mig.Version, mig.Name)
			}
			continue
		}
		if err := applyMigration(ctx, conn, mig); err != nil {
			return done, err
		}
		done = append(done, mig.Version)
	}
	return done, nil
}

// Status lista las migraciones embebidas y si ya fueron aplicadas.
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	migs, err := LoadMigrations(m.files)
	if err != nil {
		return nil, err
	}
	if err := ensureSchemaMigrations(ctx, m.pool); err != nil {
		return nil, err
	}
	applied, err := appliedMigrations(ctx, m.pool)
	if err != nil {
		return nil, err
	}
	out := make([]MigrationStatus, 0, len(migs))
	for _, mig := range migs {
		st := MigrationStatus{Migration: mig}
		if a, ok := applied[mig.Version]; ok {
			at := a.appliedAt
			st.Applied, st.AppliedAt = true, &at
		}
		out = append(out, st)
	}
	return out, nil
}

// LoadMigrations lee los archivos V<n>__<nombre>.sql de files, ordenados por versión.
func LoadMigrations(files fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, err
	}
	migs := make([]Migration, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		match := migrationFileRe.FindStringSubmatch(name)
		if match == nil {
			continue
		}
		v, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid migration version: %s", name)
		}
		b, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, err
		}
		sqlText := strings.TrimSpace(string(b))
		if sqlText == "" {
			return nil, fmt.Errorf("empty migration file: %s", name)
		}
		h := sha256.Sum256([]byte(sqlText))
		migs = append(migs, Migration{
			Version:  v,
			Name:     match[2],
			Filename: name,
			SQL:      sqlText,
			Checksum: hex.EncodeToString(h[:]),
		})
	}
	sort.Slice(migs, func(i, j int) bool { return migs[i].Version < migs[j].Version })
	for i := 1; i < len(migs); i++ {
		if migs[i].Version == migs[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version: %d", migs[i].Version)
		}
	}
	return migs, nil
}

type appliedMigration struct {
	checksum  string
	appliedAt time.Time
}

func ensureSchemaMigrations(ctx context.Context, q Querier) error {
	_, err := q.Exec(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	return nil
}

func appliedMigrations(ctx context.Context, q Querier) (map[int64]appliedMigration, error) {
	rows, err := q.Query(ctx, `SELECT version, checksum, applied_at FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("list schema_migrations: %w", err)
	}
	defer rows.Close()
	out := map[int64]appliedMigration{}
	for rows.Next() {
		var (
			v int64
			a appliedMigration
		)
		if err := rows.Scan(&v, &a.checksum, &a.appliedAt); err != nil {
			return nil, err
		}
		out[v] = a
	}
	return out, rows.Err()
}

func applyMigration(ctx context.Context, conn *pgxpool.Conn, m Migration) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, m.SQL); err != nil {
		return fmt.Errorf("apply migration failed: version=%d file=%s: %w", m.Version, m.Filename, err)
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO schema_migrations (version, name, checksum, applied_at) VALUES ($1, $2, $3, $4)`,
		m.Version, m.Name, m.Checksum, time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}
