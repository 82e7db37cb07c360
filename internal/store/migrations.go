package store

import (
	"database/sql"
	"fmt"

	"goaltrack/internal/logging"
)

// Migration defines a column-add schema migration.
type Migration struct {
	Table  string
	Column string
	Def    string
}

// pendingMigrations lists migrations for databases created before the
// column existed. CREATE TABLE IF NOT EXISTS won't add columns to an
// existing table, so these run on every open.
var pendingMigrations = []Migration{
	// Dashboard stat counters (added with the stats endpoint)
	{"users", "streak", "INTEGER NOT NULL DEFAULT 0"},
	{"users", "active_days", "INTEGER NOT NULL DEFAULT 0"},
	{"users", "missing_days", "INTEGER NOT NULL DEFAULT 0"},
	// Completion notes (added with concept validation)
	{"tasks", "completion_notes", "TEXT"},
}

// RunMigrations applies schema migrations for existing databases.
func RunMigrations(db *sql.DB) error {
	timer := logging.StartTimer(logging.CategoryStore, "RunMigrations")
	defer timer.Stop()

	applied := 0
	for _, m := range pendingMigrations {
		if !tableExists(db, m.Table) {
			continue
		}
		if columnExists(db, m.Table, m.Column) {
			continue
		}

		query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", m.Table, m.Column, m.Def)
		if _, err := db.Exec(query); err != nil {
			// Column may already exist in a different form; warn and move on
			logging.Get(logging.CategoryStore).Warn("Migration failed: %s.%s: %v", m.Table, m.Column, err)
			continue
		}
		logging.Store("Migration applied: added %s.%s", m.Table, m.Column)
		applied++
	}

	if applied > 0 {
		logging.Store("Applied %d migrations", applied)
	}
	return nil
}

func tableExists(db *sql.DB, table string) bool {
	var name string
	err := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
	).Scan(&name)
	return err == nil
}

func columnExists(db *sql.DB, table, column string) bool {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name       string
			ctype      string
			notnull    int
			dfltValue  sql.NullString
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &primaryKey); err != nil {
			continue
		}
		if name == column {
			return true
		}
	}
	return false
}
