package datastore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	SQLiteMemory = ":memory:"
)

var sqlitePragmas = []string{
	"PRAGMA journal_mode=WAL;",
	"PRAGMA busy_timeout=5000;",
}

// NewDB takes arguments for db type and conn string and returns an open, pinged handle
func NewDB(dbtype string, connstr string) (*sql.DB, error) {
	switch dbtype {
	case DriverPostgres:
	case DriverSQLite:
		if connstr != SQLiteMemory {
			if err := os.MkdirAll(filepath.Dir(connstr), 0o755); err != nil {
				return nil, fmt.Errorf("create db directory -> %w", err)
			}
		}
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbtype)
	}

	db, openError := sql.Open(dbtype, connstr)
	if openError != nil {
		return nil, fmt.Errorf("error opening connection -> %w", openError)
	}

	if dbtype == DriverSQLite {
		// every pooled connection to :memory: would see its own empty database
		if connstr == SQLiteMemory {
			db.SetMaxOpenConns(1)
		}
		for _, pragma := range sqlitePragmas {
			if _, err := db.Exec(pragma); err != nil {
				db.Close()
				return nil, fmt.Errorf("apply sqlite pragma %q -> %w", pragma, err)
			}
		}
	}

	if pingError := db.Ping(); pingError != nil {
		db.Close()
		return nil, fmt.Errorf("could not establish connection with database -> %w", pingError)
	}

	return db, nil
}

// BuildDBConnStr builds a PostgreSQL connection string
func BuildDBConnStr(host, password, user, dbname, sslmode string) string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s", user, password, host, dbname, sslmode)
}

var positionalParam = regexp.MustCompile(`\$\d+`)

// Rebind rewrites $n placeholders for drivers that expect '?'. Queries must
// use each parameter once, in order.
func Rebind(dbtype, query string) string {
	if dbtype != DriverSQLite {
		return query
	}
	return positionalParam.ReplaceAllString(query, "?")
}
