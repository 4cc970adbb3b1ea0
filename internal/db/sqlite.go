package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const defaultSlowQueryThreshold = time.Second

// SQLiteOptions tunes OpenSQLiteWithOptions. The zero value logs warnings
// and keeps SQLite's default rollback journal.
type SQLiteOptions struct {
	LogLevel      string
	SlowThreshold time.Duration
	WAL           bool
}

func OpenSQLite(dbPath string) (*gorm.DB, error) {
	return OpenSQLiteWithOptions(dbPath, SQLiteOptions{})
}

// OpenSQLiteWithOptions opens dbPath, creating its directory when needed, and
// applies the embedded migrations.
func OpenSQLiteWithOptions(dbPath string, options SQLiteOptions) (*gorm.DB, error) {
	level, err := ParseLogLevel(options.LogLevel)
	if err != nil {
		return nil, err
	}
	slowThreshold := options.SlowThreshold
	if slowThreshold <= 0 {
		slowThreshold = defaultSlowQueryThreshold
	}

	inMemory := dbPath == MemoryPath
	if !inMemory {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	database, err := gorm.Open(sqlite.Open(sqliteDSN(dbPath, options.WAL && !inMemory)), &gorm.Config{
		Logger: gormlogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             slowThreshold,
				LogLevel:                  level,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if inMemory {
		// Every pooled connection would otherwise see its own empty database.
		sqlDB, err := database.DB()
		if err != nil {
			return nil, fmt.Errorf("open sql db: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := applyEmbeddedMigrations(database); err != nil {
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}

	return database, nil
}

func sqliteDSN(dbPath string, wal bool) string {
	pragmas := []string{"_pragma=foreign_keys(1)", "_pragma=busy_timeout(5000)"}
	if wal {
		pragmas = append(pragmas, "_pragma=journal_mode(WAL)")
	}
	return dbPath + "?" + strings.Join(pragmas, "&")
}

// ParseLogLevel maps silent, error, warn or info onto the GORM log level. An
// empty name means warn.
func ParseLogLevel(name string) (gormlogger.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "warn":
		return gormlogger.Warn, nil
	case "silent":
		return gormlogger.Silent, nil
	case "error":
		return gormlogger.Error, nil
	case "info":
		return gormlogger.Info, nil
	default:
		return 0, fmt.Errorf("unknown database log level %q", name)
	}
}
