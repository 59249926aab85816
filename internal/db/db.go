package db

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a connected GORM DB instance for a connection string.
// Driver-specific constraint errors are translated into gorm's sentinel
// errors (gorm.ErrDuplicatedKey, gorm.ErrForeignKeyViolated).
func Open(uri string) (*gorm.DB, error) {
	dialector, err := Dialector(uri)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", dialector.Name(), err)
	}
	return db, nil
}

// Dialector picks a GORM dialector from the connection string. URL forms
// follow the SQLAlchemy convention (mysql://, postgresql://, sqlite:///path,
// optionally with a "+driver" suffix on the scheme). A "file:" DSN is passed
// to sqlite as is; anything else is treated as a native MySQL DSN.
func Dialector(uri string) (gorm.Dialector, error) {
	if strings.HasPrefix(uri, "file:") {
		return sqlite.Open(uri), nil
	}

	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return mysql.Open(uri), nil
	}
	scheme, _, _ = strings.Cut(scheme, "+")

	switch scheme {
	case "sqlite", "sqlite3":
		return sqlite.Open(sqliteDSN(rest)), nil
	case "postgres", "postgresql":
		return postgres.Open("postgres://" + rest), nil
	case "mysql", "mariadb":
		dsn, err := mysqlDSN(rest)
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database scheme %q", scheme)
	}
}

// sqliteDSN converts the part after "sqlite://" into a go-sqlite3 DSN.
// "/library.db" is relative, "//var/lib/library.db" is absolute, and an
// empty path selects an in-memory database.
func sqliteDSN(rest string) string {
	path := strings.TrimPrefix(rest, "/")
	if path == "" || path == ":memory:" {
		return "file::memory:?cache=shared&_foreign_keys=1"
	}
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", path)
}

// mysqlDSN converts "user:pass@host:port/db?params" into a go-sql-driver DSN.
func mysqlDSN(rest string) (string, error) {
	u, err := url.Parse("mysql://" + rest)
	if err != nil {
		return "", fmt.Errorf("parse mysql uri: %w", err)
	}

	cfg := gomysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = u.Host
	if u.Port() == "" {
		cfg.Addr = u.Hostname() + ":3306"
	}
	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	if u.User != nil {
		cfg.User = u.User.Username()
		cfg.Passwd, _ = u.User.Password()
	}
	cfg.ParseTime = true
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	for key, values := range u.Query() {
		if len(values) > 0 {
			cfg.Params[key] = values[0]
		}
	}
	return cfg.FormatDSN(), nil
}
