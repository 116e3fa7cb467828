package db

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Options struct {
	Driver string
	Path   string
	DSN    string
}

func Open(options Options) (*gorm.DB, error) {
	switch strings.ToLower(strings.TrimSpace(options.Driver)) {
	case "", DriverSQLite:
		return OpenSQLite(options.Path)
	case DriverPostgres:
		if strings.TrimSpace(options.DSN) == "" {
			return nil, fmt.Errorf("postgres driver requires DATABASE_URL")
		}
		return OpenPostgres(options.DSN)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", options.Driver)
	}
}
