package database

import (
	"context"
	"fmt"

	"github.com/itsatony/smartrooms/internal/config"
	nuts "github.com/vaudience/go-nuts"
)

// Migrate creates all tables needed by the application.
// Safe to call multiple times; every statement uses IF NOT EXISTS.
func Migrate(ctx context.Context, db DB) error {
	statements, ok := schemas[db.Dialect()]
	if !ok {
		return fmt.Errorf("no schema for dialect %q", db.Dialect())
	}
	for i, stmt := range statements {
		if _, err := db.GetDB().ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i+1, err)
		}
	}
	nuts.L.Infof("[Database] Schema applied (%s, %d statements)", db.Dialect(), len(statements))
	return nil
}

var schemas = map[string][]string{
	config.DriverPostgres: {
		`CREATE TABLE IF NOT EXISTS areas (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			area_type VARCHAR(16) NOT NULL CHECK (area_type IN ('building', 'floor')),
			description TEXT NOT NULL DEFAULT '',
			image_path VARCHAR(1024),
			inside_of VARCHAR(64) REFERENCES areas(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_areas_inside_of ON areas(inside_of)`,
		`CREATE TABLE IF NOT EXISTS sensors (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			area_id VARCHAR(64) NOT NULL REFERENCES areas(id),
			status VARCHAR(16) NOT NULL DEFAULT 'inactive' CHECK (status IN ('active', 'inactive', 'error')),
			coordinates TEXT,
			count INTEGER NOT NULL DEFAULT 0 CHECK (count >= 0),
			max_capacity INTEGER NOT NULL DEFAULT 1 CHECK (max_capacity > 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sensors_area_id ON sensors(area_id)`,
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(64) PRIMARY KEY,
			username VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			user_type VARCHAR(16) NOT NULL CHECK (user_type IN ('admin', 'maintainer', 'user')),
			email VARCHAR(255) NOT NULL DEFAULT '',
			phone VARCHAR(64) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	config.DriverMySQL: {
		`CREATE TABLE IF NOT EXISTS areas (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			area_type ENUM('building', 'floor') NOT NULL,
			description VARCHAR(2048) NOT NULL DEFAULT '',
			image_path VARCHAR(1024) NULL,
			inside_of VARCHAR(64) NULL,
			created_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
			updated_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
			INDEX idx_areas_inside_of (inside_of),
			CONSTRAINT fk_areas_inside_of FOREIGN KEY (inside_of) REFERENCES areas(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS sensors (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			area_id VARCHAR(64) NOT NULL,
			status ENUM('active', 'inactive', 'error') NOT NULL DEFAULT 'inactive',
			coordinates TEXT NULL,
			count INT NOT NULL DEFAULT 0,
			max_capacity INT NOT NULL DEFAULT 1,
			created_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
			updated_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
			INDEX idx_sensors_area_id (area_id),
			CONSTRAINT fk_sensors_area_id FOREIGN KEY (area_id) REFERENCES areas(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(64) PRIMARY KEY,
			username VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			user_type ENUM('admin', 'maintainer', 'user') NOT NULL,
			email VARCHAR(255) NOT NULL DEFAULT '',
			phone VARCHAR(64) NOT NULL DEFAULT '',
			created_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	},
	config.DriverSQLite: {
		`CREATE TABLE IF NOT EXISTS areas (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			area_type TEXT NOT NULL CHECK (area_type IN ('building', 'floor')),
			description TEXT NOT NULL DEFAULT '',
			image_path TEXT,
			inside_of TEXT REFERENCES areas(id),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_areas_inside_of ON areas(inside_of)`,
		`CREATE TABLE IF NOT EXISTS sensors (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			area_id TEXT NOT NULL REFERENCES areas(id),
			status TEXT NOT NULL DEFAULT 'inactive' CHECK (status IN ('active', 'inactive', 'error')),
			coordinates TEXT,
			count INTEGER NOT NULL DEFAULT 0 CHECK (count >= 0),
			max_capacity INTEGER NOT NULL DEFAULT 1 CHECK (max_capacity > 0),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sensors_area_id ON sensors(area_id)`,
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			user_type TEXT NOT NULL CHECK (user_type IN ('admin', 'maintainer', 'user')),
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	},
}
