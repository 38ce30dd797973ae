package db

import (
	"database/sql"
	"fmt"
)

// schemaSQLite is the full database schema for SQLite. Datetimes are stored
// as TEXT in the application's sortable format.
const schemaSQLite = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL,
    created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS items (
    id          INTEGER PRIMARY KEY,
    user_id     INTEGER NOT NULL REFERENCES users(id),
    name        TEXT NOT NULL,
    quantity    INTEGER NOT NULL CHECK (quantity >= 0),
    price       REAL NOT NULL CHECK (price >= 0),
    code        TEXT NOT NULL,
    expiry_date TEXT NOT NULL,
    created_at  TEXT NOT NULL,
    updated_at  TEXT,
    flag        INTEGER NOT NULL DEFAULT 0
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_items_owner_name
    ON items(user_id, name);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// schemaMySQL mirrors schemaSQLite for MySQL. Statements are applied one at
// a time because the driver does not accept multi-statement batches by
// default.
var schemaMySQL = []string{
	`CREATE TABLE IF NOT EXISTS users (
	    id            BIGINT AUTO_INCREMENT PRIMARY KEY,
	    username      VARCHAR(191) NOT NULL UNIQUE,
	    password_hash VARCHAR(255) NOT NULL,
	    role          VARCHAR(64) NOT NULL,
	    created_at    VARCHAR(19) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS items (
	    id          BIGINT AUTO_INCREMENT PRIMARY KEY,
	    user_id     BIGINT NOT NULL,
	    name        VARCHAR(191) NOT NULL,
	    quantity    INT NOT NULL,
	    price       DOUBLE NOT NULL,
	    code        VARCHAR(191) NOT NULL,
	    expiry_date VARCHAR(19) NOT NULL,
	    created_at  VARCHAR(19) NOT NULL,
	    updated_at  VARCHAR(19),
	    flag        TINYINT(1) NOT NULL DEFAULT 0,
	    UNIQUE KEY idx_items_owner_name (user_id, name),
	    FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
	    ` + "`key`" + ` VARCHAR(191) PRIMARY KEY,
	    value VARCHAR(255) NOT NULL
	)`,
}

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB, dialect string) error {
	switch dialect {
	case DialectSQLite:
		if _, err := db.Exec(schemaSQLite); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
		return nil
	case DialectMySQL:
		for _, stmt := range schemaMySQL {
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("creating schema: %w", err)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown database dialect %q", dialect)
	}
}
