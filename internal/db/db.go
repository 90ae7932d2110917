package db

import "database/sql"

// DB wraps the standard sql.DB so stores depend on one local type.
type DB struct {
	*sql.DB
}
