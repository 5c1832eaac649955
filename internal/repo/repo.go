package repo

import (
	"database/sql"
	"errors"
)

// Repo provides SQL-backed persistence for orders and users.
type Repo struct {
	DB *sql.DB
}

var ErrNotFound = errors.New("not found")

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}
