package database

import (
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sql.DB
}

// MemoryDSN names a private in-memory database. Nothing written to it
// outlives the process.
func MemoryDSN(name string) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", url.PathEscape(name))
}

func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, err
	}

	// An in-memory database lives as long as its connection; keep exactly one.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	// Run migrations
	if _, err := db.Exec(createTablesSQL); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db}, nil
}
