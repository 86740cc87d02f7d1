package config

import (
	"errors"
)

var (
	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrSQLitePathEmpty error if the sqlite engine is selected without a database file.
	ErrSQLitePathEmpty = errors.New("toml config db.path can not be empty for the sqlite engine")

	// ErrDBHostEmpty error if a network database engine is selected without a host.
	ErrDBHostEmpty = errors.New("toml config db.host can not be empty for mysql and postgres")
)
