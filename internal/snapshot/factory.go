package snapshot

import (
	"strings"
)

// NewGateway picks an implementation from the DSN: postgres:// URLs go
// to postgres, anything ending in .json to the file gateway, the rest
// is treated as a sqlite path.
func NewGateway(dsn string) (Gateway, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres"):
		return NewPostgresGateway(dsn)
	case strings.HasSuffix(dsn, ".json"):
		return NewFileGateway(dsn)
	default:
		return NewSQLiteGateway(dsn)
	}
}
