package db

import (
	"strings"

	"github.com/teranos/schemagen/errors"
)

// ErrDatabaseClosed marks a ledger write attempted on a closed handle.
var ErrDatabaseClosed = errors.New("database is closed")

// IsDatabaseClosed reports whether err is ErrDatabaseClosed or a raw
// database/sql error for a closed handle, which the driver returns unmarked.
func IsDatabaseClosed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDatabaseClosed) {
		return true
	}
	return strings.Contains(err.Error(), "sql: database is closed")
}
