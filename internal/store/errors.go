package store

import (
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// constraintFailed reports whether err is a SQLite constraint violation whose
// message mentions kind, e.g. "UNIQUE" or "FOREIGN KEY".
func constraintFailed(err error, kind string) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), kind)
}
