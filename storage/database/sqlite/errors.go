package sqliterepos

import (
	pkgerrors "github.com/pkg/errors"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/trezcool/prepclass/core"
)

// isUniqueViolation reports whether err is a PRIMARY KEY or UNIQUE constraint
// failure.
func isUniqueViolation(err error) bool {
	if serr, ok := pkgerrors.Cause(err).(*sqlite.Error); ok {
		code := serr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}

// isShutdownCode reports whether a sqlite result code means the database file
// itself is gone or unusable; retrying requests cannot help at that point.
// Extended codes carry the primary code in their low byte.
func isShutdownCode(code int) bool {
	switch code & 0xff {
	case sqlite3.SQLITE_IOERR, sqlite3.SQLITE_CORRUPT, sqlite3.SQLITE_FULL,
		sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_NOTADB:
		return true
	}
	return false
}

// wrapDBErr wraps a driver error, converting unrecoverable result codes into
// a shutdown error so the server stops serving a broken store.
func wrapDBErr(err error, msg string) error {
	if serr, ok := pkgerrors.Cause(err).(*sqlite.Error); ok && isShutdownCode(serr.Code()) {
		return pkgerrors.Wrap(core.NewShutdownError(err.Error()), msg)
	}
	return pkgerrors.Wrap(err, msg)
}
