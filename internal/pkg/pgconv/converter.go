package pgconv

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// IsNoRows reports whether err is pgx's empty-result sentinel. Readstores
// use it to translate "not found" into their own kinds instead of leaking
// driver errors upward.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
