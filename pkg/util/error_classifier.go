package util

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// ClassifyDBError returns a short label describing a storage error, used in
// logs and metrics. It never leaves the process.
func ClassifyDBError(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return "no_rows"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUniqueViolation {
			return "unique_violation"
		}
		return "pg_" + pgErr.Code
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return "timeout"
		}
		return "connection_error"
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return "connection_error"
	}

	return "unknown"
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
