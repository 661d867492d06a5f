package postgres

import (
	"database/sql"
	"strings"

	"github.com/lib/pq"

	ierr "github.com/wildpine/wildpine/internal/errors"
)

// isUniqueViolation reports whether the error is a postgres unique
// constraint violation (SQLSTATE 23505)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if ierr.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// expectOneRow converts a zero-rows-affected result into a not-found error
func expectOneRow(result sql.Result, entity string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to read affected rows").
			Mark(ierr.ErrDatabase)
	}
	if rows == 0 {
		return ierr.NewErrorf("%s not found", entity).
			WithHintf("The %s was not found or is in the wrong state", entity).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

// prefixColumns qualifies a comma-separated column list with a table alias,
// for queries that join other tables
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

// allowed sort columns, anything else falls back to the default. Sort
// values come from query strings and must never reach the SQL text raw.
var sortColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"start_date": true,
	"due_date":   true,
	"title":      true,
	"email":      true,
}

func sortColumn(requested, fallback string) string {
	if sortColumns[requested] {
		return requested
	}
	return fallback
}

func sortOrder(requested string) string {
	if strings.EqualFold(requested, "asc") {
		return "ASC"
	}
	return "DESC"
}
