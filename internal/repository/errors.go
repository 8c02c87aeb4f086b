// Package repository implements the data access layer for the application.
package repository

import (
	"errors"
	"strings"

	"inkwell/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
)

// translateConstraintError converts a store-level constraint rejection into
// the same user-visible shape as a validation failure. Races between the
// application-level uniqueness pre-check and commit land here; the database
// is the sole authority for uniqueness correctness.
func translateConstraintError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return models.NewValidationErrors(uniqueViolationMessage(pgErr.ConstraintName))
		case "23503": // foreign_key_violation
			return models.NewValidationErrors("User must exist")
		}
	}

	// Fallback for drivers that do not expose SQLSTATE (e.g. sqlite in tests).
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "duplicate key"),
		strings.Contains(msg, "unique constraint"),
		strings.Contains(msg, "23505"):
		return models.NewValidationErrors(uniqueViolationMessage(msg))
	case strings.Contains(msg, "foreign key"):
		return models.NewValidationErrors("User must exist")
	}

	return models.NewInternalError(err)
}

// uniqueViolationMessage maps a constraint name (or raw error text) onto the
// field-level message the validation engine would have produced.
func uniqueViolationMessage(detail string) string {
	detail = strings.ToLower(detail)
	switch {
	case strings.Contains(detail, "email"):
		return "Email has already been taken"
	case strings.Contains(detail, "username"):
		return "Username has already been taken"
	case strings.Contains(detail, "slug"):
		return "Slug has already been taken"
	default:
		return "Record has already been taken"
	}
}

// IsNotFound reports whether err is the repository's not-found outcome.
func IsNotFound(err error) bool {
	var appErr *models.AppError
	return errors.As(err, &appErr) && appErr.Code == "NOT_FOUND"
}
