package postgres

import (
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Validation field keys for the columns and checks of the users table.
var constraintFields = map[string]string{
	"chk_users_role":     "role",
	"chk_users_home_lat": "homeLocation.lat",
	"chk_users_home_lng": "homeLocation.lng",
	"email":              "email",
	"password_hash":      "password",
	"name":               "name",
	"role":               "role",
}

// pgErrorCode returns the SQLSTATE of a PostgreSQL error, or "".
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

func isUniqueConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || pgErrorCode(err) == pgerrcode.UniqueViolation
}

func isNotNullConstraintViolation(err error) bool {
	return pgErrorCode(err) == pgerrcode.NotNullViolation
}

func isCheckConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrCheckConstraintViolated) || pgErrorCode(err) == pgerrcode.CheckViolation
}

// constraintField names the user field behind a constraint violation, or
// "user" when the server did not say which constraint failed.
func constraintField(err error) string {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "user"
	}

	for _, key := range []string{pgErr.ConstraintName, pgErr.ColumnName} {
		if field, ok := constraintFields[key]; ok {
			return field
		}
	}

	return "user"
}
