package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/davihchagas/feedback-system-project/internal/domain"
)

// Querier abstrae *pgxpool.Pool y pgx.Tx para que los repositorios funcionen dentro y fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Códigos SQLSTATE relevantes.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeInvalidParameter    = "22023"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

// isForeignKeyViolation verifica si un error es una violación de clave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

// isUnavailable detecta fallos de conexión o timeout (el almacén no responde).
func isUnavailable(err error) bool {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	return pgconn.Timeout(err)
}

// mapWriteError traduce errores de PostgreSQL a la taxonomía de dominio.
// Una violación única sobre un constraint de email es ErrEmailAlreadyExists; el resto, ErrDuplicateID.
func mapWriteError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			if strings.Contains(pgErr.ConstraintName, "email") {
				return domain.ErrEmailAlreadyExists
			}
			return fmt.Errorf("%s: %w", op, domain.ErrDuplicateID)
		case codeForeignKeyViolation:
			return fmt.Errorf("%s (%s): %w", op, pgErr.ConstraintName, domain.ErrReferentialIntegrity)
		case codeCheckViolation, codeInvalidParameter:
			field := pgErr.ColumnName
			if field == "" {
				field = pgErr.ConstraintName
			}
			return domain.NewValidationError(field, pgErr.Message)
		}
	}
	return mapReadError(op, err)
}

// mapReadError envuelve fallos de infraestructura como ErrStoreUnavailable.
func mapReadError(op string, err error) error {
	if err == nil {
		return nil
	}
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// pgxScanner abstrae pgx.Row y pgx.Rows para reutilizar las funciones scan*.
type pgxScanner interface {
	Scan(dest ...any) error
}
