package postgres

import (
	"context"
	_ "embed"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema aplica el esquema (tablas, índices y la función insert_feedback).
// Sin argumentos pgx usa el protocolo simple, que admite varias sentencias.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schemaSQL); err != nil {
		return mapReadError("apply schema", err)
	}
	return nil
}
