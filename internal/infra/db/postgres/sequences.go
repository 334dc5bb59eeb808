package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"invsys/go_backend/internal/domain/document"
)

// nextNumber allocates the next document number for a kind inside the
// caller's transaction. The row lock taken by UPDATE makes concurrent
// inserts of the same kind serialize instead of reusing a number.
func nextNumber(ctx context.Context, tx pgx.Tx, kind document.Kind) (string, error) {
	var n int64
	err := tx.QueryRow(ctx, `
		UPDATE document_sequences
		SET last_value = last_value + 1
		WHERE kind = $1
		RETURNING last_value`, string(kind)).Scan(&n)
	if err != nil {
		return "", err
	}
	return document.FormatNumber(kind, n), nil
}
