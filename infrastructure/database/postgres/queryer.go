package postgres

import (
	"context"
	"database/sql"
)

// Queryer abstrai *sql.DB e *sql.Tx para que os repositórios funcionem
// dentro e fora de transações.
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (sql.Result, error)
	Query(ctx context.Context, sql string, args ...interface{}) (*sql.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) *sql.Row
}
