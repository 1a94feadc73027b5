package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier abstrai *pgxpool.Pool e pgx.Tx: os repositórios aceitam qualquer
// um dos dois, embora neste serviço cada operação seja uma chamada isolada
// (não há transação cruzando repositórios).
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB é um Querier que também abre transações locais à loja. O *pgxpool.Pool
// satisfaz os dois; a transação nunca atravessa o pool de outra loja.
type DB interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}
