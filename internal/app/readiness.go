package app

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// BuildReadinessChecks returns probe functions for the readiness endpoint.
func BuildReadinessChecks(pool *pgxpool.Pool) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return pool.Ping(ctx)
	}
}
