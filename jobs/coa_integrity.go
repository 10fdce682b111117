package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CoaIntegrityJob scans the chart of accounts for dangling hierarchy
// references. Parent links are weak and deletes are unconditional, so a
// deleted parent can leave orphans behind; the scan reports them so an
// operator can reparent or clean up.
type CoaIntegrityJob struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewCoaIntegrityJob wires the integrity scan job.
func NewCoaIntegrityJob(pool *pgxpool.Pool, logger *slog.Logger) *CoaIntegrityJob {
	return &CoaIntegrityJob{pool: pool, logger: logger}
}

// Handle processes TaskCoaIntegrityScan tasks.
func (j *CoaIntegrityJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload CoaIntegrityScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	query := `
		SELECT c.id, c.code
		FROM accounts c
		LEFT JOIN accounts p ON p.id = c.parent_id
		WHERE c.parent_id IS NOT NULL AND p.id IS NULL`
	if payload.Scope == "active" {
		query += ` AND c.is_active`
	}

	rows, err := j.pool.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	orphans := 0
	for rows.Next() {
		var id, code string
		if err := rows.Scan(&id, &code); err != nil {
			return err
		}
		orphans++
		j.logger.Warn("orphaned account parent reference",
			slog.String("account_id", id), slog.String("code", code))
	}
	if err := rows.Err(); err != nil {
		return err
	}

	j.logger.Info("coa integrity scan completed",
		slog.String("scope", payload.Scope), slog.Int("orphans", orphans))
	return nil
}
