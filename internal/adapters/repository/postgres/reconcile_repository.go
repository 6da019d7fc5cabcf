package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
)

type reconcileRepository struct {
	db *sql.DB
}

// NewReconcileRepository returns the read-only queries behind the vote count
// audit.
func NewReconcileRepository(db *sql.DB) ports.ReconcileRepository {
	return &reconcileRepository{
		db: db,
	}
}

func (r *reconcileRepository) ListPollIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM polls ORDER BY created_at, id`)
	if err != nil {
		return nil, wrapStoreError("failed to list polls", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, wrapStoreError("failed to scan poll id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreError("error iterating polls", err)
	}
	return ids, nil
}

// FindDrift compares each option's stored counter with the number of vote
// rows pointing at it. Only mismatching options are returned.
func (r *reconcileRepository) FindDrift(ctx context.Context, pollID uuid.UUID) ([]domain.OptionDrift, error) {
	query := `
		SELECT o.poll_id, o.id, o.vote_count, COUNT(v.id)
		FROM poll_options o
		LEFT JOIN votes v ON v.option_id = o.id AND v.poll_id = o.poll_id
		WHERE o.poll_id = $1
		GROUP BY o.poll_id, o.id, o.vote_count
		HAVING o.vote_count <> COUNT(v.id)
		ORDER BY o.id
	`
	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, wrapStoreError("failed to audit vote counts", err)
	}
	defer rows.Close()

	var drift []domain.OptionDrift
	for rows.Next() {
		var d domain.OptionDrift
		if err := rows.Scan(&d.PollID, &d.OptionID, &d.StoredCount, &d.ActualCount); err != nil {
			return nil, wrapStoreError("failed to scan audit row", err)
		}
		drift = append(drift, d)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreError("error iterating audit rows", err)
	}
	return drift, nil
}
