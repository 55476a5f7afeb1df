package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/erp_ledger/internal/models"
	"github.com/SscSPs/erp_ledger/internal/utils/mapping"
)

const activityColumns = `activity_id, occurred_at, user_id, username, action, entity_type, entity_id, entity_name, description, details, ip_address, user_agent`

type PgxActivityRepository struct {
	pool *pgxpool.Pool
}

func newPgxActivityRepository(pool *pgxpool.Pool) *PgxActivityRepository {
	return &PgxActivityRepository{pool: pool}
}

var _ portsrepo.ActivityLogRepository = (*PgxActivityRepository)(nil)

func (r *PgxActivityRepository) SaveActivity(ctx context.Context, activity *domain.ActivityLog) error {
	m := mapping.ToModelActivityLog(*activity)
	query := `
		INSERT INTO activity_logs (occurred_at, user_id, username, action, entity_type, entity_id, entity_name, description, details, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING activity_id;
	`
	err := r.pool.QueryRow(ctx, query,
		m.Timestamp, m.UserID, m.Username, m.Action, m.EntityType, m.EntityID,
		m.EntityName, m.Description, m.Details, m.IPAddress, m.UserAgent,
	).Scan(&activity.ActivityID)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

func (r *PgxActivityRepository) FindActivityByID(ctx context.Context, activityID int) (*domain.ActivityLog, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+activityColumns+` FROM activity_logs WHERE activity_id = $1;`, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity %d: %w", activityID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.ActivityLog])
	if err != nil {
		return nil, translateError(err, "activity "+strconv.Itoa(activityID))
	}
	a := mapping.ToDomainActivityLog(m)
	return &a, nil
}

// ListActivities returns matching records newest first.
func (r *PgxActivityRepository) ListActivities(ctx context.Context, filter domain.ActivityFilter) ([]domain.ActivityLog, error) {
	var where whereClause
	if filter.UserID != "" {
		where.add("user_id = ?", filter.UserID)
	}
	if filter.EntityType != "" {
		where.add("LOWER(entity_type) = LOWER(?)", filter.EntityType)
	}
	if filter.Action != "" {
		where.add("UPPER(action) = UPPER(?)", filter.Action)
	}
	if filter.From != nil {
		where.add("occurred_at >= ?", *filter.From)
	}
	if filter.To != nil {
		where.add("occurred_at <= ?", *filter.To)
	}
	if filter.Search != "" {
		where.add("(description ILIKE ? OR entity_name ILIKE ? OR username ILIKE ? OR entity_type ILIKE ? OR action ILIKE ?)", likePattern(filter.Search))
	}

	query := `SELECT ` + activityColumns + ` FROM activity_logs` + where.String() + ` ORDER BY occurred_at DESC, activity_id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ` + where.next(filter.Limit)
	}
	if filter.Offset > 0 {
		query += ` OFFSET ` + where.next(filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query+`;`, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ActivityLog])
	if err != nil {
		return nil, fmt.Errorf("failed to scan activities: %w", err)
	}
	return mapping.ToDomainActivityLogSlice(ms), nil
}

// SummarizeActivities runs every aggregate in one read-only snapshot.
func (r *PgxActivityRepository) SummarizeActivities(ctx context.Context, since time.Time, recent int) (*domain.ActivitySummary, error) {
	summary := &domain.ActivitySummary{}
	txOptions := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

	err := pgx.BeginTxFunc(ctx, r.pool, txOptions, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`SELECT COUNT(*), COUNT(*) FILTER (WHERE occurred_at >= $1) FROM activity_logs;`, since,
		).Scan(&summary.TotalActivities, &summary.Last24Hours)
		if err != nil {
			return fmt.Errorf("failed to count activities: %w", err)
		}

		if summary.ActionCounts, err = countActivitiesBy(ctx, tx, "action"); err != nil {
			return err
		}
		if summary.EntityTypeCounts, err = countActivitiesBy(ctx, tx, "entity_type"); err != nil {
			return err
		}

		var top domain.UserActivityCount
		err = tx.QueryRow(ctx, `
			SELECT username, COUNT(*) AS n FROM activity_logs
			GROUP BY username
			ORDER BY n DESC, username ASC
			LIMIT 1;
		`).Scan(&top.Username, &top.Count)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
		case err != nil:
			return fmt.Errorf("failed to find most active user: %w", err)
		default:
			summary.MostActiveUser = &top
		}

		rows, err := tx.Query(ctx,
			`SELECT `+activityColumns+` FROM activity_logs ORDER BY occurred_at DESC, activity_id DESC LIMIT $1;`, recent)
		if err != nil {
			return fmt.Errorf("failed to query recent activities: %w", err)
		}
		ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ActivityLog])
		if err != nil {
			return fmt.Errorf("failed to scan recent activities: %w", err)
		}
		summary.RecentActivity = mapping.ToDomainActivityLogSlice(ms)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// countActivitiesBy groups activity_logs by a trusted column name.
func countActivitiesBy(ctx context.Context, tx pgx.Tx, column string) (map[string]int, error) {
	rows, err := tx.Query(ctx, `SELECT `+column+`, COUNT(*) FROM activity_logs GROUP BY `+column+`;`)
	if err != nil {
		return nil, fmt.Errorf("failed to count activities by %s: %w", column, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("failed to scan %s count: %w", column, err)
		}
		counts[key] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to count activities by %s: %w", column, err)
	}
	return counts, nil
}
