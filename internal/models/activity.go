package models

import "time"

// ActivityLog is a row of the activity_logs table. Details is stored as JSONB.
type ActivityLog struct {
	ActivityID  int            `db:"activity_id"`
	Timestamp   time.Time      `db:"occurred_at"`
	UserID      string         `db:"user_id"`
	Username    string         `db:"username"`
	Action      string         `db:"action"`
	EntityType  string         `db:"entity_type"`
	EntityID    string         `db:"entity_id"`
	EntityName  string         `db:"entity_name"`
	Description string         `db:"description"`
	Details     map[string]any `db:"details"`
	IPAddress   string         `db:"ip_address"`
	UserAgent   string         `db:"user_agent"`
}
