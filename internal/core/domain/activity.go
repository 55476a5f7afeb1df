package domain

import "time"

const (
	SystemUserID   = "system"
	SystemUsername = "System User"
)

// Activity actions recorded by the services.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
	ActionLogin  = "LOGIN"
)

// Entity types recorded by the services.
const (
	EntityAccount      = "Account"
	EntityJournalEntry = "JournalEntry"
	EntityUser         = "User"
)

// ActivityLog is an audit trail record of a user action.
type ActivityLog struct {
	ActivityID  int            `json:"activityID"`
	Timestamp   time.Time      `json:"timestamp"`
	UserID      string         `json:"userID"`
	Username    string         `json:"username"`
	Action      string         `json:"action"`
	EntityType  string         `json:"entityType"`
	EntityID    string         `json:"entityID"`
	EntityName  string         `json:"entityName"`
	Description string         `json:"description"`
	Details     map[string]any `json:"details,omitempty"`
	IPAddress   string         `json:"ipAddress"`
	UserAgent   string         `json:"userAgent"`
}

// ApplyDefaults fills in the system identity and timestamp when absent.
func (a *ActivityLog) ApplyDefaults(now time.Time) {
	if a.UserID == "" {
		a.UserID = SystemUserID
	}
	if a.Username == "" {
		a.Username = SystemUsername
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = now
	}
}

// Clone returns a copy with its own details map.
func (a ActivityLog) Clone() ActivityLog {
	if a.Details != nil {
		details := make(map[string]any, len(a.Details))
		for k, v := range a.Details {
			details[k] = v
		}
		a.Details = details
	}
	return a
}

// ActivityFilter narrows an activity listing. Zero values mean "no filter".
type ActivityFilter struct {
	UserID     string
	EntityType string
	Action     string
	From       *time.Time
	To         *time.Time
	Search     string
	Limit      int
	Offset     int
}

// RecentActivityCount is how many records an ActivitySummary carries.
const RecentActivityCount = 5

// UserActivityCount is a username with its number of records.
type UserActivityCount struct {
	Username string `json:"username"`
	Count    int    `json:"count"`
}

// ActivitySummary aggregates the whole audit trail.
type ActivitySummary struct {
	TotalActivities  int                `json:"totalActivities"`
	Last24Hours      int                `json:"last24Hours"`
	ActionCounts     map[string]int     `json:"actionCounts"`
	EntityTypeCounts map[string]int     `json:"entityTypeCounts"`
	MostActiveUser   *UserActivityCount `json:"mostActiveUser"`
	RecentActivity   []ActivityLog      `json:"recentActivity"`
}
