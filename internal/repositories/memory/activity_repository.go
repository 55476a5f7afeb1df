package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_ledger/internal/core/ports/repositories"
)

// ActivityRepository is an append-only in-memory audit trail.
type ActivityRepository struct {
	store *Store
}

// NewActivityRepository creates an activity repository over the store.
func NewActivityRepository(store *Store) *ActivityRepository {
	return &ActivityRepository{store: store}
}

var _ portsrepo.ActivityLogRepository = (*ActivityRepository)(nil)

func (r *ActivityRepository) SaveActivity(_ context.Context, activity *domain.ActivityLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextActivityID++
	activity.ActivityID = r.store.nextActivityID
	r.store.activities = append(r.store.activities, activity.Clone())
	return nil
}

func (r *ActivityRepository) FindActivityByID(_ context.Context, activityID int) (*domain.ActivityLog, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, a := range r.store.activities {
		if a.ActivityID == activityID {
			found := a.Clone()
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: activity %d", apperrors.ErrNotFound, activityID)
}

// matchesActivity applies every filter field except paging.
func matchesActivity(a domain.ActivityLog, f domain.ActivityFilter) bool {
	if f.UserID != "" && a.UserID != f.UserID {
		return false
	}
	if f.EntityType != "" && !strings.EqualFold(a.EntityType, f.EntityType) {
		return false
	}
	if f.Action != "" && !strings.EqualFold(a.Action, f.Action) {
		return false
	}
	if f.From != nil && a.Timestamp.Before(*f.From) {
		return false
	}
	if f.To != nil && a.Timestamp.After(*f.To) {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		haystack := strings.ToLower(strings.Join([]string{a.Description, a.EntityName, a.Username, a.EntityType, a.Action}, "\n"))
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

func sortNewestFirst(activities []domain.ActivityLog) {
	sort.SliceStable(activities, func(i, j int) bool {
		if !activities[i].Timestamp.Equal(activities[j].Timestamp) {
			return activities[i].Timestamp.After(activities[j].Timestamp)
		}
		return activities[i].ActivityID > activities[j].ActivityID
	})
}

func (r *ActivityRepository) ListActivities(_ context.Context, filter domain.ActivityFilter) ([]domain.ActivityLog, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matched := make([]domain.ActivityLog, 0)
	for _, a := range r.store.activities {
		if matchesActivity(a, filter) {
			matched = append(matched, a.Clone())
		}
	}
	sortNewestFirst(matched)

	if filter.Offset >= len(matched) {
		return []domain.ActivityLog{}, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (r *ActivityRepository) SummarizeActivities(_ context.Context, since time.Time, recent int) (*domain.ActivitySummary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	summary := &domain.ActivitySummary{
		TotalActivities:  len(r.store.activities),
		ActionCounts:     make(map[string]int),
		EntityTypeCounts: make(map[string]int),
		RecentActivity:   []domain.ActivityLog{},
	}
	userCounts := make(map[string]int)
	for _, a := range r.store.activities {
		if !a.Timestamp.Before(since) {
			summary.Last24Hours++
		}
		summary.ActionCounts[a.Action]++
		summary.EntityTypeCounts[a.EntityType]++
		userCounts[a.Username]++
	}

	for username, count := range userCounts {
		top := summary.MostActiveUser
		if top == nil || count > top.Count || (count == top.Count && username < top.Username) {
			summary.MostActiveUser = &domain.UserActivityCount{Username: username, Count: count}
		}
	}

	newest := make([]domain.ActivityLog, len(r.store.activities))
	copy(newest, r.store.activities)
	sortNewestFirst(newest)
	if recent < len(newest) {
		newest = newest[:recent]
	}
	for _, a := range newest {
		summary.RecentActivity = append(summary.RecentActivity, a.Clone())
	}
	return summary, nil
}
