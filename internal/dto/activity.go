package dto

import (
	"github.com/SscSPs/erp_ledger/internal/core/domain"
)

// ListActivitiesParams defines query parameters for the activity log.
type ListActivitiesParams struct {
	UserID     string `form:"userID"`
	EntityType string `form:"entityType"`
	Action     string `form:"action"`
	From       string `form:"from"`
	To         string `form:"to"`
	Search     string `form:"search"`
	Limit      int    `form:"limit,default=50" binding:"min=0,max=500"`
	Offset     int    `form:"offset,default=0" binding:"min=0"`
}

// ToActivityFilter parses the query into a domain filter. The "to" date is inclusive.
func (p ListActivitiesParams) ToActivityFilter() (domain.ActivityFilter, error) {
	from, err := ParseOptionalDate(p.From)
	if err != nil {
		return domain.ActivityFilter{}, err
	}
	to, err := ParseOptionalDate(p.To)
	if err != nil {
		return domain.ActivityFilter{}, err
	}
	if to != nil {
		end := EndOfDay(*to)
		to = &end
	}
	return domain.ActivityFilter{
		UserID:     p.UserID,
		EntityType: p.EntityType,
		Action:     p.Action,
		From:       from,
		To:         to,
		Search:     p.Search,
		Limit:      p.Limit,
		Offset:     p.Offset,
	}, nil
}

// ListActivitiesResponse wraps a page of activity records.
type ListActivitiesResponse struct {
	Activities []domain.ActivityLog `json:"activities"`
}
