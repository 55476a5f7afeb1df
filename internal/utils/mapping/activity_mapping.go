package mapping

import (
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	"github.com/SscSPs/erp_ledger/internal/models"
)

// ToModelActivityLog converts a domain ActivityLog to a model ActivityLog
func ToModelActivityLog(d domain.ActivityLog) models.ActivityLog {
	return models.ActivityLog{
		ActivityID:  d.ActivityID,
		Timestamp:   d.Timestamp,
		UserID:      d.UserID,
		Username:    d.Username,
		Action:      d.Action,
		EntityType:  d.EntityType,
		EntityID:    d.EntityID,
		EntityName:  d.EntityName,
		Description: d.Description,
		Details:     d.Details,
		IPAddress:   d.IPAddress,
		UserAgent:   d.UserAgent,
	}
}

// ToDomainActivityLog converts a model ActivityLog to a domain ActivityLog
func ToDomainActivityLog(m models.ActivityLog) domain.ActivityLog {
	return domain.ActivityLog{
		ActivityID:  m.ActivityID,
		Timestamp:   m.Timestamp.UTC(),
		UserID:      m.UserID,
		Username:    m.Username,
		Action:      m.Action,
		EntityType:  m.EntityType,
		EntityID:    m.EntityID,
		EntityName:  m.EntityName,
		Description: m.Description,
		Details:     m.Details,
		IPAddress:   m.IPAddress,
		UserAgent:   m.UserAgent,
	}
}

// ToDomainActivityLogSlice converts a slice of model ActivityLogs
func ToDomainActivityLogSlice(ms []models.ActivityLog) []domain.ActivityLog {
	ds := make([]domain.ActivityLog, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainActivityLog(m)
	}
	return ds
}
