package repositories

import (
	"context"

	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/entities"
)

// AuditRepository defines the interface for audit record persistence.
type AuditRepository interface {
	// Create persists a new, immutable audit record.
	Create(ctx context.Context, record *entities.AuditRecord) error

	// GetLatestByConsultID returns the highest-revision record for the consult.
	GetLatestByConsultID(ctx context.Context, consultID string) (*entities.AuditRecord, error)

	// GetByConsultIDRevision returns one specific revision for the consult.
	GetByConsultIDRevision(ctx context.Context, consultID string, revision int) (*entities.AuditRecord, error)

	// NextRevision returns the revision number the next evaluation of this
	// consult should carry (1 for a consult never evaluated before).
	NextRevision(ctx context.Context, consultID string) (int, error)

	// ListRecent returns the newest records across all consults.
	ListRecent(ctx context.Context, limit int) ([]entities.AuditRecord, error)
}
