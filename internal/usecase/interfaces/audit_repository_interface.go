package interfaces

import (
	"context"

	"clinic_review/internal/domain/entities"
)

// IAuditRepository abstracts DynamoDB persistence for the submission audit
// trail. Recording is best-effort: a failed audit write never fails the
// submission it describes.

type IAuditRepository interface {
	Record(ctx context.Context, a entities.SubmissionAudit) (entities.SubmissionAudit, error)
	ListByCase(ctx context.Context, name, date string) ([]entities.SubmissionAudit, error)
}
