package interfaces

import (
	"context"

	"clinic_review/internal/domain/entities"
)

// StageUpdate is the full per-stage delta the workflow engine assembles for
// one submission. It is persisted as a single batched write.
type StageUpdate struct {
	Stage  entities.Stage
	Record entities.StageRecord
	Status entities.CaseStatus

	// Final stage only.
	Action entities.FinalAction
	Grade  string
}

// ICaseRepository abstracts the header-indexed table persistence for Case.
//
// The review-service must be able to:
//   - provision the deterministic column schema once at startup
//   - create a case on self-assessment, rejecting a duplicate natural key
//   - resolve a case by its normalized (name, date) natural key
//   - persist one stage's delta against a previously located row

type ICaseRepository interface {
	Migrate(ctx context.Context) error
	List(ctx context.Context) ([]entities.Case, error)
	GetByKey(ctx context.Context, name, date string) (entities.Case, error)
	Create(ctx context.Context, c entities.Case) (entities.Case, error)
	UpdateStage(ctx context.Context, handle entities.RowHandle, upd StageUpdate) error
}
