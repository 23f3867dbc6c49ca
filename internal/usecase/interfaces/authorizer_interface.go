package interfaces

import "clinic_review/internal/domain/entities"

// IStageAuthorizer answers "is this actor authorized for stage X". The
// workflow engine depends only on this predicate; the capability-token
// implementation lives in infrastructure.

type IStageAuthorizer interface {
	Authorize(token string, stage entities.Stage) (actor string, err error)
}
