package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"clinic_review/internal/domain/entities"
	"clinic_review/internal/domain/scoring"
	"clinic_review/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrMissingName        = errors.New("missing reviewee name")
	ErrMissingDate        = errors.New("missing assessment date")
	ErrInvalidRole        = errors.New("invalid submitter role")
	ErrInvalidStage       = errors.New("invalid review stage")
	ErrInvalidFinalAction = errors.New("invalid final action")
	ErrInvalidCaseState   = errors.New("case is not in the expected state for this stage")
	ErrUnauthorizedStage  = errors.New("actor not authorized for this stage")
)

// SubmitSelfCommand carries one self-assessment submission. Self is its own
// scoring reference: items the reviewee marks not-applicable stay excluded
// for the rest of the case.
type SubmitSelfCommand struct {
	Name     string
	Rank     string
	Date     string
	Role     entities.Role
	Routing  string
	Approver string
	Scores   map[string]entities.Score
	Comment  string
}

// ReviewCommand carries one reviewer-stage submission addressed by the
// case's natural key.
type ReviewCommand struct {
	Token   string
	Name    string
	Date    string
	Scores  map[string]entities.Score
	Comment string
}

// FinalCommand is the terminal submission: scores plus the outcome
// recommendation.
type FinalCommand struct {
	ReviewCommand
	Action entities.FinalAction
}

// IReviewUseCase is the approval workflow engine. It decides the next case
// status from the current status and the actor, folds scores against the
// self reference, and persists each stage as a single delta.

type IReviewUseCase interface {
	SubmitSelf(ctx context.Context, cmd SubmitSelfCommand) (entities.Case, error)
	SubmitReview(ctx context.Context, stage entities.Stage, cmd ReviewCommand) (entities.Case, error)
	SubmitFinal(ctx context.Context, cmd FinalCommand) (entities.Case, error)
	GetCase(ctx context.Context, name, date string) (entities.Case, error)
	ListCases(ctx context.Context, routing string) ([]entities.Case, error)
	Catalog() []entities.Item
}

type ReviewUseCase struct {
	repo    interfaces.ICaseRepository
	audit   interfaces.IAuditRepository
	authz   interfaces.IStageAuthorizer
	catalog []entities.Item
	now     func() time.Time
}

var _ IReviewUseCase = (*ReviewUseCase)(nil)

func NewReviewUseCase(
	repo interfaces.ICaseRepository,
	audit interfaces.IAuditRepository,
	authz interfaces.IStageAuthorizer,
	catalog []entities.Item,
) *ReviewUseCase {
	return &ReviewUseCase{
		repo:    repo,
		audit:   audit,
		authz:   authz,
		catalog: catalog,
		now:     time.Now,
	}
}

func (u *ReviewUseCase) Catalog() []entities.Item {
	return u.catalog
}

func (u *ReviewUseCase) SubmitSelf(ctx context.Context, cmd SubmitSelfCommand) (entities.Case, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return entities.Case{}, ErrMissingName
	}
	if !cmd.Role.Valid() {
		return entities.Case{}, ErrInvalidRole
	}

	now := u.now().UTC()
	date := strings.TrimSpace(cmd.Date)
	if date == "" {
		date = now.Format("2006-01-02")
	}

	// Self is its own reference stage.
	scores := scoring.ForceNotApplicable(cmd.Scores, cmd.Scores)
	total, max := scoring.Fold(scores, scores, u.catalog)

	c := entities.Case{
		Name:          name,
		Rank:          strings.TrimSpace(cmd.Rank),
		Date:          date,
		Status:        entities.InitialStatus(cmd.Role),
		Routing:       strings.TrimSpace(cmd.Routing),
		SubmitterRole: cmd.Role,
		Approver:      strings.TrimSpace(cmd.Approver),
		SubmittedAt:   now,
		Stages: map[entities.Stage]entities.StageRecord{
			entities.StageSelf: {
				Scores:      scores,
				Total:       total,
				Max:         max,
				Comment:     cmd.Comment,
				SubmittedAt: now,
			},
		},
	}

	created, err := u.repo.Create(ctx, c)
	if err != nil {
		log.Printf("[review][usecase] self submission rejected name=%s date=%s err=%v", name, date, err)
		return entities.Case{}, err
	}
	log.Printf("[review][usecase] case created name=%s date=%s role=%s status=%s total=%d/%d", name, date, cmd.Role, created.Status, total, max)

	u.recordAudit(ctx, created, entities.StageSelf, name, total, max)
	return created, nil
}

func (u *ReviewUseCase) SubmitReview(ctx context.Context, stage entities.Stage, cmd ReviewCommand) (entities.Case, error) {
	if stage != entities.StageInitial && stage != entities.StageSecondary {
		return entities.Case{}, ErrInvalidStage
	}
	return u.submitStage(ctx, stage, cmd, "")
}

func (u *ReviewUseCase) SubmitFinal(ctx context.Context, cmd FinalCommand) (entities.Case, error) {
	if !cmd.Action.Valid() {
		return entities.Case{}, ErrInvalidFinalAction
	}
	return u.submitStage(ctx, entities.StageFinal, cmd.ReviewCommand, cmd.Action)
}

// submitStage is the shared review path: authorize, locate, gate on status,
// fold against the self reference, then persist the whole delta in one
// batched write. Nothing is written on any validation failure.
func (u *ReviewUseCase) submitStage(ctx context.Context, stage entities.Stage, cmd ReviewCommand, action entities.FinalAction) (entities.Case, error) {
	actor, err := u.authorize(cmd.Token, stage)
	if err != nil {
		return entities.Case{}, err
	}

	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return entities.Case{}, ErrMissingName
	}
	if strings.TrimSpace(cmd.Date) == "" {
		return entities.Case{}, ErrMissingDate
	}

	c, err := u.repo.GetByKey(ctx, name, cmd.Date)
	if err != nil {
		return entities.Case{}, err
	}

	expected, ok := entities.PendingStatusFor(stage)
	if !ok {
		return entities.Case{}, ErrInvalidStage
	}
	if c.Status != expected {
		log.Printf("[review][usecase] stage %s rejected for case name=%s date=%s status=%s", stage, c.Name, c.Date, c.Status)
		return entities.Case{}, ErrInvalidCaseState
	}

	// The self stage is the reference regardless of what the entry form
	// allowed through.
	reference := c.Stages[entities.StageSelf].Scores
	forced := scoring.ForceNotApplicable(cmd.Scores, reference)
	total, max := scoring.Fold(forced, reference, u.catalog)

	next, _ := entities.NextStatus(stage)
	upd := interfaces.StageUpdate{
		Stage: stage,
		Record: entities.StageRecord{
			Scores:      forced,
			Total:       total,
			Max:         max,
			Comment:     cmd.Comment,
			Reviewer:    actor,
			SubmittedAt: u.now().UTC(),
		},
		Status: next,
	}
	if stage == entities.StageFinal {
		upd.Action = action
		upd.Grade = entities.GradeFor(total, max)
	}

	if err := u.repo.UpdateStage(ctx, c.Row, upd); err != nil {
		log.Printf("[review][usecase] stage %s persist failed name=%s date=%s err=%v", stage, c.Name, c.Date, err)
		return entities.Case{}, err
	}

	c.Status = next
	c.Stages[stage] = upd.Record
	if stage == entities.StageFinal {
		c.FinalAction = upd.Action
		c.Grade = upd.Grade
	}
	log.Printf("[review][usecase] stage %s submitted name=%s date=%s reviewer=%s total=%d/%d status=%s", stage, c.Name, c.Date, actor, total, max, next)

	u.recordAudit(ctx, c, stage, actor, total, max)
	return c, nil
}

func (u *ReviewUseCase) GetCase(ctx context.Context, name, date string) (entities.Case, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entities.Case{}, ErrMissingName
	}
	if strings.TrimSpace(date) == "" {
		return entities.Case{}, ErrMissingDate
	}
	return u.repo.GetByKey(ctx, name, date)
}

// ListCases returns cases in row order. A non-empty routing narrows the
// list to cases routed to that reviewer, so each reviewer sees their own
// queue rather than the whole table.
func (u *ReviewUseCase) ListCases(ctx context.Context, routing string) ([]entities.Case, error) {
	cases, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	routing = strings.TrimSpace(routing)
	if routing == "" {
		return cases, nil
	}

	filtered := make([]entities.Case, 0, len(cases))
	for _, c := range cases {
		if c.Routing == routing {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func (u *ReviewUseCase) authorize(token string, stage entities.Stage) (string, error) {
	if u.authz == nil {
		return "", errors.New("stage authorizer not configured")
	}
	actor, err := u.authz.Authorize(token, stage)
	if err != nil {
		log.Printf("[review][usecase] authorization failed stage=%s err=%v", stage, err)
		return "", ErrUnauthorizedStage
	}
	return actor, nil
}

// recordAudit appends a trail entry for a submission that already landed.
// The audit store is a different system; its failures are logged, never
// surfaced.
func (u *ReviewUseCase) recordAudit(ctx context.Context, c entities.Case, stage entities.Stage, actor string, total, max int) {
	if u.audit == nil {
		return
	}
	a := entities.SubmissionAudit{
		ID:         uuid.NewString(),
		CaseName:   c.Name,
		CaseDate:   c.Date,
		Stage:      stage,
		Actor:      actor,
		Total:      total,
		Max:        max,
		Status:     c.Status,
		RecordedAt: u.now().UTC(),
	}
	if _, err := u.audit.Record(ctx, a); err != nil {
		log.Printf("[review][usecase] audit record failed case=%s|%s stage=%s err=%v", c.Name, c.Date, stage, err)
	}
}
