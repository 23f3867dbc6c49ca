package entities

import "time"

// CaseStatus represents the lifecycle of a review case.
//
// Domain notes:
//   - The review-service is the source of truth for case state.
//   - Status only ever advances; there is no path back to an earlier stage.
//   - The initial status after self-assessment depends on the submitter's
//     role: stages below the submitter's own tier are skipped entirely.

type CaseStatus string

const (
	CaseStatusDraft            CaseStatus = "DRAFT"
	CaseStatusPendingInitial   CaseStatus = "PENDING_INITIAL"
	CaseStatusPendingSecondary CaseStatus = "PENDING_SECONDARY"
	CaseStatusPendingFinal     CaseStatus = "PENDING_FINAL"
	CaseStatusCompleted        CaseStatus = "COMPLETED"
)

// Role is the position the self-assessing employee holds. It decides which
// review stages apply to the case.

type Role string

const (
	RoleStaff          Role = "staff"
	RoleInitialManager Role = "initial_manager"
	RoleSeniorManager  Role = "senior_manager"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStaff, RoleInitialManager, RoleSeniorManager:
		return true
	}
	return false
}

// Stage is one of the four scoring passes a case goes through.

type Stage string

const (
	StageSelf      Stage = "self"
	StageInitial   Stage = "initial"
	StageSecondary Stage = "secondary"
	StageFinal     Stage = "final"
)

// Stages lists all stages in workflow order.
func Stages() []Stage {
	return []Stage{StageSelf, StageInitial, StageSecondary, StageFinal}
}

// FinalAction is the outcome recommendation recorded at the final stage.

type FinalAction string

const (
	FinalActionPass     FinalAction = "pass"
	FinalActionObserve  FinalAction = "observe"
	FinalActionCoach    FinalAction = "coach"
	FinalActionReassign FinalAction = "reassign"
	FinalActionOther    FinalAction = "other"
)

func (a FinalAction) Valid() bool {
	switch a {
	case FinalActionPass, FinalActionObserve, FinalActionCoach, FinalActionReassign, FinalActionOther:
		return true
	}
	return false
}

// RowHandle is the positional handle of a case row in the backing table.
// Row 1 is the header, so the first case row is handle 2.

type RowHandle int

// StageRecord holds everything one scoring pass produced for a case.
type StageRecord struct {
	Scores      map[string]Score `json:"scores"`
	Total       int              `json:"total"`
	Max         int              `json:"max"`
	Comment     string           `json:"comment"`
	Reviewer    string           `json:"reviewer"`
	SubmittedAt time.Time        `json:"submitted_at"`
}

// Case is one reviewee's review cycle for one assessment date.
//
// Storage model (header-indexed table):
//   - Natural key: (Name, Date); no surrogate ID. The key is normalized
//     (trimmed name, canonical YYYY-MM-DD date) before any comparison.
//   - Rows are located by linear scan over the current snapshot, never by
//     position alone: the table is externally editable.

type Case struct {
	Name          string     `json:"name"`
	Rank          string     `json:"rank"`
	Date          string     `json:"date"`
	Status        CaseStatus `json:"status"`
	Routing       string     `json:"routing,omitempty"`
	SubmitterRole Role       `json:"submitter_role"`
	Approver      string     `json:"approver,omitempty"`

	Stages map[Stage]StageRecord `json:"stages"`

	FinalAction FinalAction `json:"final_action,omitempty"`
	Grade       string      `json:"grade,omitempty"`

	SubmittedAt time.Time `json:"submitted_at"`

	// Row is the positional handle resolved at load time. Zero when the
	// case has not been read from the store.
	Row RowHandle `json:"-"`
}

// StageExempt reports whether a stage never applies to this case because the
// submitter's role already starts higher in the approval chain. Exempt stages
// carry no totals; callers must present them as exempt rather than as zero.
func (c Case) StageExempt(stage Stage) bool {
	switch stage {
	case StageInitial:
		return c.SubmitterRole == RoleInitialManager || c.SubmitterRole == RoleSeniorManager
	case StageSecondary:
		return c.SubmitterRole == RoleSeniorManager
	}
	return false
}

// InitialStatus returns the status a new case starts in after the
// self-assessment, per the submitter's role.
func InitialStatus(role Role) CaseStatus {
	switch role {
	case RoleInitialManager:
		return CaseStatusPendingSecondary
	case RoleSeniorManager:
		return CaseStatusPendingFinal
	default:
		return CaseStatusPendingInitial
	}
}

// PendingStatusFor maps a review stage to the status a case must be in for
// that stage's submission to be accepted.
func PendingStatusFor(stage Stage) (CaseStatus, bool) {
	switch stage {
	case StageInitial:
		return CaseStatusPendingInitial, true
	case StageSecondary:
		return CaseStatusPendingSecondary, true
	case StageFinal:
		return CaseStatusPendingFinal, true
	}
	return "", false
}

// NextStatus returns the status a case advances to once the given review
// stage has been submitted.
func NextStatus(stage Stage) (CaseStatus, bool) {
	switch stage {
	case StageInitial:
		return CaseStatusPendingSecondary, true
	case StageSecondary:
		return CaseStatusPendingFinal, true
	case StageFinal:
		return CaseStatusCompleted, true
	}
	return "", false
}

// GradeFor derives the grade label written at the final stage from the final
// total against the maximum possible. An empty label means no grade could be
// derived (max of zero, i.e. every item was excluded).
func GradeFor(total, max int) string {
	if max <= 0 {
		return ""
	}
	pct := total * 100 / max
	switch {
	case pct >= 90:
		return "excellent"
	case pct >= 75:
		return "good"
	case pct >= 50:
		return "fair"
	default:
		return "needs_improvement"
	}
}
