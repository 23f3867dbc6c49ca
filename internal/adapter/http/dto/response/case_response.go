package response

import (
	"time"

	"clinic_review/internal/domain/entities"
)

// StageResponse is one scoring pass as presented to clients. Scores use the
// table's cell rendering, so a not-applicable item reads "N/A". An exempt
// stage never applies to the case and carries no totals.
type StageResponse struct {
	Exempt      bool              `json:"exempt"`
	Submitted   bool              `json:"submitted"`
	Scores      map[string]string `json:"scores,omitempty"`
	Total       int               `json:"total"`
	Max         int               `json:"max"`
	Comment     string            `json:"comment,omitempty"`
	Reviewer    string            `json:"reviewer,omitempty"`
	SubmittedAt *time.Time        `json:"submitted_at,omitempty"`
}

type CaseResponse struct {
	Name          string                   `json:"name"`
	Rank          string                   `json:"rank,omitempty"`
	Date          string                   `json:"date"`
	Status        string                   `json:"status"`
	Routing       string                   `json:"routing,omitempty"`
	SubmitterRole string                   `json:"submitter_role"`
	Approver      string                   `json:"approver,omitempty"`
	Stages        map[string]StageResponse `json:"stages"`
	FinalAction   string                   `json:"final_action,omitempty"`
	Grade         string                   `json:"grade,omitempty"`
	SubmittedAt   time.Time                `json:"submitted_at"`
}

func FromCase(c entities.Case) CaseResponse {
	stages := make(map[string]StageResponse, len(entities.Stages()))
	for _, stage := range entities.Stages() {
		if c.StageExempt(stage) {
			stages[string(stage)] = StageResponse{Exempt: true}
			continue
		}
		rec, ok := c.Stages[stage]
		if !ok {
			stages[string(stage)] = StageResponse{}
			continue
		}
		scores := make(map[string]string, len(rec.Scores))
		for item, s := range rec.Scores {
			scores[item] = entities.FormatScore(s)
		}
		sr := StageResponse{
			Submitted: true,
			Scores:    scores,
			Total:     rec.Total,
			Max:       rec.Max,
			Comment:   rec.Comment,
			Reviewer:  rec.Reviewer,
		}
		if !rec.SubmittedAt.IsZero() {
			t := rec.SubmittedAt
			sr.SubmittedAt = &t
		}
		stages[string(stage)] = sr
	}

	return CaseResponse{
		Name:          c.Name,
		Rank:          c.Rank,
		Date:          c.Date,
		Status:        string(c.Status),
		Routing:       c.Routing,
		SubmitterRole: string(c.SubmitterRole),
		Approver:      c.Approver,
		Stages:        stages,
		FinalAction:   string(c.FinalAction),
		Grade:         c.Grade,
		SubmittedAt:   c.SubmittedAt,
	}
}

func FromCases(cases []entities.Case) []CaseResponse {
	out := make([]CaseResponse, 0, len(cases))
	for _, c := range cases {
		out = append(out, FromCase(c))
	}
	return out
}
