package request

import (
	"strings"

	"clinic_review/internal/domain/entities"
)

// Score values arrive as JSON numbers; an explicit null marks an item as not
// applicable. Items absent from the map are treated as unscored.
type ScoreMap map[string]*int

func (m ScoreMap) Resolve() map[string]entities.Score {
	scores := make(map[string]entities.Score, len(m))
	for item, v := range m {
		if v == nil {
			scores[item] = entities.ScoreNotApplicable
			continue
		}
		scores[item] = entities.Score(*v)
	}
	return scores
}

// SubmitSelfRequest opens a review case with the submitter's self-assessment.
type SubmitSelfRequest struct {
	Name     string   `json:"name" binding:"required"`
	Rank     string   `json:"rank"`
	Date     string   `json:"date"`
	Role     string   `json:"role" binding:"required"`
	Routing  string   `json:"routing"`
	Approver string   `json:"approver"`
	Scores   ScoreMap `json:"scores" binding:"required"`
	Comment  string   `json:"comment"`
}

func (r SubmitSelfRequest) ResolveRole() entities.Role {
	return entities.Role(strings.TrimSpace(r.Role))
}

// ReviewRequest carries a reviewer's scores for an existing case. The stage
// is taken from the route, the actor from the capability token.
type ReviewRequest struct {
	Name    string   `json:"name" binding:"required"`
	Date    string   `json:"date" binding:"required"`
	Scores  ScoreMap `json:"scores" binding:"required"`
	Comment string   `json:"comment"`
}

// FinalRequest is a ReviewRequest plus the closing action for the case.
type FinalRequest struct {
	ReviewRequest
	Action string `json:"action" binding:"required"`
}

// TokenRequest exchanges a stage passphrase for a capability token.
type TokenRequest struct {
	Stage      string `json:"stage" binding:"required"`
	Actor      string `json:"actor" binding:"required"`
	Passphrase string `json:"passphrase" binding:"required"`
}
