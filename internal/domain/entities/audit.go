package entities

import "time"

// SubmissionAudit is the append-only trail entry recorded after every
// successful stage submission.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (case_key-index): case_key = "<name>|<date>"

type SubmissionAudit struct {
	ID         string     `json:"id"`
	CaseName   string     `json:"case_name"`
	CaseDate   string     `json:"case_date"`
	Stage      Stage      `json:"stage"`
	Actor      string     `json:"actor"`
	Total      int        `json:"total"`
	Max        int        `json:"max"`
	Status     CaseStatus `json:"status"`
	RecordedAt time.Time  `json:"recorded_at"`
}

// CaseKey is the GSI partition value linking audit entries to a case.
func (a SubmissionAudit) CaseKey() string {
	return a.CaseName + "|" + a.CaseDate
}
