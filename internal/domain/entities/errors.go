package entities

import "errors"

// Persistence-level errors shared by the repository implementations and the
// use cases. The natural key is not unique by construction, so ambiguity is
// an explicit, reportable condition rather than something to resolve
// silently.
var (
	ErrCaseNotFound      = errors.New("case not found")
	ErrAmbiguousCaseKey  = errors.New("ambiguous case key: multiple rows match")
	ErrCaseAlreadyExists = errors.New("case already exists for this name and date")
)
