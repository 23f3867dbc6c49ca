package auth

import (
	"os"

	"clinic_review/internal/domain/entities"
)

// NewServiceFromEnv reads the signing secret and per-stage passphrases from
// the environment. Stages without a configured passphrase stay locked.
func NewServiceFromEnv() (*Service, error) {
	passphrases := map[entities.Stage]string{}
	for stage, key := range map[entities.Stage]string{
		entities.StageInitial:   "REVIEW_PASS_INITIAL",
		entities.StageSecondary: "REVIEW_PASS_SECONDARY",
		entities.StageFinal:     "REVIEW_PASS_FINAL",
	} {
		if v := os.Getenv(key); v != "" {
			passphrases[stage] = v
		}
	}
	return NewService(os.Getenv("AUTH_SECRET"), passphrases)
}
