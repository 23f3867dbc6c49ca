// Package auth issues and validates per-stage capability tokens. Reviewer
// tiers unlock their stage with a configured passphrase and receive a
// short-lived token scoped to exactly that stage; the workflow engine only
// ever sees the "authorized actor for stage X" predicate.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"clinic_review/internal/domain/entities"
	"clinic_review/internal/usecase/interfaces"
)

var (
	ErrMissingSecret = errors.New("missing AUTH_SECRET")
	ErrUnknownStage  = errors.New("no passphrase configured for stage")
	ErrBadPassphrase = errors.New("passphrase does not match")
	ErrStageMismatch = errors.New("token not valid for this stage")
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingActor  = errors.New("missing actor name")
)

const defaultTokenTTL = 12 * time.Hour

type Claims struct {
	Actor string `json:"actor"`
	Stage string `json:"stage"`
	jwt.RegisteredClaims
}

type Service struct {
	secret      []byte
	ttl         time.Duration
	passphrases map[entities.Stage]string
}

var _ interfaces.IStageAuthorizer = (*Service)(nil)

// NewService builds an authorizer from a signing secret and the per-stage
// passphrase table.
func NewService(secret string, passphrases map[entities.Stage]string) (*Service, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &Service{
		secret:      []byte(secret),
		ttl:         defaultTokenTTL,
		passphrases: passphrases,
	}, nil
}

// GrantStage exchanges a stage passphrase for a capability token naming the
// actor and the single stage it unlocks.
func (s *Service) GrantStage(stage entities.Stage, actor, passphrase string) (string, error) {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return "", ErrMissingActor
	}
	want, ok := s.passphrases[stage]
	if !ok || want == "" {
		return "", ErrUnknownStage
	}
	if passphrase != want {
		return "", ErrBadPassphrase
	}

	now := time.Now()
	claims := Claims{
		Actor: actor,
		Stage: string(stage),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Authorize validates a capability token against a stage and returns the
// actor it was granted to.
func (s *Service) Authorize(tokenStr string, stage entities.Stage) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Stage != string(stage) {
		return "", ErrStageMismatch
	}
	return claims.Actor, nil
}
