package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	request "clinic_review/internal/adapter/http/dto/request"
	response "clinic_review/internal/adapter/http/dto/response"
	"clinic_review/internal/domain/entities"
	"clinic_review/pkg"
)

// StageTokenGranter exchanges a stage passphrase for a capability token.
type StageTokenGranter interface {
	GrantStage(stage entities.Stage, actor, passphrase string) (string, error)
}

// AuthHandler issues capability tokens for the reviewer stages.

type AuthHandler struct {
	granter StageTokenGranter
}

func NewAuthHandler(granter StageTokenGranter) *AuthHandler {
	return &AuthHandler{granter: granter}
}

// IssueToken validates a stage passphrase and returns a token scoped to that
// single stage.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var payload request.TokenRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest).ToHTTPError())
		return
	}

	stage := entities.Stage(strings.TrimSpace(payload.Stage))
	switch stage {
	case entities.StageInitial, entities.StageSecondary, entities.StageFinal:
	default:
		c.JSON(http.StatusBadRequest, pkg.NewDomainErrorSimple("INVALID_STAGE", "Unknown review stage", http.StatusBadRequest).ToHTTPError())
		return
	}

	token, err := h.granter.GrantStage(stage, payload.Actor, payload.Passphrase)
	if err != nil {
		appErr := pkg.NewDomainErrorSimple("UNAUTHORIZED", "Passphrase rejected for this stage", http.StatusUnauthorized)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.TokenResponse{
		Token: token,
		Stage: string(stage),
		Actor: strings.TrimSpace(payload.Actor),
	})
}
