package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	request "clinic_review/internal/adapter/http/dto/request"
	response "clinic_review/internal/adapter/http/dto/response"
	"clinic_review/internal/domain/entities"
	"clinic_review/internal/usecase"
	"clinic_review/pkg"
	"clinic_review/pkg/retry"
)

var (
	errInvalidReviewPayload = pkg.NewDomainErrorSimple("INVALID_REVIEW_INPUT", "Invalid review payload", http.StatusBadRequest)
)

// ReviewHandler handles the submission endpoints of the approval workflow:
// the self-assessment that opens a case and the three reviewer stages that
// advance it.

type ReviewHandler struct {
	usecase usecase.IReviewUseCase
}

func NewReviewHandler(uc usecase.IReviewUseCase) *ReviewHandler {
	return &ReviewHandler{usecase: uc}
}

// SubmitSelf opens a new review case from a self-assessment.
func (h *ReviewHandler) SubmitSelf(c *gin.Context) {
	var payload request.SubmitSelfRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidReviewPayload.HTTPStatus, errInvalidReviewPayload.ToHTTPError())
		return
	}

	reviewCase, err := h.usecase.SubmitSelf(c.Request.Context(), usecase.SubmitSelfCommand{
		Name:     payload.Name,
		Rank:     payload.Rank,
		Date:     payload.Date,
		Role:     payload.ResolveRole(),
		Routing:  payload.Routing,
		Approver: payload.Approver,
		Scores:   payload.Scores.Resolve(),
		Comment:  payload.Comment,
	})
	if err != nil {
		appErr := mapReviewError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromCase(reviewCase))
}

// SubmitInitial records the first-tier manager's review.
func (h *ReviewHandler) SubmitInitial(c *gin.Context) {
	h.patchReviewStage(c, entities.StageInitial)
}

// SubmitSecondary records the senior manager's review.
func (h *ReviewHandler) SubmitSecondary(c *gin.Context) {
	h.patchReviewStage(c, entities.StageSecondary)
}

func (h *ReviewHandler) patchReviewStage(c *gin.Context, stage entities.Stage) {
	var payload request.ReviewRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidReviewPayload.HTTPStatus, errInvalidReviewPayload.ToHTTPError())
		return
	}

	reviewCase, err := h.usecase.SubmitReview(c.Request.Context(), stage, usecase.ReviewCommand{
		Token:   bearerToken(c),
		Name:    payload.Name,
		Date:    payload.Date,
		Scores:  payload.Scores.Resolve(),
		Comment: payload.Comment,
	})
	if err != nil {
		appErr := mapReviewError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromCase(reviewCase))
}

// SubmitFinal records the director's review and closes the case.
func (h *ReviewHandler) SubmitFinal(c *gin.Context) {
	var payload request.FinalRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidReviewPayload.HTTPStatus, errInvalidReviewPayload.ToHTTPError())
		return
	}

	reviewCase, err := h.usecase.SubmitFinal(c.Request.Context(), usecase.FinalCommand{
		ReviewCommand: usecase.ReviewCommand{
			Token:   bearerToken(c),
			Name:    payload.Name,
			Date:    payload.Date,
			Scores:  payload.Scores.Resolve(),
			Comment: payload.Comment,
		},
		Action: entities.FinalAction(strings.TrimSpace(payload.Action)),
	})
	if err != nil {
		appErr := mapReviewError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromCase(reviewCase))
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return strings.TrimSpace(header)
}

func mapReviewError(err error) *pkg.AppError {
	var unavailable *retry.StoreUnavailableError
	switch {
	case errors.Is(err, usecase.ErrMissingName),
		errors.Is(err, usecase.ErrMissingDate),
		errors.Is(err, usecase.ErrInvalidRole),
		errors.Is(err, usecase.ErrInvalidStage),
		errors.Is(err, usecase.ErrInvalidFinalAction):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnauthorizedStage):
		return pkg.NewDomainErrorSimple("UNAUTHORIZED_STAGE", "Not authorized for this review stage", http.StatusUnauthorized)
	case errors.Is(err, entities.ErrCaseNotFound):
		return pkg.NewDomainErrorSimple("CASE_NOT_FOUND", "Review case not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrCaseAlreadyExists):
		return pkg.NewDomainErrorSimple("CASE_ALREADY_EXISTS", "A case already exists for this name and date", http.StatusConflict)
	case errors.Is(err, entities.ErrAmbiguousCaseKey):
		return pkg.NewDomainErrorSimple("AMBIGUOUS_CASE_KEY", "More than one case matches this name and date", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidCaseState):
		return pkg.NewDomainErrorSimple("INVALID_CASE_STATE", "Case is not awaiting this review stage", http.StatusConflict)
	case errors.As(err, &unavailable):
		return pkg.NewDomainError("STORE_UNAVAILABLE", "Review store is unavailable", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
