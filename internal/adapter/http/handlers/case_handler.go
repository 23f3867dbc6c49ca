package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	response "clinic_review/internal/adapter/http/dto/response"
	"clinic_review/internal/usecase"
	"clinic_review/pkg"
)

// CaseHandler serves the read side: case lookup, the full listing and the
// scoring catalog.

type CaseHandler struct {
	usecase usecase.IReviewUseCase
}

func NewCaseHandler(uc usecase.IReviewUseCase) *CaseHandler {
	return &CaseHandler{usecase: uc}
}

// GetCase looks a case up by its natural key, passed as query parameters.
func (h *CaseHandler) GetCase(c *gin.Context) {
	name := c.Query("name")
	date := c.Query("date")
	if name == "" || date == "" {
		c.JSON(http.StatusBadRequest, pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest).ToHTTPError())
		return
	}

	reviewCase, err := h.usecase.GetCase(c.Request.Context(), name, date)
	if err != nil {
		appErr := mapReviewError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromCase(reviewCase))
}

// ListCases returns cases in row order, optionally narrowed to one
// reviewer's queue via the routing query parameter.
func (h *CaseHandler) ListCases(c *gin.Context) {
	cases, err := h.usecase.ListCases(c.Request.Context(), c.Query("routing"))
	if err != nil {
		appErr := mapReviewError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromCases(cases))
}

// ListItems returns the scoring catalog.
func (h *CaseHandler) ListItems(c *gin.Context) {
	c.JSON(http.StatusOK, response.FromCatalog(h.usecase.Catalog()))
}
