package routes

import (
	"clinic_review/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathReviews = "/reviews"
	PathItems   = "/items"
	PathAuth    = "/auth"
)

func addReviewRoutes(rg *gin.RouterGroup, reviewHandler *handlers.ReviewHandler, caseHandler *handlers.CaseHandler, authHandler *handlers.AuthHandler) {
	reviews := rg.Group(PathReviews)
	{
		reviews.POST("", reviewHandler.SubmitSelf)
		reviews.PATCH("/initial", reviewHandler.SubmitInitial)
		reviews.PATCH("/secondary", reviewHandler.SubmitSecondary)
		reviews.PATCH("/final", reviewHandler.SubmitFinal)

		reviews.GET("", caseHandler.ListCases)
		reviews.GET("/case", caseHandler.GetCase)
	}

	rg.GET(PathItems, caseHandler.ListItems)

	auth := rg.Group(PathAuth)
	{
		auth.POST("/token", authHandler.IssueToken)
	}
}
