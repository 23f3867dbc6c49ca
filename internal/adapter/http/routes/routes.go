package routes

import (
	"context"
	"log"
	"strconv"

	_ "clinic_review/docs" // This will be auto-generated
	"clinic_review/internal/adapter/http/handlers"
	repository2 "clinic_review/internal/adapter/persistence/repository"
	"clinic_review/internal/adapter/persistence/sheetstore"
	"clinic_review/internal/domain/entities"
	"clinic_review/internal/infrastructure/auth"
	"clinic_review/internal/infrastructure/database"
	"clinic_review/internal/infrastructure/sheets"
	"clinic_review/internal/usecase"
	"clinic_review/pkg/retry"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ctx := context.Background()

	sheetClient, err := sheets.NewClientFromEnv(ctx)
	if err != nil {
		log.Fatalf("failed to create sheets client: %v", err)
	}

	catalog := entities.DefaultCatalog()
	store := sheetstore.NewStore(sheetClient, retry.NewPolicy())
	caseRepo := sheetstore.NewCaseRepository(store, catalog)

	// Provision any columns the catalog needs before taking traffic. The
	// table may predate this build or have been edited by hand.
	if err := caseRepo.Migrate(ctx); err != nil {
		log.Fatalf("failed to migrate review table: %v", err)
	}

	ddb := database.ConnectDynamoDB()
	auditRepo := repository2.NewAuditDynamoRepository(ddb)

	authz, err := auth.NewServiceFromEnv()
	if err != nil {
		log.Fatalf("failed to configure stage authorizer: %v", err)
	}

	reviewUseCase := usecase.NewReviewUseCase(caseRepo, auditRepo, authz, catalog)

	reviewHandler := handlers.NewReviewHandler(reviewUseCase)
	caseHandler := handlers.NewCaseHandler(reviewUseCase)
	authHandler := handlers.NewAuthHandler(authz)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addReviewRoutes(v1, reviewHandler, caseHandler, authHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
