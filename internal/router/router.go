package router

import (
	"database/sql"

	"merchandising_backend/internal/blobstore"
	"merchandising_backend/internal/handlers"
	"merchandising_backend/internal/middleware"
	"merchandising_backend/internal/repositories"
	"merchandising_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, blobs blobstore.Store) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)
	pdvRepo := repositories.NewPDVRepository(db)
	productRepo := repositories.NewProductRepository(db)
	missionRepo := repositories.NewMissionRepository(db)
	realisationRepo := repositories.NewRealisationRepository(db)
	photoRepo := repositories.NewPhotoRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, db)
	catalogService := services.NewCatalogService(catalogRepo, pdvRepo, productRepo, db)
	missionService := services.NewMissionService(missionRepo, pdvRepo, userRepo, db)
	realisationService := services.NewRealisationService(realisationRepo, missionRepo, productRepo, catalogService, db)
	photoService := services.NewPhotoService(photoRepo, missionRepo, blobs, db)
	reportService := services.NewReportService(photoRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	missionHandler := handlers.NewMissionHandler(missionService)
	realisationHandler := handlers.NewRealisationHandler(realisationService)
	photoHandler := handlers.NewPhotoHandler(photoService)
	reportHandler := handlers.NewReportHandler(reportService)

	apiV1 := engine.Group("/api/v1")

	// Public authentication routes
	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	// Authenticated routes
	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupMerchRoutes(authenticated, missionHandler, realisationHandler, photoHandler)
		SetupSupervisionRoutes(authenticated, missionHandler, realisationHandler, catalogHandler, authHandler)
		SetupClientRoutes(authenticated, reportHandler)
	}
}
