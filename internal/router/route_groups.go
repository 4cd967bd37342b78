package router

import (
	"merchandising_backend/internal/handlers"
	"merchandising_backend/internal/middleware"
	"merchandising_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupPublicAuthRoutes sets up the unauthenticated auth routes.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/login", authHandler.Login)
	group.POST("/refresh-token", authHandler.RefreshToken)
}

// SetupAuthenticatedAuthRoutes sets up the auth routes that require a session.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("/me", authHandler.GetCurrentUser)
}

// SetupMerchRoutes sets up the merchandiser mission-workflow routes.
func SetupMerchRoutes(
	authenticatedGroup *gin.RouterGroup,
	missionHandler *handlers.MissionHandler,
	realisationHandler *handlers.RealisationHandler,
	photoHandler *handlers.PhotoHandler,
) {
	merchRoutes := authenticatedGroup.Group("")
	merchRoutes.Use(middleware.RoleAuthMiddleware(models.RoleMerchandiser))
	{
		merchRoutes.GET("/merch/dashboard", missionHandler.MerchDashboard)

		merchRoutes.POST("/missions/:id/start", missionHandler.StartMission)
		merchRoutes.GET("/missions/:id/realisation", realisationHandler.GetRealisationForm)
		merchRoutes.POST("/missions/:id/upload-photo", photoHandler.UploadPhoto)
		merchRoutes.POST("/missions/:id/save-client", realisationHandler.SaveClientProducts)
		merchRoutes.POST("/missions/:id/save-concurrents", realisationHandler.SaveConcurrentProducts)
		merchRoutes.POST("/missions/:id/finish", missionHandler.FinishMission)
		merchRoutes.POST("/missions/:id/fail", missionHandler.FailMission)
		merchRoutes.GET("/missions/:id/photos", photoHandler.ListPhotos)
	}
}

// SetupSupervisionRoutes sets up planning and catalog administration routes.
func SetupSupervisionRoutes(
	authenticatedGroup *gin.RouterGroup,
	missionHandler *handlers.MissionHandler,
	realisationHandler *handlers.RealisationHandler,
	catalogHandler *handlers.CatalogHandler,
	authHandler *handlers.AuthHandler,
) {
	supRoutes := authenticatedGroup.Group("")
	supRoutes.Use(middleware.RoleAuthMiddleware(models.RoleSuperviseur))
	{
		supRoutes.POST("/missions", missionHandler.CreateMission)
		supRoutes.GET("/missions", missionHandler.GetMissions)
		supRoutes.GET("/missions/:id/realisations", realisationHandler.MissionRealisations)

		supRoutes.POST("/users", authHandler.CreateUser)

		supRoutes.POST("/clients", catalogHandler.CreateClient)
		supRoutes.GET("/clients", catalogHandler.GetClients)
		supRoutes.POST("/pdvs", catalogHandler.CreatePDV)
		supRoutes.GET("/pdvs", catalogHandler.GetPDVs)
		supRoutes.POST("/concurrents", catalogHandler.CreateConcurrent)
		supRoutes.GET("/concurrents", catalogHandler.GetConcurrents)
		supRoutes.POST("/projets", catalogHandler.CreateProjet)
		supRoutes.GET("/projets", catalogHandler.GetProjets)
		supRoutes.POST("/produits-client", catalogHandler.CreateClientProduct)
		supRoutes.POST("/produits-concurrent", catalogHandler.CreateConcurrentProduct)
	}
}

// SetupClientRoutes sets up the client reporting routes.
func SetupClientRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	clientRoutes := authenticatedGroup.Group("/client")
	clientRoutes.Use(middleware.RoleAuthMiddleware(models.RoleClient))
	{
		clientRoutes.GET("/dashboard", reportHandler.ClientDashboard)
	}
}
