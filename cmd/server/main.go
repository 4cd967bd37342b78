package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"merchandising_backend/internal/blobstore"
	"merchandising_backend/internal/database"
	routerpkg "merchandising_backend/internal/router"
	"merchandising_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	utils.InitLogger()
	utils.InitJWTSecret()

	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "merch_user")
	dbPassword := utils.Getenv("DB_PASSWORD", "merch_password")
	dbName := utils.Getenv("DB_NAME", "merchandising_db")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")
	dbSchemaPath := utils.Getenv("DB_SCHEMA_PATH", "db_schema.sql")

	database.InitDB(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode, dbSchemaPath)
	utils.LogInfo("Database initialized", map[string]interface{}{"configured_from_env": true})

	port := utils.Getenv("PORT", "8080")

	blobs, mediaDir := buildBlobStore(port)

	engine := gin.Default()
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Locally stored photo evidence is served from /media.
	if mediaDir != "" {
		engine.Static("/media", mediaDir)
	}

	routerpkg.Setup(engine, database.GetDB(), blobs)

	utils.LogInfo("Server starting", map[string]interface{}{"port": port})
	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildBlobStore picks the photo storage backend from the environment:
// BLOB_BACKEND=http uploads to a remote image service, anything else writes
// under MEDIA_DIR and serves through the /media static route. The second
// return value is the local media directory, empty for the remote backend.
func buildBlobStore(port string) (blobstore.Store, string) {
	if utils.Getenv("BLOB_BACKEND", "disk") == "http" {
		uploadURL := os.Getenv("BLOB_UPLOAD_URL")
		if uploadURL == "" {
			log.Fatal("BLOB_BACKEND=http requires BLOB_UPLOAD_URL")
		}
		return blobstore.NewHTTPStore(uploadURL, os.Getenv("BLOB_UPLOAD_PRESET")), ""
	}

	mediaDir := utils.Getenv("MEDIA_DIR", "./media")
	baseURL := utils.Getenv("MEDIA_BASE_URL", "http://localhost:"+port+"/media")
	store, err := blobstore.NewDiskStore(mediaDir, baseURL)
	if err != nil {
		log.Fatalf("Failed to initialize blob storage: %v", err)
	}
	return store, mediaDir
}
