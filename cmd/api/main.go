package main

import (
	"log"
	"os"

	"exam-data-api/config"
	"exam-data-api/controllers"
	"exam-data-api/middleware"
	"exam-data-api/routes"
	"exam-data-api/services"
	"exam-data-api/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize logging
	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	// Initialize database-backed document store
	db, err := config.OpenDB()
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	st, err := store.NewGormStore(db)
	if err != nil {
		log.Fatal("Failed to initialize document store: ", err)
	}
	defer st.Close()

	// Load the immutable exam catalog
	catalogPath := os.Getenv("EXAM_CATALOG_PATH")
	if catalogPath == "" {
		catalogPath = "data/exams.json"
	}
	catalogData, err := services.LoadCatalog(catalogPath)
	if err != nil {
		log.Fatal("Failed to load exam catalog: ", err)
	}
	catalog := services.NewCatalogService(catalogData)

	// Wire services
	audit := services.NewAuditService(st)
	notify := services.NewNotificationService()
	users := services.NewUserService(st, audit)
	exams := services.NewExamService(st, audit)
	assignments := services.NewAssignmentService(st, audit, notify, catalog)
	versions := services.NewVersionService(st)
	submissions := services.NewSubmissionService(st, audit, versions, assignments, notify)
	autofill := services.NewAutoFillService(catalog)
	quality := services.NewQualityService(st)
	export := services.NewExportService(st)
	dashboard := services.NewDashboardService(st)

	// Set Gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Add logging middleware
	router.Use(gin.Logger())

	// Add recovery middleware
	router.Use(gin.Recovery())

	// Add security headers middleware
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'")
		c.Next()
	})

	// Add CORS middleware
	router.Use(middleware.CORSMiddleware())

	// Setup routes
	routes.SetupRoutes(router, st, routes.Controllers{
		Auth:        controllers.NewAuthController(users),
		Users:       controllers.NewUserController(users),
		Exams:       controllers.NewExamController(catalog, exams),
		Assignments: controllers.NewAssignmentController(assignments, submissions),
		AutoFill:    controllers.NewAutoFillController(autofill),
		Submissions: controllers.NewSubmissionController(submissions),
		Versions:    controllers.NewVersionHistoryController(versions),
		Dashboard:   controllers.NewDashboardController(dashboard, quality, export, audit),
	})

	// Start server
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
