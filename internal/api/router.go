package api

import (
	"service_reporting/internal/config"     // Application configuration
	"service_reporting/internal/domain"     // Roles
	"service_reporting/internal/middleware" // Auth, role and logging middleware
	"service_reporting/internal/services"   // Business services
	"service_reporting/internal/utils"      // Clock

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// Deps are the shared resources every handler is built from
type Deps struct {
	DB     *gorm.DB       // Database pool
	Redis  *redis.Client  // Report cache, nil disables caching
	Config *config.Config // Application configuration
	Clock  utils.Clock    // Business clock for the future-month rules
}

// NewRouter builds the gin engine with every route and its role policy
func NewRouter(d Deps) *gin.Engine {
	if d.Clock == nil {
		d.Clock = utils.SystemClock{}
	}
	auth := services.NewAuthService(d.DB, d.Config)
	submissions := services.NewSubmissionService(d.DB, d.Clock)
	reports := services.NewReportService(d.DB, d.Clock)
	profiles := services.NewProfileService(d.DB)

	r := gin.New()
	r.Use(gin.Recovery())                        // Recover from panics
	r.Use(middleware.RequestLogger())            // Request ID and access log
	r.Use(middleware.CORS(d.Config.CORSOrigins)) // Front-end origins

	r.GET("/healthz", HealthHandler(d.DB, d.Redis))

	// Public routes
	r.POST("/register", RegisterHandler(auth))
	r.POST("/login", LoginHandler(auth))

	// Every other route needs a token and re-reads the role from the database
	authed := r.Group("/", middleware.JWTAuthMiddleware(auth))
	departmentOnly := middleware.RequireRoles(auth, domain.RoleDepartmentUser)
	planningOnly := middleware.RequireRoles(auth, domain.RoleHeadOfPlanning)
	anyRole := middleware.RequireRoles(auth, domain.RoleDepartmentUser, domain.RoleHeadOfPlanning)

	authed.POST("/services", departmentOnly, SubmitServiceHandler(submissions, d.Redis))
	authed.GET("/services/history", departmentOnly, HistoryHandler(reports))
	authed.GET("/reports", planningOnly, YearlyReportHandler(reports, d.Redis, d.Clock, d.Config.ReportCacheTTL))
	authed.GET("/reports/export", planningOnly, ExportHandler(reports))
	authed.GET("/profile", anyRole, GetProfileHandler(profiles))
	authed.PUT("/profile/update", anyRole, UpdateProfileHandler(profiles))

	return r
}
