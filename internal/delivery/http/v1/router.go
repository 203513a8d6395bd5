package v1

import (
	"net/http"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/storage"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	UserUC        domain.UserUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	HealthUC      usecase.HealthUsecase
	Resumes       storage.ResumeStorage
	Realtime      http.Handler // websocket endpoint
	Audit         *security.AuditLogger
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	cfg := deps.Config

	// Global Middlewares
	r.Use(middleware.CORS(cfg.ClientURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction(), cfg.SessionCookieName))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Session(deps.AuthUC, cfg.SessionCookieName))

	healthUC := deps.HealthUC
	if healthUC == nil {
		healthUC = usecase.NewHealthUsecase(nil)
	}
	r.GET("/health", func(c *gin.Context) {
		status, ok := healthUC.Check(c.Request.Context())
		if !ok {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if deps.Realtime != nil {
		r.GET("/ws", gin.WrapH(deps.Realtime))
	}

	api := r.Group("/api")

	users := api.Group("/users")
	NewAuthHandler(users, deps.AuthUC, cfg, deps.Audit)
	NewUserHandler(users, deps.UserUC)

	jobs := api.Group("/jobs", middleware.RequireAuth())
	NewJobHandler(jobs, deps.JobUC, deps.Audit)
	NewApplicationHandler(jobs, deps.ApplicationUC, deps.Resumes, cfg.MaxUploadBytes(), deps.Audit)

	uploads := r.Group("/uploads", middleware.RequireAuth())
	NewResumeHandler(uploads, deps.Resumes)

	return r
}
