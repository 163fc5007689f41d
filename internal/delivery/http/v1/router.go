package v1

import (
	"net/http"

	"talentmatch-backend/config"
	"talentmatch-backend/internal/delivery/http/middleware"
	"talentmatch-backend/internal/delivery/http/response"
	"talentmatch-backend/internal/domain"
	"talentmatch-backend/internal/usecase"
	"talentmatch-backend/pkg/storage"
	"talentmatch-backend/pkg/upload"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	WizardUC       domain.WizardUsecase
	ConsultantUC   domain.ConsultantUsecase
	CvAnalysisUC   domain.CvAnalysisUsecase
	HealthUC       usecase.HealthUsecase
	Storage        *storage.Client
	PhotoValidator *upload.Validator
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.GlobalRateLimitMiddleware())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", deps.HealthUC.Check(c))
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config.JWTSecret, deps.Config.AuthDevBypass))
	{
		NewWizardHandler(protected, deps.WizardUC)
		NewConsultantHandler(protected, deps.ConsultantUC)

		// File endpoints get a tighter rate limit
		uploads := protected.Group("")
		uploads.Use(middleware.UploadRateLimitMiddleware())
		{
			NewCvAnalysisHandler(uploads, deps.CvAnalysisUC)
			if deps.Storage != nil {
				NewUploadHandler(uploads, deps.Storage, deps.PhotoValidator, deps.Config.PhotoResizeMaxPixels)
			}
		}
	}

	return r
}
