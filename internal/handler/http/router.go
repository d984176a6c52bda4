package http

import (
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	tollbooth_gin "github.com/didip/tollbooth_gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mihretgbr/applaud/internal/handler/http/middleware"
	usecasecontract "github.com/mihretgbr/applaud/internal/usecase/contract"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	likeHandler  *LikeHandler
	adminHandler *AdminHandler
	jwtSecret    string
	rateLimitRPS float64
}

func NewRouter(likeUsecase usecasecontract.ILikeUseCase,
	reconcileUsecase usecasecontract.IReconcileUseCase,
	migrateUsecase usecasecontract.IMigrateUseCase,
	jwtSecret string, rateLimitRPS float64) *Router {
	return &Router{
		likeHandler:  NewLikeHandler(likeUsecase),
		adminHandler: NewAdminHandler(reconcileUsecase, migrateUsecase),
		jwtSecret:    jwtSecret,
		rateLimitRPS: rateLimitRPS,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Session-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// rate limiter configuration
	lmt := tollbooth.NewLimiter(r.rateLimitRPS, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})
	lmt.SetMessage("Too many requests, please try again later.")
	router.Use(tollbooth_gin.LimitHandler(lmt))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Identity(r.jwtSecret))
	{
		v1.POST("/items/:itemID/like", r.likeHandler.ToggleLikeHandler)
		v1.GET("/likes/counts", r.likeHandler.GetCountsHandler)
		v1.GET("/likes/statuses", r.likeHandler.GetStatusesHandler)

		v1.POST("/identity/migrate", r.adminHandler.MigrateHandler)

		admin := v1.Group("/admin")
		{
			admin.POST("/reconcile", r.adminHandler.ReconcileAllHandler)
			admin.POST("/reconcile/:itemID", r.adminHandler.ReconcileOneHandler)
		}
	}
}
