package api

import (
	"github.com/gin-gonic/gin"

	"github.com/soleofit/soleo_go_server/config"
	"github.com/soleofit/soleo_go_server/internal/api/handler"
	"github.com/soleofit/soleo_go_server/internal/api/middleware"
)

type Router struct {
	authHandler       *handler.AuthHandler
	userHandler       *handler.UserHandler
	membershipHandler *handler.MembershipHandler
	paymentHandler    *handler.PaymentHandler
	catalogHandler    *handler.CatalogHandler
	workoutHandler    *handler.WorkoutHandler
	websocketHandler  *handler.WebSocketHandler
	cfg               *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	membershipHandler *handler.MembershipHandler,
	paymentHandler *handler.PaymentHandler,
	catalogHandler *handler.CatalogHandler,
	workoutHandler *handler.WorkoutHandler,
	websocketHandler *handler.WebSocketHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:       authHandler,
		userHandler:       userHandler,
		membershipHandler: membershipHandler,
		paymentHandler:    paymentHandler,
		catalogHandler:    catalogHandler,
		workoutHandler:    workoutHandler,
		websocketHandler:  websocketHandler,
		cfg:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// WebSocket
		api.GET("/ws", r.websocketHandler.Handle)

		// Público - autenticación
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
		}

		// Público - catálogo de planes
		api.GET("/memberships", r.membershipHandler.ListPlans)
		api.GET("/memberships/:id", r.membershipHandler.GetPlan)
		api.GET("/memberships/:id/full-routine", r.membershipHandler.GetPlanFullRoutine)

		// Requiere sesión
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			// Perfil
			user := authenticated.Group("/user")
			{
				user.GET("/profile", r.userHandler.GetProfile)
				user.PUT("/profile", r.userHandler.UpdateProfile)
				user.POST("/photo", r.userHandler.UploadPhoto)
				user.POST("/device-token", r.userHandler.RegisterDeviceToken)
			}

			// Membresía propia
			membership := authenticated.Group("/membership")
			{
				membership.GET("/current", r.membershipHandler.GetCurrent)
				membership.GET("/status", r.membershipHandler.GetStatus)
				membership.GET("/history", r.membershipHandler.GetHistory)
			}

			// Pagos
			payments := authenticated.Group("/payments")
			{
				payments.POST("/create", r.paymentHandler.Create)
				payments.POST("/capture", r.paymentHandler.Capture)
				payments.POST("/cancel", r.paymentHandler.Cancel)
				payments.GET("/my", r.paymentHandler.ListMine)
			}

			// Catálogo (lectura)
			authenticated.GET("/muscle-groups", r.catalogHandler.ListMuscleGroups)
			authenticated.GET("/muscle-groups/:id", r.catalogHandler.GetMuscleGroup)
			authenticated.GET("/exercises", r.catalogHandler.ListExercises)
			authenticated.GET("/exercises/:id", r.catalogHandler.GetExercise)
			authenticated.GET("/routines", r.catalogHandler.ListRoutines)
			authenticated.GET("/routines/:id", r.catalogHandler.GetRoutine)

			// Entrenamientos
			workouts := authenticated.Group("/workouts")
			{
				workouts.POST("/start", r.workoutHandler.Start)
				workouts.GET("/current", r.workoutHandler.Current)
				workouts.POST("/finish", r.workoutHandler.Finish)
				workouts.GET("/today", r.workoutHandler.Today)
				workouts.GET("/today/progress", r.workoutHandler.TodayProgress)
				workouts.GET("/history", r.workoutHandler.History)
				workouts.GET("/statistics", r.workoutHandler.Statistics)
				workouts.GET("/:id", r.workoutHandler.Get)
				workouts.DELETE("/:id", r.workoutHandler.Delete)
				workouts.PUT("/:id/exercises", r.workoutHandler.UpdateExercises)
			}
		}

		// Administración
		admin := api.Group("/admin")
		admin.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			admin.POST("/register", middleware.Require(middleware.ActionRegisterAdmins), r.authHandler.RegisterAdmin)

			admin.GET("/clients", middleware.Require(middleware.ActionViewClients), r.userHandler.ListClients)
			admin.PUT("/users/:id/status", middleware.Require(middleware.ActionManageUsers), r.userHandler.UpdateStatus)
			admin.DELETE("/users/:id", middleware.Require(middleware.ActionManageUsers), r.userHandler.Delete)

			plans := admin.Group("/memberships")
			plans.Use(middleware.Require(middleware.ActionManagePlans))
			{
				plans.POST("", r.membershipHandler.CreatePlan)
				plans.PUT("/:id", r.membershipHandler.UpdatePlan)
				plans.DELETE("/:id", r.membershipHandler.DeletePlan)
			}
			admin.POST("/memberships/assign", middleware.Require(middleware.ActionAssignMemberships), r.membershipHandler.Assign)
			admin.GET("/memberships/history/:userId", middleware.Require(middleware.ActionViewClients), r.membershipHandler.GetClientHistory)

			adminPayments := admin.Group("/payments")
			adminPayments.Use(middleware.Require(middleware.ActionViewPayments))
			{
				adminPayments.GET("/history", r.paymentHandler.ListAll)
				adminPayments.GET("/stats", r.paymentHandler.Stats)
			}

			catalog := admin.Group("")
			catalog.Use(middleware.Require(middleware.ActionManageCatalog))
			{
				catalog.POST("/muscle-groups", r.catalogHandler.CreateMuscleGroup)
				catalog.PUT("/muscle-groups/:id", r.catalogHandler.UpdateMuscleGroup)
				catalog.DELETE("/muscle-groups/:id", r.catalogHandler.DeleteMuscleGroup)

				catalog.POST("/exercises", r.catalogHandler.CreateExercise)
				catalog.PUT("/exercises/:id", r.catalogHandler.UpdateExercise)
				catalog.DELETE("/exercises/:id", r.catalogHandler.DeleteExercise)

				catalog.POST("/routines", r.catalogHandler.CreateRoutine)
				catalog.PUT("/routines/:id/status", r.catalogHandler.UpdateRoutineStatus)
				catalog.POST("/routines/:id/sections", r.catalogHandler.AddRoutineSection)
				catalog.DELETE("/routines/:id/sections/:muscleGroupId", r.catalogHandler.RemoveRoutineSection)
			}
		}
	}

	return engine
}
