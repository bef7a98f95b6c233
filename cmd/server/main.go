package main

import (
	"fmt"
	"log"
	"os"

	"github.com/soleofit/soleo_go_server/config"
	"github.com/soleofit/soleo_go_server/internal/api"
	"github.com/soleofit/soleo_go_server/internal/api/handler"
	"github.com/soleofit/soleo_go_server/internal/database"
	"github.com/soleofit/soleo_go_server/internal/pkg/cron"
	"github.com/soleofit/soleo_go_server/internal/pkg/oss"
	"github.com/soleofit/soleo_go_server/internal/pkg/paypal"
	"github.com/soleofit/soleo_go_server/internal/pkg/queue"
	"github.com/soleofit/soleo_go_server/internal/pkg/ws"
	"github.com/soleofit/soleo_go_server/internal/repository"
	"github.com/soleofit/soleo_go_server/internal/service"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	notifications := queue.New(rdb, cfg.Queue.NotificationQueue)

	wsHub := ws.NewHub()

	// OSS is optional; without credentials photo uploads stay disabled.
	var ossClient *oss.Client
	if cfg.OSS.Endpoint != "" && cfg.OSS.AccessKeyID != "" {
		ossClient, err = oss.NewClient(&cfg.OSS)
		if err != nil {
			log.Printf("Warning: Failed to init OSS client: %v", err)
		} else {
			log.Println("OSS client initialized")
		}
	}

	paypalClient := paypal.NewClient(&cfg.PayPal)

	userRepo := repository.NewUserRepository(db)
	planRepo := repository.NewPlanRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	deviceTokenRepo := repository.NewDeviceTokenRepository(db)
	muscleGroupRepo := repository.NewMuscleGroupRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	routineRepo := repository.NewRoutineRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)

	membershipService := service.NewMembershipService(db, userRepo, planRepo, historyRepo).
		WithNotifier(deviceTokenRepo, notifications, wsHub)
	authService := service.NewAuthService(userRepo, membershipService, cfg)
	userService := service.NewUserService(userRepo, deviceTokenRepo, ossClient, cfg)
	planService := service.NewPlanService(planRepo, userRepo)
	paymentService := service.NewPaymentService(paymentRepo, planRepo, userRepo, deviceTokenRepo, membershipService, paypalClient, notifications, wsHub)
	catalogService := service.NewCatalogService(muscleGroupRepo, exerciseRepo, routineRepo)
	workoutService := service.NewWorkoutService(workoutRepo, userRepo, planRepo, membershipService)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, cfg)
	membershipHandler := handler.NewMembershipHandler(planService, membershipService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	workoutHandler := handler.NewWorkoutHandler(workoutService)
	websocketHandler := handler.NewWebSocketHandler(wsHub, cfg.JWT.Secret)

	cronService := cron.NewService(userRepo, deviceTokenRepo, notifications, &cfg.Cron)
	cronService.Start()
	defer cronService.Stop()
	log.Println("Cron service started")

	router := api.NewRouter(
		authHandler,
		userHandler,
		membershipHandler,
		paymentHandler,
		catalogHandler,
		workoutHandler,
		websocketHandler,
		cfg,
	)
	engine := router.Setup()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
