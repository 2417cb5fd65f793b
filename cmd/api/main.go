package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/loveapp-api/internal/catalog"
	"github.com/yourusername/loveapp-api/internal/config"
	"github.com/yourusername/loveapp-api/internal/handler"
	"github.com/yourusername/loveapp-api/internal/middleware"
	pgRepo "github.com/yourusername/loveapp-api/internal/repository/postgres"
	"github.com/yourusername/loveapp-api/internal/service"
	ws "github.com/yourusername/loveapp-api/internal/websocket"
	"github.com/yourusername/loveapp-api/pkg/auth"
	"github.com/yourusername/loveapp-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Redis нужен только rate limiter'у: без него приложение работает,
	// но лимиты на auth-эндпоинтах отключены
	var rateLimiter *middleware.RateLimiter
	if cfg.Redis.Addr != "" {
		redisClient, err := database.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Printf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		log.Println("Successfully connected to Redis")
		rateLimiter = middleware.NewRateLimiter(redisClient)
	} else {
		log.Println("[Main] Redis не настроен, rate limiting отключен")
		rateLimiter = middleware.NewRateLimiter(nil)
	}

	// Загружаем каталог тестов
	testCatalog, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Printf("Failed to load test catalog: %v", err)
		os.Exit(1)
	}
	log.Printf("[Main] Каталог тестов загружен: %d тестов", testCatalog.Len())

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	coupleRepo := pgRepo.NewCoupleRepo(db)
	testRepo := pgRepo.NewTestRepo(db)
	resultRepo := pgRepo.NewResultRepo(db)
	messageRepo := pgRepo.NewMessageRepo(db)

	// Инициализируем JWT сервис
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationMin)
	if err != nil {
		log.Printf("Failed to initialize JWT service: %v", err)
		os.Exit(1)
	}

	// Запускаем WebSocket hub
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := ws.NewHub()
	go hub.Run(ctx)

	// Инициализируем сервисы
	authService, err := service.NewAuthService(userRepo, jwtService)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}
	coupleService, err := service.NewCoupleService(coupleRepo, userRepo, resultRepo, messageRepo)
	if err != nil {
		log.Printf("Failed to initialize CoupleService: %v", err)
		os.Exit(1)
	}
	quizService, err := service.NewQuizService(testCatalog, testRepo, resultRepo, userRepo, hub)
	if err != nil {
		log.Printf("Failed to initialize QuizService: %v", err)
		os.Exit(1)
	}
	messageService, err := service.NewMessageService(messageRepo, userRepo, hub)
	if err != nil {
		log.Printf("Failed to initialize MessageService: %v", err)
		os.Exit(1)
	}
	mediaService, err := service.NewMediaService(userRepo, cfg.Upload.AvatarDir)
	if err != nil {
		log.Printf("Failed to initialize MediaService: %v", err)
		os.Exit(1)
	}

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService, mediaService)
	coupleHandler := handler.NewCoupleHandler(coupleService)
	quizHandler := handler.NewQuizHandler(quizService)
	messageHandler := handler.NewMessageHandler(messageService)
	wsHandler := handler.NewWSHandler(hub, jwtService, userRepo)

	authMiddleware := middleware.NewAuthMiddleware(jwtService, userRepo)

	// Настраиваем роутер
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Статика для загруженных аватаров
	router.Static("/uploads/avatars", cfg.Upload.AvatarDir)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	authGroup := router.Group("")
	authGroup.Use(rateLimiter.Limit(middleware.AuthRateLimitConfig()))
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	protected := router.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/profile", authHandler.Profile)
		protected.POST("/upload-avatar", authHandler.UploadAvatar)

		protected.POST("/couples/create", coupleHandler.Create)
		protected.POST("/couples/join", coupleHandler.Join)
		protected.GET("/couples/my", coupleHandler.My)
		protected.GET("/stats", coupleHandler.Stats)

		protected.GET("/tests/available", quizHandler.Available)
		protected.POST("/tests/start", quizHandler.Start)
		protected.POST("/tests/:id/submit", middleware.ExtractUintParam("id", "testID"), quizHandler.Submit)
		protected.GET("/tests/results", quizHandler.Results)

		protected.POST("/messages/send", messageHandler.Send)
		protected.GET("/messages", messageHandler.List)
	}

	router.GET("/ws", wsHandler.Connect)

	// Настраиваем HTTP сервер
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в отдельной горутине
	go func() {
		log.Printf("Сервер запущен на порту %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Ошибка запуска сервера: %v", err)
			os.Exit(1)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Завершение работы сервера...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Ошибка при остановке сервера: %v", err)
	}

	log.Println("Сервер остановлен")
}
