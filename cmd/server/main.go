package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"botpanel-backend/internal/auth"
	"botpanel-backend/internal/cache"
	"botpanel-backend/internal/config"
	"botpanel-backend/internal/database"
	"botpanel-backend/internal/db"
	"botpanel-backend/internal/handlers"
	h "botpanel-backend/internal/http"
	"botpanel-backend/internal/middleware"
	"botpanel-backend/internal/monitoring"
	"botpanel-backend/internal/repositories"
	"botpanel-backend/internal/services"
	"botpanel-backend/internal/storage"
	"botpanel-backend/internal/webhook"
	"botpanel-backend/migrations"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional; list endpoints fall back to the database
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache no disponible: %v", err)
	} else {
		log.Println("[Redis] Cache conectado")
	}

	log.Println("Ejecutando migraciones...")
	migrator := database.NewMigrator(pool, migrations.FS, ".")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Fallo al ejecutar migraciones: %v", err)
	}

	if cfg.Monitoring.Enabled {
		go monitoring.NewServer(pool, cfg.Monitoring.Port).Start()
	}

	sessions := auth.NewSessionManager(cfg)

	// Repositories
	accountRepo := repositories.NewAccountRepository(pool)
	moduloRepo := repositories.NewModuloRepository(pool)
	conversationRepo := repositories.NewConversationRepository(pool)
	questionRepo := repositories.NewQuestionRepository(pool)
	needRepo := repositories.NewNeedRepository(pool)
	bankRepo := repositories.NewBankRepository(pool)
	clubRepo := repositories.NewClubRepository(pool)
	rateRepo := repositories.NewRateRepository(pool)
	chatUserRepo := repositories.NewChatUserRepository(pool)
	formRepo := repositories.NewFormRepository(pool)

	// Media storage: S3/R2 when configured, local disk otherwise
	var mediaStore storage.MediaStore
	if cfg.S3.Bucket != "" {
		s3Store, err := storage.NewS3Store(cfg)
		if err != nil {
			log.Fatalf("Fallo al configurar almacenamiento S3: %v", err)
		}
		mediaStore = s3Store
		log.Printf("[Storage] Usando bucket S3 %s", cfg.S3.Bucket)
	} else {
		localStore, err := storage.NewLocalStore(cfg.Uploads.Dir)
		if err != nil {
			log.Fatalf("Fallo al preparar el directorio de uploads: %v", err)
		}
		mediaStore = localStore
		log.Printf("[Storage] Usando directorio local %s", cfg.Uploads.Dir)
	}

	// Services
	accountService := services.NewAccountService(accountRepo, sessions)
	totpService := services.NewTOTPService(accountRepo)
	conversationService := services.NewConversationService(conversationRepo, webhook.NewClient())
	questionService := services.NewQuestionService(questionRepo, cfg.Server.PublicBaseURL)
	needService := services.NewNeedService(needRepo)
	reportService := services.NewReportService(rateRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(accountService, totpService, sessions)
	accountHandler := handlers.NewAccountHandler(accountService)
	moduloHandler := handlers.NewModuloHandler(moduloRepo)
	bankHandler := handlers.NewBankHandler(bankRepo)
	clubHandler := handlers.NewClubHandler(clubRepo)
	rateHandler := handlers.NewRateHandler(rateRepo, reportService)
	needHandler := handlers.NewNeedHandler(needService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	conversationHandler := handlers.NewConversationHandler(conversationService)
	chatUserHandler := handlers.NewChatUserHandler(chatUserRepo)
	formHandler := handlers.NewFormHandler(formRepo)
	uploadHandler := handlers.NewUploadHandler(mediaStore, cfg.Server.PublicBaseURL, cfg.Uploads.MaxImageMB, cfg.Uploads.MaxVideoMB)
	mediaHandler := handlers.NewMediaHandler(mediaStore)
	totpHandler := handlers.NewTOTPHandler(totpService)
	healthHandler := handlers.NewHealthHandler(pool)

	authMiddleware := middleware.NewAuthMiddleware(sessions, accountRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		authHandler,
		accountHandler,
		moduloHandler,
		bankHandler,
		clubHandler,
		rateHandler,
		needHandler,
		questionHandler,
		conversationHandler,
		chatUserHandler,
		formHandler,
		uploadHandler,
		mediaHandler,
		totpHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Servidor corriendo en %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("El servidor no pudo iniciar: %v", err)
	}
}
