package main

import (
	"log/slog"
	"os"

	"market/internal/config"
	"market/internal/domain/model"
	"market/internal/handler"
	"market/internal/infra/db"
	infraRepo "market/internal/infra/repository"
	"market/internal/logger"
	"market/internal/server"
	"market/internal/usecase"
	"market/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	// .envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Service: "market-api",
		Env:     cfg.GoEnv,
		Level:   os.Getenv("LOG_LEVEL"),
	})

	// DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Template{},
		&model.TemplateDetail{},
		&model.CartItem{},
	); err != nil {
		log.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	// Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenGormRepository(gormDB)
	templateRepo := infraRepo.NewTemplateGormRepository(gormDB)
	detailRepo := infraRepo.NewTemplateDetailGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)

	// Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo, rtRepo, validator.NewAuthValidator())
	templateUC := usecase.NewTemplateUsecase(templateRepo, detailRepo, validator.NewTemplateValidator())
	cartUC := usecase.NewCartUsecase(cartRepo, templateRepo, validator.NewCartValidator())

	// Handler生成
	authH := handler.NewAuthHandler(authUC)
	templateH := handler.NewTemplateHandler(templateUC)
	adminTemplateH := handler.NewAdminTemplateHandler(templateUC)
	cartH := handler.NewCartHandler(cartUC)

	// Server起動
	e := server.New(cfg, authH, templateH, adminTemplateH, cartH)

	addr := ":" + cfg.Port
	log.Info("starting server", "addr", addr)

	if err := e.Start(addr); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
