package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "github.com/williamkalogeropoulos/AegisBank/internal/adapter/http"
	"github.com/williamkalogeropoulos/AegisBank/internal/adapter/middleware"
	"github.com/williamkalogeropoulos/AegisBank/internal/adapter/repository/mysql"
	"github.com/williamkalogeropoulos/AegisBank/internal/config"
	"github.com/williamkalogeropoulos/AegisBank/internal/infrastructure/cache"
	"github.com/williamkalogeropoulos/AegisBank/internal/infrastructure/db"
	"github.com/williamkalogeropoulos/AegisBank/internal/logger"
	"github.com/williamkalogeropoulos/AegisBank/internal/usecase/account"
	"github.com/williamkalogeropoulos/AegisBank/internal/usecase/card"
	"github.com/williamkalogeropoulos/AegisBank/internal/usecase/loan"
	"github.com/williamkalogeropoulos/AegisBank/internal/usecase/transfer"
)

func main() {
	_ = godotenv.Load()
	logger.Init()
	defer func() { _ = logger.Log.Sync() }()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Log.Fatal("config", zap.Error(err))
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		logger.Log.Fatal("mysql", zap.Error(err))
	}
	if err := db.Migrate(gdb); err != nil {
		logger.Log.Fatal("migrate", zap.Error(err))
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.Log.Fatal("redis", zap.Error(err))
	}
	defer func() { _ = rdb.Close() }()

	accounts := mysql.NewAccountRepository(gdb)
	cards := mysql.NewCardRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	transfers := mysql.NewTransferRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	accountUC := account.NewUsecase(accounts, uow)
	cardUC := card.NewUsecase(cards, accounts, uow)
	loanUC := loan.NewUsecase(loans, uow)
	transferUC := transfer.NewUsecase(transfers, accounts, uow)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	authMW := middleware.Auth([]byte(cfg.JWTSecret))
	idemMW := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	httpadp.RegisterRoutes(e,
		httpadp.NewHandler(),
		httpadp.NewAccountHandler(accountUC),
		httpadp.NewCardHandler(cardUC),
		httpadp.NewLoanHandler(loanUC),
		httpadp.NewTransferHandler(transferUC),
		authMW, idemMW,
	)

	go func() {
		addr := ":" + cfg.AppPort
		logger.Log.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Log.Error("shutdown", zap.Error(err))
	}
	logger.Log.Info("stopped")
}
