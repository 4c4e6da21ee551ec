package main

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	effectsadp "microlend-backend/internal/adapter/effects"
	httpadp "microlend-backend/internal/adapter/http"
	"microlend-backend/internal/adapter/middleware"
	"microlend-backend/internal/adapter/repository/mysql"
	rulesadp "microlend-backend/internal/adapter/rules"
	"microlend-backend/internal/config"
	"microlend-backend/internal/domain/assessment"
	"microlend-backend/internal/domain/effects"
	domainLoan "microlend-backend/internal/domain/loan"
	domainRepayment "microlend-backend/internal/domain/repayment"
	"microlend-backend/internal/infrastructure/cache"
	"microlend-backend/internal/infrastructure/db"
	"microlend-backend/internal/rules"
	lifecycleuc "microlend-backend/internal/usecase/lifecycle"
	loanuc "microlend-backend/internal/usecase/loan"
	repaymentuc "microlend-backend/internal/usecase/repayment"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.WithError(err).Fatal("mysql connection failed")
	}
	if err := gdb.AutoMigrate(
		&domainLoan.Loan{},
		&assessment.Assessment{},
		&domainRepayment.Repayment{},
		&effectsadp.AuditRecord{},
		&effectsadp.NotificationRecord{},
	); err != nil {
		log.WithError(err).Fatal("schema migration failed")
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.WithError(err).Fatal("redis connection failed")
	}

	caps := rules.SystemCaps{MaxLoanAmount: cfg.MaxLoanAmount, MaxTermMonths: cfg.MaxTermMonths}
	provider := rulesadp.NewRedisProvider(rdb, cfg.RulesRedisKey, caps, log)

	fx := effects.NewDispatcher(
		effectsadp.NewGormAuditSink(gdb),
		effectsadp.NewGormNotificationPublisher(gdb),
		effectsadp.NewStaticStaffDirectory(cfg.StaffIDs),
		log,
	)

	loanRepo := mysql.NewLoanRepository(gdb)
	repaymentRepo := mysql.NewRepaymentRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	loans := loanuc.NewUsecase(loanRepo, repaymentRepo, tx, provider, fx, log)
	lifecycle := lifecycleuc.NewUsecase(tx, provider, fx, log)
	repayments := repaymentuc.NewUsecase(loanRepo, repaymentRepo, tx, fx, log)

	h := httpadp.NewHandler()
	loanHandler := httpadp.NewLoanHandler(loans)
	lifecycleHandler := httpadp.NewLifecycleHandler(lifecycle)
	repaymentHandler := httpadp.NewRepaymentHandler(repayments)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemp := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log)

	e.GET("/health", h.Health)
	e.POST("/loans", loanHandler.Apply, idemp)
	e.GET("/loans", loanHandler.ListAll)
	e.GET("/loans/:loan_id", loanHandler.Get)
	e.GET("/borrowers/:borrower_id/loans", loanHandler.ListForBorrower)
	e.POST("/loans/:loan_id/approve", lifecycleHandler.Approve, idemp)
	e.POST("/loans/:loan_id/reject", lifecycleHandler.Reject, idemp)
	e.POST("/loans/:loan_id/repayments", repaymentHandler.Make, idemp)
	e.GET("/loans/:loan_id/repayments", repaymentHandler.List)

	addr := ":" + cfg.AppPort
	log.WithField("addr", addr).Info("listening")
	if err := e.Start(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
