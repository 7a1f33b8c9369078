package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "loanledger-backend/internal/adapter/http"
	appmw "loanledger-backend/internal/adapter/middleware"
	"loanledger-backend/internal/adapter/repository/sqlstore"
	"loanledger-backend/internal/config"
	"loanledger-backend/internal/infrastructure/cache"
	"loanledger-backend/internal/infrastructure/db"
	"loanledger-backend/internal/ledger"
	"loanledger-backend/internal/vault"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := sqlstore.Migrate(gdb); err != nil {
		log.Fatalf("db migrate: %v", err)
	}
	journalRepo := sqlstore.NewJournalRepository(gdb)

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	store := ledger.NewStore()
	engine, err := ledger.NewEngine(store, vault.New(), ledger.Config{
		Admin:          cfg.AdminAccount,
		Treasury:       cfg.TreasuryAccount,
		LenderFeeBps:   cfg.LenderFeeBps,
		BorrowerFeeBps: cfg.BorrowerFeeBps,
	})
	if err != nil {
		log.Fatalf("engine: %v", err)
	}
	engine.SetSink(sqlstore.NewSink(journalRepo))

	h := httpadp.NewHandler()
	loans := httpadp.NewLoanHandler(engine, journalRepo)
	admin := httpadp.NewAdminHandler(engine, cfg.AdminAccount)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	idemp := appmw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)
	e.POST("/loans", loans.RequestLoan, idemp)
	e.POST("/loans/:loan_id/fund", loans.FundLoan, idemp)
	e.POST("/loans/:loan_id/reject", loans.RejectLoan, idemp)
	e.POST("/loans/:loan_id/repay", loans.RepayLoan, idemp)

	e.GET("/loans", loans.LoanCount)
	e.GET("/loans/:loan_id", loans.GetLoan)
	e.GET("/loans/:loan_id/events", loans.LoanEvents)
	e.GET("/accounts/:account_id/loans", loans.UserLoans)
	e.GET("/accounts/:account_id/credit-score", loans.CreditScore)

	g := e.Group("/admin", appmw.AdminGuard(cfg.AdminToken))
	g.GET("/settings", admin.Settings)
	g.PUT("/fees", admin.SetFees)
	g.PUT("/treasury", admin.SetTreasury)
	g.POST("/pause", admin.Pause)
	g.POST("/unpause", admin.Unpause)
	g.POST("/loans/:loan_id/approve", admin.ApproveLoan)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
