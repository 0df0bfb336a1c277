package main

import (
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"ledger/account"
	"ledger/config"
	"ledger/internal/web"
	"ledger/transaction"
	"ledger/transaction/postgres"
	"ledger/transfer"
)

func main() {
	// flags take priority over the environment; a missing .env file is fine
	_ = godotenv.Load()

	cfg, err := config.Parse()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	accounts := account.NewInMemoryRepo()

	var transactions transaction.Repo = transaction.NewInMemoryRepo()
	if cfg.Archive {
		pgConfig, err := postgres.Parse()
		if err != nil {
			logger.Fatal("parsing postgres config", zap.Error(err))
		}
		db, err := postgres.Connect(pgConfig)
		if err != nil {
			logger.Fatal("connecting to postgres", zap.Error(err))
		}
		transactions, err = transaction.NewPostgresRepo(db)
		if err != nil {
			logger.Fatal("creating postgres repo", zap.Error(err))
		}
	}

	manager := account.NewManager(accounts, logger)
	engine := transfer.NewEngine(accounts, transactions, logger)

	srv := web.NewHTTPServer(cfg.Addr, &web.Config{
		Accounts:  manager,
		Transfers: engine,
		APIKey:    cfg.APIKey,
		AppEnv:    cfg.AppEnv,
		Logger:    logger,
	})

	logger.Info("listening", zap.String("addr", cfg.Addr), zap.String("env", cfg.AppEnv))
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
