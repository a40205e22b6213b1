package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/finflow/reconciliation-engine/config"
	"github.com/finflow/reconciliation-engine/handler"
	"github.com/finflow/reconciliation-engine/infra/db/dao"
	"github.com/finflow/reconciliation-engine/infra/db/model"
	"github.com/finflow/reconciliation-engine/infra/locker"
	"github.com/finflow/reconciliation-engine/middlewares"
	reconciliationUsecase "github.com/finflow/reconciliation-engine/usecase/reconciliation"
)

type App struct {
	DB      *gorm.DB
	Router  *mux.Router
	Locker  *locker.Locker
	Cfg     config.Config
	Handler *handler.ReconciliationHandler
}

func (a *App) Initialize(cfg config.Config) {
	a.Cfg = cfg

	var err error
	a.DB, err = gorm.Open(postgres.Open(cfg.DatabaseURI()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Cannot connect to database %s: %v", cfg.DBName, err)
	}
	log.Infof("Connected to database %s", cfg.DBName)

	if err := a.DB.AutoMigrate(
		&model.BusinessEvent{},
		&model.Reconciliation{},
		&model.AuditLog{},
	); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}

	a.Locker = locker.New()

	uc := reconciliationUsecase.NewReconciliationUsecase(dao.NewDaoMethod(a.DB), a.Locker, cfg)
	a.Handler = handler.NewReconciliationHandler(uc)

	a.Router = mux.NewRouter().StrictSlash(true)
	a.Router.Use(middlewares.SetContentTypeMiddleware)
	RegisterReconciliationRoutes(a.Router, a.Handler)
}

// StartSweepWorkers launches the polling safety net: each worker runs one
// sweep pass, sleeps the configured interval, and goes again.
func (a *App) StartSweepWorkers(ctx context.Context) {
	for i := 1; i <= a.Cfg.SweepWorkers; i++ {
		go func(workerID int) {
			log.Infof("spawn [Sweeper %d]", workerID)
			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				if _, err := a.Handler.SweepExecution(ctx); err != nil {
					log.Errorf("[Sweeper %d] error: %v", workerID, err)
				}

				select {
				case <-ctx.Done():
					return
				case <-time.After(a.Cfg.SweepInterval):
				}
			}
		}(i)
	}
}

func (a *App) RunServer() {
	log.Infof("Server starting on port %s", a.Cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+a.Cfg.HTTPPort, a.Router))
}
