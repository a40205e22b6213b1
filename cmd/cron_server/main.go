package main

import (
	"context"
	"time"

	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/finflow/reconciliation-engine/config"
	"github.com/finflow/reconciliation-engine/handler"
	"github.com/finflow/reconciliation-engine/infra/db/dao"
	"github.com/finflow/reconciliation-engine/infra/locker"
	reconciliationUsecase "github.com/finflow/reconciliation-engine/usecase/reconciliation"
)

type CronWorkerConfig struct {
	Interval time.Duration
	Workers  int
}

func (cfg CronWorkerConfig) startSweepWorker(h *handler.ReconciliationHandler, workerID int) {
	for {
		ctx := context.Background()
		processed, err := h.SweepExecution(ctx)
		if err != nil {
			log.Errorf("[Sweeper %d] error: %v", workerID, err)
		} else if processed > 0 {
			log.Infof("[Sweeper %d] processed %d events", workerID, processed)
		}

		time.Sleep(cfg.Interval)
	}
}

type App struct {
	DB     *gorm.DB
	Locker *locker.Locker
	Cfg    config.Config
}

func (a *App) Initialize(cfg config.Config) {
	a.Cfg = cfg

	var err error
	a.DB, err = gorm.Open(postgres.Open(cfg.DatabaseURI()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Cannot connect to database %s: %v", cfg.DBName, err)
	}
	log.Infof("Connected to database %s", cfg.DBName)

	a.Locker = locker.New()
}

func (a *App) RunWorkers() {
	uc := reconciliationUsecase.NewReconciliationUsecase(dao.NewDaoMethod(a.DB), a.Locker, a.Cfg)
	h := handler.NewReconciliationHandler(uc)

	cronCfg := CronWorkerConfig{
		Interval: a.Cfg.SweepInterval,
		Workers:  a.Cfg.SweepWorkers,
	}

	done := make(chan struct{})
	for i := 1; i <= cronCfg.Workers; i++ {
		go func(workerID int) {
			log.Infof("spawn [Sweeper %d]", workerID)
			cronCfg.startSweepWorker(h, workerID)
		}(i)
	}
	<-done
}

func main() {
	app := App{}
	app.Initialize(config.Load())
	app.RunWorkers()
}
