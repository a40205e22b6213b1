package main

import (
	"context"

	"github.com/finflow/reconciliation-engine/config"
	"github.com/finflow/reconciliation-engine/controllers"
)

// Combined deployment: HTTP trigger intake and polling sweep in one process.
// cmd/http_server and cmd/cron_server run the two halves separately.
func main() {
	app := controllers.App{}
	app.Initialize(config.Load())
	app.StartSweepWorkers(context.Background())
	app.RunServer()
}
