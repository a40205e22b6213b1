package main

import (
	"github.com/finflow/reconciliation-engine/config"
	"github.com/finflow/reconciliation-engine/controllers"
)

// Push-trigger-only deployment: serves the reconciliation intake and result
// endpoints without the polling sweep.
func main() {
	app := controllers.App{}
	app.Initialize(config.Load())
	app.RunServer()
}
