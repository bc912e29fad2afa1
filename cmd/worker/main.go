package main

import (
	"hostmaster/config"
	"hostmaster/di"
	"hostmaster/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	worker := di.InitializeWorker()
	worker.Serve()
}
