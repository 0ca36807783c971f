package main

import (
	"os"
	"os/signal"
	"syscall"

	"lotto-ui/config"
	"lotto-ui/database"
	"lotto-ui/logger"
	"lotto-ui/web"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
)

func runWebServer() {
	logger.Infof("%s %s", config.GetName(), config.GetVersion())

	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		logger.Errorf("unknown log level: %s", config.GetLogLevel())
		return
	}

	err := database.InitDB(config.GetDBPath())
	if err != nil {
		logger.Error("initialize database failed:", err)
		return
	}
	defer database.CloseDB()

	server := web.NewServer()
	err = server.Start()
	if err != nil {
		logger.Error("start web server failed:", err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	for sig := range sigCh {
		switch sig {
		case syscall.SIGHUP:
			logger.Info("received SIGHUP, restarting servers...")
			err := server.Stop()
			if err != nil {
				logger.Warning("stop web server failed:", err)
			}
			server = web.NewServer()
			err = server.Start()
			if err != nil {
				logger.Error("start web server failed:", err)
				return
			}
		default:
			server.Stop()
			logger.Infof("%s exited", config.GetName())
			return
		}
	}
}

func main() {
	_ = godotenv.Load()
	runWebServer()
}
