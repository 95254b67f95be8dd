package main

import (
	"context"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/syrilster/school-leave-console/internal"
	"github.com/syrilster/school-leave-console/internal/config"
)

func main() {
	// load values from .env into the system
	if err := godotenv.Load(); err != nil {
		log.Print("No .env file found")
	}

	log.SetFormatter(&log.JSONFormatter{})
	level, err := log.ParseLevel(config.NewEnvironmentConfig().LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	cfg, err := config.NewApplicationConfig()
	if err != nil {
		log.Fatalf("failed to start application: %v", err)
	}
	server, err := internal.SetupServer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to start application: %v", err)
	}
	log.WithFields(log.Fields{"addr": cfg.ServerAddr(), "port": cfg.ServerPort()}).Info("school leave console listening")
	server.Start(cfg.ServerAddr(), cfg.ServerPort())
}
