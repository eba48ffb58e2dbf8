package main

import (
	"errors"
	stdLog "log"
	"os"
	"time"

	"github.com/Astemirdum/catalog-service/catalog/app"
	"github.com/Astemirdum/catalog-service/catalog/config"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		stdLog.Fatal("load envs from .env ", err)
	}
	cfg := config.NewConfig(
		config.WithLogLevel(zapcore.InfoLevel),
		config.WithWriteTimeout(time.Minute),
	)

	app.Run(cfg)
}
