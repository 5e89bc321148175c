package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/caresupport/internal/idp"
	"github.com/dmitrijs2005/caresupport/internal/idp/config"
	"github.com/dmitrijs2005/caresupport/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	zl, err := logging.NewProductionZap(cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer zl.Sync()

	app, err := idp.NewApp(ctx, cfg, zl)
	if err != nil {
		zl.Sugar().Errorw("startup failed", "error", err)
		return
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		zl.Sugar().Errorw("server stopped", "error", err)
	}

}
