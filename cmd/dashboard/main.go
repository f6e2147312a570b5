package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/stockdash/internal/buildinfo"
	"github.com/dmitrijs2005/stockdash/internal/client/cli"
	"github.com/dmitrijs2005/stockdash/internal/client/config"
	"github.com/dmitrijs2005/stockdash/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	var sink io.Writer = os.Stderr
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			log.Fatalf("open log file: %v", err)
		}
		defer f.Close()
		sink = f
	}

	logger, err := logging.New(sink, cfg.LogLevel, cfg.LogFile != "")
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(cfg, logger, os.Stdin, os.Stdout)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
