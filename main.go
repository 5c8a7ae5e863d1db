package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sadewadee/business-contact-scraper/runner"
	"github.com/sadewadee/business-contact-scraper/runner/scraperunner"
)

func main() {
	cfg, err := runner.ParseConfig()
	if err != nil {
		log.Fatal(err)
	}

	r, err := scraperunner.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := r.Run(ctx); err != nil {
		_ = r.Close(ctx)
		log.Fatal(err)
	}

	if err := r.Close(ctx); err != nil {
		log.Fatal(err)
	}
}
