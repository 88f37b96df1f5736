package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/storefront/internal/fakeapi"
	"github.com/dmitrijs2005/storefront/internal/fakeapi/config"
)

func main() {
	cfg := config.LoadConfig(os.Args[1:])

	app, err := fakeapi.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := app.Run(context.Background()); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}
