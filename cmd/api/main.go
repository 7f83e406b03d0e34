package main

import (
	"flag"
	"log"

	"github.com/mercacio/storefront-service/internal/app/bootstrap"
)

func main() {
	configPath := flag.String("config", "configs/default.yaml", "path to the yaml config file")
	flag.Parse()

	if err := bootstrap.RunAPI(*configPath); err != nil {
		log.Fatalf("run api: %v", err)
	}
}
