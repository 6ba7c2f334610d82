package main

import (
	"log"

	"github.com/XTHN9RF/Foodify-API/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}
