package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/keyvault/internal/server"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("loading .env: %v", err)
	}

	os.Exit(server.Main(context.Background(), os.Args[1:]))
}
