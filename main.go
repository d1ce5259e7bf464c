package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/avoronov/talentscout/cmd"
)

func main() {
	// A missing .env file is fine, secrets can come from the environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("loading .env file: %v", err)
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
