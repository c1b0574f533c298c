package main

import (
	"github.com/joho/godotenv"

	"github.com/medireach/storefront/cmd"
)

func main() {
	// Local overrides for backend URL, Kafka brokers, database credentials.
	_ = godotenv.Load()

	cmd.Execute()
}
