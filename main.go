package main

import (
	"vehicle-access-control/cmd"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local development, real deployments use config.yaml
	godotenv.Load()

	cmd.Execute()
}
