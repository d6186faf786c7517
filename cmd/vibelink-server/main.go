package main

import (
	"log"

	"vibelink-backend/cmd"
	_ "vibelink-backend/docs"
)

// @title           VibeLink API
// @version         1.0
// @description     REST + WebSocket API for the VibeLink social game
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
