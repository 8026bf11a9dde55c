package main

import (
	"log"

	"example/thinking-assistant/app"
)

func main() {
	app.MustInitStore()
	app.InitStripe()
	router, err := app.NewRouter()
	if err != nil {
		log.Fatalf("failed to initialize router: %v", err)
	}
	router.Run("0.0.0.0:8080")
}
