package main

import (
	"os"

	"routerchat/backend/internal/app"
)

// @title           RouterChat API
// @version         1.0
// @description     Chat conversations backed by models reached through OpenRouter.
// @BasePath        /api
func main() {
	os.Exit(app.Run())
}
