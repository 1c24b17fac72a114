package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	// This is important for swag to find the generated docs
	_ "boardshelf/backend/docs"
)

// @title           Boardshelf API
// @version         1.0
// @description     This is the API for the Boardshelf board game catalogue.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
