// Command server runs the meal planning backend HTTP server.
//
// Configuration is read from ./config.yaml (override the path with
// CONFIG_PATH) with environment variables taking precedence.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tboivin/swipemeal-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
