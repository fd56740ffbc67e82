// Command server runs the HTTP API: spaced-repetition reviews, XP and
// streak tracking, study recommendations, and user settings.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"

	"github.com/lingopath/backend/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("run: %v", err)
	}
}
