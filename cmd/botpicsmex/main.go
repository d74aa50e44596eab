package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/Gritara234/BotPicsMex/bot/app"
	corecmd "github.com/Gritara234/BotPicsMex/core/cmd"
	coreconfig "github.com/Gritara234/BotPicsMex/core/config"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	err := corecmd.Run(corecmd.Options{
		Build: func(cfg *coreconfig.Config) (corecmd.App, error) {
			return app.New(cfg)
		},
	})
	if err != nil {
		log.Fatalf("botpicsmex: %v", err)
	}
}
