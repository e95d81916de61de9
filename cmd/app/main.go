package main

import (
	"context"
	"log"
	"os"

	"finaxis-assistant/internal/adapters/cli"
	"finaxis-assistant/internal/ai"
	"finaxis-assistant/internal/app"
	"finaxis-assistant/internal/core"
	"finaxis-assistant/internal/db"
	"finaxis-assistant/internal/history"
	"finaxis-assistant/internal/library"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set")
	}
	agent := ai.NewAgent(apiKey, ai.DefaultRegistry())

	dictionary := app.DefaultDictionary()
	index := core.BuildSearchIndex(app.DefaultNavTree(), dictionary)
	router := core.NewRouter(dictionary, index)

	// The CLI runs with or without a database: history degrades to
	// in-memory and the library/resolver report themselves unavailable.
	var (
		hist     history.Store = history.NewMemStore()
		lib      app.LibraryStore
		accounts app.AccountSource
	)
	if os.Getenv("DATABASE_URL") != "" {
		pool, err := db.NewPool(ctx)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer pool.Close()
		hist = history.NewPGStore(pool)
		lib = library.NewService(pool)
		accounts = db.NewAccountRepo(pool)
	}

	svc := app.NewAppService(agent, router, index, hist, lib, accounts)
	cli.Run(ctx, svc, os.Args[1:])
}
