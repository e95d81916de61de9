package main

import (
	"context"
	"log"
	"net/http"
	"os"

	webAdapter "finaxis-assistant/internal/adapters/web"
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
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set")
	}
	agent := ai.NewAgent(apiKey, ai.DefaultRegistry())

	dictionary := app.DefaultDictionary()
	index := core.BuildSearchIndex(app.DefaultNavTree(), dictionary)
	router := core.NewRouter(dictionary, index)

	svc := app.NewAppService(
		agent,
		router,
		index,
		history.NewPGStore(pool),
		library.NewService(pool),
		db.NewAccountRepo(pool),
	)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins)

	log.Printf("assistant server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
